package timeline

// OutputVisible is a hard step: hidden before revealFrame, shown from it on.
func OutputVisible(localFrame, revealFrame int) bool {
	return localFrame >= revealFrame
}

// BlinkOn reports the cursor blink phase for an absolute frame. The phase
// ignores scene boundaries. A non-positive period gives a steady cursor.
func BlinkOn(frame, blinkPeriod int) bool {
	if blinkPeriod <= 0 {
		return true
	}
	return floorMod(floorDiv(frame, blinkPeriod), 2) == 0
}
