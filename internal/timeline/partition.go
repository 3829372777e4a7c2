package timeline

// FramesPerScene splits the composition into equal scene windows. The
// remainder frames at the tail are left over; SelectScene loops anyway.
func FramesPerScene(totalFrames, sceneCount int) (int, error) {
	if sceneCount <= 0 {
		return 0, ConfigErrorf("scenes", "no scenes configured")
	}
	n := totalFrames / sceneCount
	if n <= 0 {
		return 0, ConfigErrorf("total_frames", "%d frames are too few for %d scenes", totalFrames, sceneCount)
	}
	return n, nil
}

// SelectScene maps an absolute frame to a scene index and a frame offset
// local to that scene. The scene list repeats forever, so every frame has
// an answer. Both framesPerScene and sceneCount must be positive.
func SelectScene(frame, framesPerScene, sceneCount int) (index, local int) {
	return floorMod(floorDiv(frame, framesPerScene), sceneCount), floorMod(frame, framesPerScene)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}
