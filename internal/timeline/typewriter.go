package timeline

import "unicode/utf8"

// TypewriterSpec describes a character-by-character reveal of Text that
// starts at StartFrame and completes RevealDuration frames later.
type TypewriterSpec struct {
	Text           string
	StartFrame     int
	RevealDuration int
}

func (s TypewriterSpec) Validate() error {
	if s.RevealDuration <= 0 {
		return ConfigErrorf("reveal_duration", "must be positive, got %d", s.RevealDuration)
	}
	if s.StartFrame < 0 {
		return ConfigErrorf("start_frame", "must not be negative, got %d", s.StartFrame)
	}
	return nil
}

// Progress is the typewriter position at one local frame.
type Progress struct {
	CharsRevealed int
	CursorActive  bool
}

// Visible returns the first CharsRevealed characters of text.
func (p Progress) Visible(text string) string {
	return revealPrefix(text, p.CharsRevealed)
}

// TypewriterProgress computes how much of spec.Text is revealed at localFrame.
// Characters are counted as runes.
func TypewriterProgress(localFrame int, spec TypewriterSpec) (Progress, error) {
	if err := spec.Validate(); err != nil {
		return Progress{}, err
	}
	return typewriterProgress(localFrame, spec), nil
}

func typewriterProgress(localFrame int, spec TypewriterSpec) Progress {
	elapsed := clamp(localFrame-spec.StartFrame, 0, spec.RevealDuration)
	n := utf8.RuneCountInString(spec.Text)
	return Progress{
		CharsRevealed: n * elapsed / spec.RevealDuration,
		CursorActive:  localFrame >= spec.StartFrame && localFrame < spec.StartFrame+spec.RevealDuration,
	}
}

func revealPrefix(text string, chars int) string {
	if chars <= 0 {
		return ""
	}
	seen := 0
	for i := range text {
		if seen == chars {
			return text[:i]
		}
		seen++
	}
	return text
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
