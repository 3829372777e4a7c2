package timeline

// PresentationState describes everything a renderer needs for one frame.
// It is a plain value; two states for the same frame and configuration
// compare equal with ==.
type PresentationState struct {
	Frame         int   `json:"frame"`
	SceneIndex    int   `json:"sceneIndex"`
	SceneCount    int   `json:"sceneCount"`
	LocalFrame    int   `json:"localFrame"`
	CharsRevealed int   `json:"charsRevealed"`
	CursorActive  bool  `json:"cursorActive"`
	CursorVisible bool  `json:"cursorVisible"`
	CursorBlinkOn bool  `json:"cursorBlinkOn"`
	OutputVisible bool  `json:"outputVisible"`
	Scene         Scene `json:"scene"`
}

// RevealedCommand is the part of the scene command typed so far.
func (s PresentationState) RevealedCommand() string {
	return revealPrefix(s.Scene.Command, s.CharsRevealed)
}

// CursorOpaque reports whether the cursor is drawn at full opacity on this
// frame. Renderers that ignore blinking use CursorVisible instead.
func (s PresentationState) CursorOpaque() bool {
	return s.CursorVisible && s.CursorBlinkOn
}

// DeriveState computes the presentation state of frame from tl alone.
func DeriveState(frame int, tl *Timeline) (PresentationState, error) {
	c, err := NewComposer(tl)
	if err != nil {
		return PresentationState{}, err
	}
	return c.State(frame), nil
}

// Composer is a validated snapshot of a Timeline. It is immutable and safe
// for concurrent use by any number of render workers.
type Composer struct {
	scenes         []Scene
	totalFrames    int
	fps            int
	framesPerScene int
	timing         Timing
}

// NewComposer validates tl and copies what the derivation needs.
func NewComposer(tl *Timeline) (*Composer, error) {
	if err := tl.Validate(); err != nil {
		return nil, err
	}
	perScene, err := FramesPerScene(tl.TotalFrames, len(tl.Scenes))
	if err != nil {
		return nil, err
	}
	return &Composer{
		scenes:         append([]Scene(nil), tl.Scenes...),
		totalFrames:    tl.TotalFrames,
		fps:            tl.FPS,
		framesPerScene: perScene,
		timing:         tl.Timing,
	}, nil
}

func (c *Composer) FramesPerScene() int { return c.framesPerScene }
func (c *Composer) SceneCount() int     { return len(c.scenes) }
func (c *Composer) TotalFrames() int    { return c.totalFrames }
func (c *Composer) FPS() int            { return c.fps }

// Scene returns a copy of scene i.
func (c *Composer) Scene(i int) Scene { return c.scenes[i] }

// State derives the presentation state for frame.
func (c *Composer) State(frame int) PresentationState {
	index, local := SelectScene(frame, c.framesPerScene, len(c.scenes))
	scene := c.scenes[index]
	progress := typewriterProgress(local, TypewriterSpec{
		Text:           scene.Command,
		StartFrame:     c.timing.TypewriterStart,
		RevealDuration: c.timing.TypewriterDuration,
	})

	return PresentationState{
		Frame:         frame,
		SceneIndex:    index,
		SceneCount:    len(c.scenes),
		LocalFrame:    local,
		CharsRevealed: progress.CharsRevealed,
		CursorActive:  progress.CursorActive,
		CursorVisible: progress.CursorActive,
		CursorBlinkOn: BlinkOn(frame, c.timing.BlinkPeriod),
		OutputVisible: OutputVisible(local, c.timing.OutputDelay),
		Scene:         scene,
	}
}
