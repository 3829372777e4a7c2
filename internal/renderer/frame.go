package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/nerveband/drafts-cli/internal/fonts"
	"github.com/nerveband/drafts-cli/internal/timeline"
)

// Layout is authored for a 1280x720 canvas and scaled uniformly to the
// target frame, centred on the shorter axis.
const (
	designW = 1280.0
	designH = 720.0
)

// Terminal window geometry in design units.
const (
	termX      = 90.0
	termY      = 150.0
	termW      = 1100.0
	termH      = 484.0
	titleBarH  = 44.0
	contentPad = 40.0
)

type faceRole int

const (
	faceTitle faceRole = iota
	faceSubtitle
	faceCommand
	faceOutput
	faceSmall
	faceLabel
	faceChrome
	faceCount
)

var faceSizes = [faceCount]float64{
	faceTitle:    48,
	faceSubtitle: 18,
	faceCommand:  28,
	faceOutput:   18,
	faceSmall:    14,
	faceLabel:    16,
	faceChrome:   13,
}

// Renderer draws presentation states into RGBA frames. A Renderer owns its
// font faces and must not be shared between goroutines; create one per
// worker from the same fonts.Handle.
type Renderer struct {
	Palette Palette

	width, height int
	scale         float64
	offX, offY    float64
	faces         [faceCount]font.Face
}

// New builds a renderer for width x height frames. The handle must already
// be loaded.
func New(h *fonts.Handle, width, height int) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, timeline.ConfigErrorf("size", "invalid frame size %dx%d", width, height)
	}
	scale := math.Min(float64(width)/designW, float64(height)/designH)
	r := &Renderer{
		Palette: DefaultPalette,
		width:   width,
		height:  height,
		scale:   scale,
		offX:    (float64(width) - designW*scale) / 2,
		offY:    (float64(height) - designH*scale) / 2,
	}
	for role, size := range faceSizes {
		face, err := h.NewFace(size * scale)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("face %d: %w", role, err)
		}
		r.faces[role] = face
	}
	return r, nil
}

// Bounds is the rectangle of the frames this renderer draws.
func (r *Renderer) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.width, r.height)
}

func (r *Renderer) Close() error {
	var first error
	for i, f := range r.faces {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
		r.faces[i] = nil
	}
	return first
}

// Draw paints st into dst. dst must have the renderer's bounds.
func (r *Renderer) Draw(dst *image.RGBA, st timeline.PresentationState) {
	p := r.Palette
	draw.Draw(dst, dst.Bounds(), image.NewUniform(p.Background), image.Point{}, draw.Src)

	r.textCentered(dst, faceTitle, designW/2, 88, "Drafts CLI", p.White)
	r.textCentered(dst, faceSubtitle, designW/2, 120, "Edit your Drafts from the command line", p.Secondary)

	r.drawTerminal(dst)

	left := termX + contentPad
	baseline := termY + titleBarH + 2 + 56.0
	x := left + r.text(dst, faceCommand, left, baseline, "$", p.Accent) + 14
	x += r.text(dst, faceCommand, x, baseline, st.RevealedCommand(), p.Command)

	if st.CursorOpaque() {
		r.fillRect(dst, x+4, baseline-24, 3, 30, p.Command)
	}

	if st.OutputVisible {
		r.drawOutput(dst, left, baseline+46, st.Scene.Output)
	}

	r.textCentered(dst, faceLabel, designW/2, designH-40, strings.ToUpper(st.Scene.Description), p.White)
	r.drawDots(dst, st.SceneIndex, st.SceneCount)
}

func (r *Renderer) drawTerminal(dst *image.RGBA) {
	p := r.Palette
	r.fillRect(dst, termX, termY, termW, termH, p.Border)
	r.fillRect(dst, termX+2, termY+2, termW-4, termH-4, p.Terminal)
	r.fillRect(dst, termX+2, termY+2, termW-4, titleBarH, p.TitleBar)
	r.fillRect(dst, termX+2, termY+2+titleBarH, termW-4, 1, p.Border)

	cy := termY + 2 + titleBarH/2
	for i, c := range p.Lights {
		r.fillCircle(dst, termX+22+float64(i)*20, cy, 6, c)
	}
	r.textCentered(dst, faceChrome, termX+termW/2, cy+5, "drafts - Terminal", p.ChromeTitle)
}

func (r *Renderer) drawOutput(dst *image.RGBA, left, y float64, kind timeline.OutputKind) {
	p := r.Palette
	for _, ln := range OutputLines(kind) {
		if ln.Rule {
			r.fillRect(dst, left, y-10, 520, 1, p.Rule)
			y += 12
			continue
		}
		face := faceOutput
		if ln.Small {
			face = faceSmall
			y += 6
		}
		x := left
		for _, s := range ln.Spans {
			x += r.text(dst, face, x, y, s.Text, p.Role(s.Role))
		}
		y += 27
	}
}

func (r *Renderer) drawDots(dst *image.RGBA, active, count int) {
	const (
		dotH   = 10.0
		small  = 10.0
		wide   = 32.0
		gap    = 12.0
		bottom = designH - 26
	)
	if count <= 0 {
		return
	}
	total := wide + small*float64(count-1) + gap*float64(count-1)
	x := designW/2 - total/2
	for i := 0; i < count; i++ {
		w, c := small, r.Palette.Secondary
		if i == active {
			w, c = wide, r.Palette.Accent
		}
		r.fillRect(dst, x+dotH/2, bottom-dotH, w-dotH, dotH, c)
		r.fillCircle(dst, x+dotH/2, bottom-dotH/2, dotH/2, c)
		r.fillCircle(dst, x+w-dotH/2, bottom-dotH/2, dotH/2, c)
		x += w + gap
	}
}

// px maps design coordinates to frame pixels.
func (r *Renderer) px(x, y float64) (int, int) {
	return int(math.Round(r.offX + x*r.scale)), int(math.Round(r.offY + y*r.scale))
}

func (r *Renderer) fillRect(dst *image.RGBA, x, y, w, h float64, c color.RGBA) {
	x0, y0 := r.px(x, y)
	x1, y1 := r.px(x+w, y+h)
	if x1 == x0 {
		x1++
	}
	if y1 == y0 {
		y1++
	}
	draw.Draw(dst, image.Rect(x0, y0, x1, y1), image.NewUniform(c), image.Point{}, draw.Src)
}

func (r *Renderer) fillCircle(dst *image.RGBA, cx, cy, radius float64, c color.RGBA) {
	pcx := r.offX + cx*r.scale
	pcy := r.offY + cy*r.scale
	pr := radius * r.scale
	b := image.Rect(int(pcx-pr)-1, int(pcy-pr)-1, int(pcx+pr)+2, int(pcy+pr)+2).Intersect(dst.Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dx := float64(x) + 0.5 - pcx
			dy := float64(y) + 0.5 - pcy
			if dx*dx+dy*dy <= pr*pr {
				dst.SetRGBA(x, y, c)
			}
		}
	}
}

// text draws s with its baseline at (x, y) and returns the advance in
// design units.
func (r *Renderer) text(dst *image.RGBA, role faceRole, x, y float64, s string, c color.RGBA) float64 {
	if s == "" {
		return 0
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: r.faces[role],
		Dot:  fixed.P(r.px(x, y)),
	}
	start := d.Dot.X
	d.DrawString(s)
	return float64(d.Dot.X-start) / 64 / r.scale
}

func (r *Renderer) textCentered(dst *image.RGBA, role faceRole, cx, y float64, s string, c color.RGBA) {
	w := float64(font.MeasureString(r.faces[role], s)) / 64 / r.scale
	r.text(dst, role, cx-w/2, y, s, c)
}
