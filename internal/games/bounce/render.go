package bounce

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vovakirdan/tui-bounce/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar    = '='
	BallChar      = '●'
	BigBallChar   = '◉'
	SparkChar     = '·'
	FaintChar     = '.'
	BorderHoriz   = '─'
	MinScreenW    = 30
	MinScreenH    = 12
	hudRows       = 2
	overlayBoxPad = 4
)

// Target glyphs by remaining health
var healthGlyphs = []rune{'▒', '▓', '█'}

// Render draws the current session state onto the screen.
func (s *Session) Render(dst *core.Screen) {
	snap := s.Snapshot()
	snap.RenderTo(dst)
}

// RenderTo rasterizes the snapshot onto a character screen. The playfield is
// scaled to fit below a two-row HUD.
func (snap Snapshot) RenderTo(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	v := newViewport(snap.FieldW, snap.FieldH, dst.Width(), dst.Height()-hudRows, hudRows)

	snap.renderHUD(dst)
	snap.renderTargets(dst, v)
	snap.renderParticles(dst, v)
	snap.renderPowerUps(dst, v)
	snap.renderPaddle(dst, v)
	snap.renderBall(dst, v)
	snap.renderOverlay(dst)
}

// viewport maps playfield units to screen cells.
type viewport struct {
	sx, sy  float64
	offsetY int
	w, h    int
}

func newViewport(fieldW, fieldH float64, w, h, offsetY int) viewport {
	return viewport{
		sx:      float64(w) / fieldW,
		sy:      float64(h) / fieldH,
		offsetY: offsetY,
		w:       w,
		h:       h,
	}
}

func (v viewport) cell(p core.Vec) (int, int) {
	x := core.Clamp(int(math.Floor(p.X*v.sx)), 0, v.w-1)
	y := core.Clamp(int(math.Floor(p.Y*v.sy)), 0, v.h-1)
	return x, y + v.offsetY
}

func (v viewport) rect(r core.Rect) core.CellRect {
	x0, y0 := v.cell(core.Vec{X: r.X, Y: r.Y})
	x1, y1 := v.cell(core.Vec{X: r.Right() - 1e-9, Y: r.Bottom() - 1e-9})
	return core.NewCellRect(x0, y0, x1-x0+1, y1-y0+1)
}

// renderHUD draws the score, lives, level and active effects.
func (snap Snapshot) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", snap.Score))
	dst.DrawTextCentered(0, fmt.Sprintf("Lives: %d  Best: %d", snap.Lives, max(snap.HighScore, snap.Score)))

	levelText := fmt.Sprintf("Level: %d", snap.Level)
	dst.DrawText(dst.Width()-len(levelText)-1, 0, levelText)

	if effects := snap.effectsString(); effects != "" {
		dst.DrawText(1, 1, effects)
		return
	}
	dst.DrawHLine(0, 1, dst.Width(), BorderHoriz)
}

// effectsString lists active timed effects with seconds left.
func (snap Snapshot) effectsString() string {
	var parts []string
	for _, k := range PowerUpKinds {
		if remaining, ok := snap.Effects[k]; ok {
			secs := int(math.Ceil(remaining.Seconds()))
			parts = append(parts, fmt.Sprintf("%c %s(%d)", k.Glyph(), k, secs))
		}
	}
	return strings.Join(parts, "  ")
}

func (snap Snapshot) renderTargets(dst *core.Screen, v viewport) {
	for _, t := range snap.Targets {
		if !t.Active() {
			continue
		}
		glyph := healthGlyphs[core.Clamp(t.Health, 1, len(healthGlyphs))-1]
		r := v.rect(t.Rect())
		for y := r.Y; y < r.Bottom(); y++ {
			for x := r.X; x < r.Right(); x++ {
				dst.SetColored(x, y, glyph, t.Color)
			}
		}
		// Leave a visible gap between neighbours.
		if r.W > 2 {
			for y := r.Y; y < r.Bottom(); y++ {
				dst.Set(r.Right()-1, y, ' ')
			}
		}
	}
}

func (snap Snapshot) renderParticles(dst *core.Screen, v viewport) {
	for _, p := range snap.Particles {
		x, y := v.cell(p.Pos)
		glyph := SparkChar
		if p.Alpha < 0.4 {
			glyph = FaintChar
		}
		dst.SetColored(x, y, glyph, p.Color)
	}
}

func (snap Snapshot) renderPowerUps(dst *core.Screen, v viewport) {
	for _, p := range snap.PowerUps {
		x, y := v.cell(p.Pos)
		dst.SetColored(x, y, p.Kind.Glyph(), p.Color)
	}
}

func (snap Snapshot) renderPaddle(dst *core.Screen, v viewport) {
	r := v.rect(snap.Paddle.Rect())
	for x := r.X; x < r.Right(); x++ {
		dst.SetColored(x, r.Y, PaddleChar, core.ColorBrightCyan)
	}
}

func (snap Snapshot) renderBall(dst *core.Screen, v viewport) {
	x, y := v.cell(snap.Ball.Pos)
	glyph := BallChar
	if _, big := snap.Effects[PowerUpEnlargeBall]; big {
		glyph = BigBallChar
	}
	dst.SetColored(x, y, glyph, core.ColorBrightWhite)
}

// renderOverlay draws the status message boxes.
func (snap Snapshot) renderOverlay(dst *core.Screen) {
	switch snap.Status {
	case StatusIdle:
		drawCenteredBox(dst, "BOUNCE CHALLENGE",
			"Hit every target!",
			"Left/Right or mouse drag to move",
			"Press SPACE to start")
	case StatusPaused:
		drawCenteredBox(dst, "PAUSED", "Press P or ESC to resume")
	case StatusOver:
		st := snap.Stats
		drawCenteredBox(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  Best: %d", snap.Score, max(snap.HighScore, snap.Score)),
			fmt.Sprintf("Level: %d  Hits: %d  Power-ups: %d", st.MaxLevel, st.TotalHits, st.PowerUpsCollected),
			fmt.Sprintf("Play time: %s", st.PlayTime.Round(time.Second)),
			"Press R to restart")
	}
}

// drawCenteredBox draws a centered message box with a title and body lines.
func drawCenteredBox(dst *core.Screen, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW = core.Min(boxW+overlayBoxPad, w)
	boxH := core.Min(len(lines)+4, h)
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewCellRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewCellRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len([]rune(title)))/2
	dst.DrawTextColored(titleX, boxY+1, title, core.ColorBrightYellow)

	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l)))/2
		dst.DrawText(x, boxY+3+i, l)
	}
}
