package bounce

import (
	"github.com/vovakirdan/tui-bounce/internal/config"
	"github.com/vovakirdan/tui-bounce/internal/core"
)

// BatchLayout describes the size of the target batch for a level.
type BatchLayout struct {
	Count  int
	Rows   int
	Cols   int
	Health int
}

// LayoutForLevel computes how many targets a level has and how they are
// arranged. Count grows with the level, rows grow every LevelsPerRow levels up
// to MaxRows, and health grows every LevelsPerHealth levels up to MaxHealth.
func LayoutForLevel(cfg config.TargetConfig, level int) BatchLayout {
	level = max(level, 1)

	count := max(cfg.BaseCount+cfg.PerLevel*level, 1)
	rows := core.Clamp(ceilDiv(level, max(cfg.LevelsPerRow, 1)), 1, max(cfg.MaxRows, 1))
	cols := ceilDiv(count, rows)
	health := core.Clamp(ceilDiv(level, max(cfg.LevelsPerHealth, 1)), 1, max(cfg.MaxHealth, 1))

	return BatchLayout{Count: count, Rows: rows, Cols: cols, Health: health}
}

// GenerateTargets builds the target batch for a level. Targets fill the rows
// left to right; the last row may be partial.
func GenerateTargets(cfg config.BounceConfig, level int) []Target {
	tc := cfg.Targets
	layout := LayoutForLevel(tc, level)

	blockWidth := (cfg.Field.Width - 2*tc.SideMargin) / float64(layout.Cols)
	width := max(blockWidth-tc.Gap, 1)

	targets := make([]Target, 0, layout.Count)
	for row := range layout.Rows {
		for col := range layout.Cols {
			if len(targets) >= layout.Count {
				break
			}
			targets = append(targets, Target{
				Center: core.Vec{
					X: tc.SideMargin + float64(col)*blockWidth + blockWidth/2,
					Y: tc.Top + float64(row)*(tc.Height+tc.RowGap),
				},
				Width:     width,
				Height:    tc.Height,
				Health:    layout.Health,
				MaxHealth: layout.Health,
				Points:    layout.Health * tc.PointsPerHealth,
				Color:     HealthColor(layout.Health),
			})
		}
	}
	return targets
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
