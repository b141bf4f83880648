package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/randomlogo/internal/analysis"
	"github.com/san-kum/randomlogo/internal/logo"
)

type PreviewOptions struct {
	// Cols and Rows size the canvas in characters.
	Cols, Rows int
	Theme      Theme
}

func DefaultPreviewOptions() PreviewOptions {
	return PreviewOptions{Cols: 64, Rows: 32, Theme: ThemeJulia}
}

// Preview renders res as a colored Braille canvas next to a panel listing
// the configuration, the maps and a few attractor measures.
func Preview(res *logo.Result, opts PreviewOptions) string {
	t := opts.Theme
	canvas := FromAccumulator(res.Accumulator, opts.Cols, opts.Rows)

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)
	left := frame.Render(strings.TrimRight(canvas.Styled(), "\n"))

	right := frame.Padding(0, 1).Render(panel(res, t))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func panel(res *logo.Result, t Theme) string {
	cfg := res.Config
	title := lipgloss.NewStyle().Bold(true).Foreground(t.Secondary)

	lines := []string{
		title.Render("randomlogo"),
		"",
		Metric(t, "seed    ", fmt.Sprint(cfg.Seed)),
		Metric(t, "rng     ", cfg.RNGName),
		Metric(t, "canvas  ", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height)),
		Metric(t, "points  ", fmt.Sprint(res.Stats.Recorded)),
		Metric(t, "coverage", fmt.Sprintf("%.1f%%", 100*analysis.Coverage(res.Accumulator))),
	}
	if d, ok := analysis.BoxDimension(res.Accumulator); ok {
		lines = append(lines, Metric(t, "box dim ", fmt.Sprintf("%.3f", d)))
	}
	lines = append(lines, Metric(t, "moran   ", fmt.Sprintf("%.3f", analysis.MoranDimension(res.IFS.Contractions()))))
	lines = append(lines, "", title.Render("maps"))

	for i, m := range res.IFS.Maps() {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			Swatch(m.Color.Hex()),
			Subtle.Render(fmt.Sprintf("#%d", i)),
			MetricLabel.Render(fmt.Sprintf("w=%.3f c=%.3f", m.Weight, m.Affine.Contraction())),
		))
	}
	return strings.Join(lines, "\n")
}
