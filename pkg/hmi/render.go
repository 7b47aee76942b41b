package hmi

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme mirrors the teacher's pkg/cli.Theme: a primary accent and a
// dimmed helper color, here standing in for the OLED's single-color
// pixel-on look.
type Theme struct {
	Primary lipgloss.Color
	Dim     lipgloss.Color
}

// DefaultTheme approximates a monochrome OLED: bright foreground, dim
// border.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
}

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Border lipgloss.Style
	Text   lipgloss.Style
	Dim    lipgloss.Style
}

// NewStyles builds Styles from t.
func NewStyles(t Theme) Styles {
	return Styles{
		Border: lipgloss.NewStyle().Foreground(t.Dim),
		Text:   lipgloss.NewStyle().Foreground(t.Primary),
		Dim:    lipgloss.NewStyle().Foreground(t.Dim),
	}
}

// Renderer draws a Frame as a bordered 32x4 character grid, the terminal
// analogue of the 128x64 OLED (spec §4.6). Grounded on the teacher's
// pkg/cli.Frame.Render box-drawing layout, sized to the fixed line width
// instead of a resizable terminal pane.
type Renderer struct {
	Styles Styles
}

// NewRenderer constructs a Renderer with DefaultTheme.
func NewRenderer() *Renderer {
	return &Renderer{Styles: NewStyles(DefaultTheme)}
}

// Render returns the frame drawn as a bordered text block.
func (r *Renderer) Render(f Frame) string {
	bc := r.Styles.Border
	var b strings.Builder

	b.WriteString(bc.Render("╭" + strings.Repeat("─", lineWidth+2) + "╮"))
	b.WriteByte('\n')
	for _, line := range f.Lines {
		padded := line + strings.Repeat(" ", max(0, lineWidth-len(line)))
		b.WriteString(bc.Render("│") + " " + r.Styles.Text.Render(padded) + " " + bc.Render("│"))
		b.WriteByte('\n')
	}
	b.WriteString(bc.Render("╰" + strings.Repeat("─", lineWidth+2) + "╯"))
	return b.String()
}
