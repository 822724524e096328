package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/passforge/passforge-go/internal/crypto"
)

var (
	colorPrimary = lipgloss.Color("#00ffff")
	colorMuted   = lipgloss.Color("#666666")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)

	ratingStyles = map[crypto.Rating]lipgloss.Style{
		crypto.Weak:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff0000")),
		crypto.Medium:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00")),
		crypto.Strong:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff00")),
		crypto.VeryStrong: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0099ff")),
	}
)

func renderRating(r crypto.Rating) string {
	if s, ok := ratingStyles[r]; ok {
		return s.Render(string(r))
	}
	return string(r)
}

// badge renders "rating (N.N bits)".
func badge(strength string, bits float64) string {
	return renderRating(crypto.Rating(strength)) + mutedStyle.Render(fmt.Sprintf(" (%.1f bits)", bits))
}
