// Package theme holds the lipgloss styles for terminal output.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/safetyflash/internal/expiry"
	"github.com/nhle/safetyflash/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for the display header.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// SlideStyle frames one playlist slide.
var SlideStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// PositionStyle renders the slide position number.
var PositionStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorGray).
	Width(4)

// MutedStyle is used for secondary text such as site and duration.
var MutedStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// TypeColor returns the accent color for a flash type.
func TypeColor(flashType string) lipgloss.AdaptiveColor {
	switch flashType {
	case model.TypeRed:
		return ColorRed
	case model.TypeGreen:
		return ColorGreen
	default:
		return ColorYellow
	}
}

// TypeStyle returns the label style for a flash type.
func TypeStyle(flashType string) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(TypeColor(flashType))
}

// SlideFor returns SlideStyle with the border tinted by flash type.
func SlideFor(flashType string) lipgloss.Style {
	return SlideStyle.BorderForeground(TypeColor(flashType))
}

// PlaylistStatusStyle returns a color-coded style for a playlist status.
func PlaylistStatusStyle(status expiry.Status) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch status {
	case expiry.StatusActive:
		return base.Foreground(ColorGreen)
	case expiry.StatusExpired:
		return base.Foreground(ColorOrange)
	case expiry.StatusRemoved:
		return base.Foreground(ColorRed)
	default:
		return base.Foreground(ColorGray)
	}
}
