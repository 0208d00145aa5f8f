package ui

import (
	"github.com/charmbracelet/bubbles/progress"
)

// ProgressBar renders a static progress line between batch items
type ProgressBar struct {
	model progress.Model
}

// NewProgressBar creates a gradient bar of the given width
func NewProgressBar(width int) *ProgressBar {
	return &ProgressBar{
		model: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(width),
		),
	}
}

// Render returns the bar for current out of total
func (p *ProgressBar) Render(current, total int) string {
	if total <= 0 {
		return p.model.ViewAs(0)
	}
	percent := float64(current) / float64(total)
	if percent > 1 {
		percent = 1
	}
	return p.model.ViewAs(percent)
}
