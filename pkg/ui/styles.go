package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Terminal palette; ANSI indexes so the user's scheme decides the exact shade
var (
	ColorSuccess = lipgloss.AdaptiveColor{Light: "2", Dark: "2"}
	ColorError   = lipgloss.AdaptiveColor{Light: "1", Dark: "1"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "3", Dark: "3"}
	ColorPrimary = lipgloss.AdaptiveColor{Light: "5", Dark: "5"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "6", Dark: "6"}
	ColorAccent  = lipgloss.AdaptiveColor{Light: "4", Dark: "4"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "8", Dark: "8"}
	ColorText    = lipgloss.AdaptiveColor{Light: "0", Dark: "7"}
)

// Styles are rebuilt by SetTheme
var (
	StyleSuccess lipgloss.Style
	StyleError   lipgloss.Style
	StyleWarning lipgloss.Style
	StylePrimary lipgloss.Style
	StyleInfo    lipgloss.Style
	StyleAccent  lipgloss.Style
	StyleMuted   lipgloss.Style
	StyleTitle   lipgloss.Style

	StyleTableHeader lipgloss.Style
	StyleTableRow    lipgloss.Style
	StyleTableRowAlt lipgloss.Style
	StyleTableBorder lipgloss.Style
)

// Outcome icons, one per month
const (
	IconSuccess = "✔"
	IconError   = "✘"
	IconSkipped = "–"
)

const (
	IconRocket  = "🚀"
	IconInfo    = "ℹ"
	IconWarning = "⚠"
)

func init() {
	SetTheme("auto")
}

// SetTheme applies a color theme: "light", "dark" or "auto" (detected by lipgloss)
func SetTheme(theme string) {
	switch theme {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	}

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleError = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleInfo = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleAccent = lipgloss.NewStyle().Foreground(ColorAccent)
	StyleMuted = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleTitle = StylePrimary.Underline(true)

	StyleTableHeader = StylePrimary.Align(lipgloss.Left)
	StyleTableRow = lipgloss.NewStyle().Foreground(ColorText)
	StyleTableRowAlt = StyleTableRow.Faint(true)
	StyleTableBorder = StyleMuted
}

// FormatOutcome renders the result of one month: "ok", "failed" or "skipped".
// The detail follows the icon; failures are shown in full, the rest muted.
func FormatOutcome(outcome, detail string) string {
	switch outcome {
	case "ok":
		return StyleSuccess.Render(IconSuccess) + " " + StyleMuted.Render(detail)
	case "failed":
		return StyleError.Render(IconError + " " + detail)
	default:
		return StyleMuted.Render(IconSkipped + " " + detail)
	}
}

func FormatSuccess(msg string) string {
	return StyleSuccess.Render(IconSuccess + " " + msg)
}

func FormatError(msg string) string {
	return StyleError.Render(IconError + " " + msg)
}

func FormatInfo(msg string) string {
	return StyleInfo.Render(IconInfo + " " + msg)
}

func FormatWarning(msg string) string {
	return StyleWarning.Render(IconWarning + " " + msg)
}

// FormatRocket announces the start of a batch
func FormatRocket(msg string) string {
	return StylePrimary.Render(IconRocket + " " + msg)
}

func FormatTitle(title string) string {
	return StyleTitle.Render(title)
}

func FormatMuted(text string) string {
	return StyleMuted.Render(text)
}
