package cmd

import (
	"github.com/charmbracelet/lipgloss"
)

var colorSuccess = lipgloss.Color("#00B785")
var colorFailed = lipgloss.Color("#E1244C")

var styleSuccess = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
var styleFailed = lipgloss.NewStyle().Foreground(colorFailed).Bold(true)
var styleHighlight = lipgloss.NewStyle().Foreground(lipgloss.Color("#407FF8")).Bold(true)
var styleHeading = lipgloss.NewStyle().Bold(true)

var styleListItem = lipgloss.NewStyle().Padding(0, 2)

var styleSuccessBox = lipgloss.NewStyle().
	Padding(0, 1).
	Margin(1, 0).
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(colorSuccess).
	Width(80)

var styleErrorWrapper = lipgloss.NewStyle().Padding(0, 0).BorderStyle(lipgloss.RoundedBorder()).BorderForeground(colorFailed)
var styleErrorHeading = lipgloss.NewStyle().Foreground(colorFailed).Bold(true)
var styleErrorBody = lipgloss.NewStyle().PaddingLeft(3).Foreground(colorFailed).Width(80).MaxWidth(80)

func renderError(err error) string {
	return styleErrorWrapper.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			styleErrorHeading.Render("💥 AN ERROR OCCURRED WHILE HANDLING YOUR COMMAND"),
			styleErrorBody.Render(err.Error()),
		),
	)
}
