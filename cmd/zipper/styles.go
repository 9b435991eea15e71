// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Adaptive palette: lipgloss picks the Light or Dark value from the
// terminal background.
var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"}
	colorFaint  = lipgloss.AdaptiveColor{Light: "#78716C", Dark: "#A8A29E"}
	colorGood   = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}
	colorBad    = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	colorCaveat = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	colorPath   = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#93C5FD"}
)

var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	SubtitleStyle = lipgloss.NewStyle().Foreground(colorFaint)
	SuccessStyle  = lipgloss.NewStyle().Foreground(colorGood)
	ErrorStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorBad)
	WarningStyle  = lipgloss.NewStyle().Foreground(colorCaveat)

	// CmdStyle highlights archive paths and command lines inside messages.
	CmdStyle = lipgloss.NewStyle().Foreground(colorPath)

	// list table
	tableBorderStyle = lipgloss.NewStyle().Foreground(colorFaint)
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableDirStyle    = tableCellStyle.Foreground(colorPath)
)
