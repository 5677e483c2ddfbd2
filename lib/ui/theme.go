// Copyright 2026 The Shipboard Authors
// SPDX-License-Identifier: Apache-2.0

package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for hosted applications. All colors
// use lipgloss ANSI 256-color codes for broad terminal compatibility;
// the palette assumes a dark background (the common case for the
// terminals that attach to a Shipboard server).
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// UI chrome.
	TitleForeground lipgloss.Color
	BorderColor     lipgloss.Color
	HelpText        lipgloss.Color

	// Accent is used for live values (geometry readouts, input
	// echo) that should stand out from static labels.
	Accent lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	TitleForeground: lipgloss.Color("255"),
	BorderColor:     lipgloss.Color("240"),
	HelpText:        lipgloss.Color("241"),

	Accent: lipgloss.Color("75"), // blue
}
