// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorFlag is an embeddable struct that adds --no-color to a command's
// parameter struct. Colour is already dropped when the output is not a
// terminal or NO_COLOR is set.
type ColorFlag struct {
	NoColor bool `json:"-" flag:"no-color" desc:"disable coloured output"`
}

// Styles are the text styles shared by report-printing commands.
type Styles struct {
	Good    lipgloss.Style
	Pending lipgloss.Style
	Active  lipgloss.Style
	Bad     lipgloss.Style
	Muted   lipgloss.Style
	Heading lipgloss.Style
}

// Styles returns styles bound to a renderer for w.
func (f ColorFlag) Styles(w io.Writer) Styles {
	renderer := lipgloss.NewRenderer(w)
	if f.NoColor {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return Styles{
		Good:    renderer.NewStyle().Foreground(lipgloss.Color("2")),
		Pending: renderer.NewStyle().Foreground(lipgloss.Color("3")),
		Active:  renderer.NewStyle().Foreground(lipgloss.Color("4")),
		Bad:     renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Muted:   renderer.NewStyle().Foreground(lipgloss.Color("245")),
		Heading: renderer.NewStyle().Bold(true),
	}
}
