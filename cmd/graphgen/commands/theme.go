// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/graphgen/cmd/graphgen/cli"
	"github.com/bureau-foundation/graphgen/lib/contenthash"
)

// Theme holds the colors used for change listings. All colors are
// ANSI 256-color codes.
type Theme struct {
	Added    lipgloss.Color
	Removed  lipgloss.Color
	Modified lipgloss.Color
	Faint    lipgloss.Color
}

// DefaultTheme is tuned for dark terminals.
var DefaultTheme = Theme{
	Added:    lipgloss.Color("114"),
	Removed:  lipgloss.Color("203"),
	Modified: lipgloss.Color("221"),
	Faint:    lipgloss.Color("243"),
}

// ChangeColor returns the color for a change kind.
func (theme Theme) ChangeColor(kind contenthash.ChangeKind) lipgloss.Color {
	switch kind {
	case contenthash.Added:
		return theme.Added
	case contenthash.Removed:
		return theme.Removed
	case contenthash.Modified:
		return theme.Modified
	default:
		return theme.Faint
	}
}

// styler renders text for w: colored on a terminal, plain otherwise.
type styler struct {
	theme   Theme
	enabled bool
}

func newStyler(w io.Writer, theme Theme) styler {
	return styler{theme: theme, enabled: cli.IsTerminal(w)}
}

func (s styler) render(color lipgloss.Color, text string) string {
	if !s.enabled {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func (s styler) bold(text string) string {
	if !s.enabled {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Render(text)
}
