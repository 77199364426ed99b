// Package ui holds the terminal building blocks shared by the dashboard and
// the plain CLI commands: the color palette, status symbols, sparkline and
// trend-strip renderers, and a static table for command output.
//
// # Palette
//
// Colors are truecolor hex values; lipgloss degrades them to the terminal's
// profile, and to no color at all when NO_COLOR is set.
//
//	ColorBg, ColorPanelBg, ColorPanelBgActive  - backgrounds
//	ColorText, ColorTextDim, ColorMuted        - text weights
//	ColorAccent, ColorSecondary, ColorTertiary - accents
//	ColorGood, ColorWarn, ColorBad (+ Bright)  - alert levels
//
// # Graphs
//
// All graphs use a fixed 0-100 scale on the eight block glyphs ▁ through █:
//
//	ui.RenderSparkline(history, 40, ui.ColorGood) // colored, right-aligned
//	ui.TrendStrip(history, 28, phase)             // plain, with a moving marker
//	ui.CoreMeter(perCore, 22)                     // one block per core
package ui
