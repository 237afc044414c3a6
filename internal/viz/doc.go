// Package viz renders simulation output for the terminal.
//
//   - [Canvas]: Braille-based pixel canvas, 2x4 dots per cell
//   - [PlotComponents]: one asciigraph chart per state component
//   - [Sparkline] and [ProgressBar]: compact lipgloss widgets
package viz
