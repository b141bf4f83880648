// Package viz renders accumulators and render progress in the terminal.
//
//   - [Canvas]: Braille canvas, 2x4 dots per character, colored per character
//   - [Preview]: static colored preview with a stats panel
//   - [CanvasToSVG]: the same preview as an SVG of dots
//   - [Profile]: asciigraph plot of row or column densities
//   - [RunProgress]: Bubble Tea progress bar around a long render
//
// Nothing here is interactive beyond canceling a running render.
package viz
