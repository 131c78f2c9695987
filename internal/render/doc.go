// Package render formats formula listings and diff results for display.
//
// Two output shapes are supported: a Markdown document with one section per
// formula (used by the default and "new" commands), and plain-text aligned
// tables with a numeric summary line (used by the "diff" command).
package render
