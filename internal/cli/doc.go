// Package cli implements the command-line interface for brew-parser.
//
// The cli package provides the Cobra-based CLI with a default listing mode
// plus update, diff, new, and info subcommands. It coordinates the brewapi,
// storage, formula, and render packages to fetch, persist, and report on
// Homebrew formula changes.
package cli
