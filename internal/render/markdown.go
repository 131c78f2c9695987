package render

import (
	"fmt"
	"strings"

	"github.com/bluby/brew-parser/internal/formula"
)

// DefaultTitle is the heading of the standard formula listing document.
const DefaultTitle = "# New Homebrew Formulas"

// Markdown formats a formula listing as a Markdown document with the
// default title. Missing fields render as placeholder text rather than
// empty strings.
func Markdown(formulas []formula.Formula) string {
	return MarkdownWithTitle(DefaultTitle, formulas)
}

// MarkdownWithTitle is Markdown with a custom top-level heading; the "new"
// subcommand uses it to relabel the document as newly added formulas.
func MarkdownWithTitle(title string, formulas []formula.Formula) string {
	if len(formulas) == 0 {
		return title + "\n\nNo new formulas found.\n"
	}

	var b strings.Builder
	b.WriteString(title + "\n\n")
	fmt.Fprintf(&b, "Found %d formulas\n\n", len(formulas))

	for _, f := range formulas {
		b.WriteString(FormulaSection(f))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// FormulaSection renders a single formula as a Markdown section.
func FormulaSection(f formula.Formula) string {
	name := f.Name
	if name == "" {
		name = "Unknown"
	}
	desc := f.Desc
	if desc == "" {
		desc = "No description available"
	}
	homepage := f.Homepage
	if homepage == "" {
		homepage = "No homepage listed"
	}
	version := f.StableVersion()
	if version == "" {
		version = "Unknown version"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n", name)
	fmt.Fprintf(&b, "**Version:** %s  \n", version)
	fmt.Fprintf(&b, "**Description:** %s  \n", desc)
	fmt.Fprintf(&b, "**Homepage:** %s  \n", homepage)
	return b.String()
}
