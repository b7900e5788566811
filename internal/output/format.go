// Package output formats lists and items for replies and CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
)

const (
	// Bullet prefixes each line of an unnumbered listing.
	Bullet = "• "

	// Untitled replaces blank list names and items in listings.
	Untitled = "(untitled)"
)

// FormatItem formats an item line for the show command.
// Format: "{N:>4}  {ITEM}\n" (4-wide right-aligned number, two spaces, item)
func FormatItem(w io.Writer, num int, item string) {
	fmt.Fprintf(w, "%4d  %s\n", num, normalizeItem(item))
}

// FormatListName formats a list name for the lists command.
func FormatListName(w io.Writer, name string) {
	fmt.Fprintln(w, normalizeListName(name))
}

// Bullets renders one "• value" line per entry. Values are shown as stored.
func Bullets(values []string) string {
	lines := make([]string, len(values))
	for i, v := range values {
		lines[i] = Bullet + Escape(v)
	}
	return strings.Join(lines, "\n")
}

// Enumerate renders "1. value" lines, numbering from 1.
func Enumerate(values []string) string {
	lines := make([]string, len(values))
	for i, v := range values {
		lines[i] = fmt.Sprintf("%d. %s", i+1, Escape(v))
	}
	return strings.Join(lines, "\n")
}

// Emphasis wraps s in markdown emphasis markers.
func Emphasis(s string) string {
	return "*" + Escape(s) + "*"
}

var markupEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`)

// Escape backslash-escapes emphasis markers in user text so only markers
// added by Emphasis take effect.
func Escape(s string) string {
	return markupEscaper.Replace(s)
}

// normalizeItem normalizes an item for the show command.
// - Empty or whitespace-only items become "(untitled)"
// - Newlines are replaced with spaces
func normalizeItem(item string) string {
	item = strings.ReplaceAll(item, "\r", " ")
	item = strings.ReplaceAll(item, "\n", " ")

	if strings.TrimSpace(item) == "" {
		return Untitled
	}
	return item
}

// normalizeListName normalizes a list name for display.
// Empty or whitespace-only names become "(untitled)".
func normalizeListName(name string) string {
	if strings.TrimSpace(name) == "" {
		return Untitled
	}
	return name
}
