package cryptopals

import (
	"fmt"
	"io"
	"strings"
)

// Section writes title inside a box:
//
//	+------------+
//	| Statistics |
//	+------------+
func Section(w io.Writer, title string) {
	dashes := strings.Repeat("-", len(title))
	fmt.Fprintf(w, "\n+-%s-+\n", dashes)
	fmt.Fprintf(w, "| %s |\n", title)
	fmt.Fprintf(w, "+-%s-+\n", dashes)
}

// Subsection writes an underlined title:
//
//	Permutations:
//	-------------
func Subsection(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s:\n%s\n", title, strings.Repeat("-", len(title)+1))
}

// Expect compares a challenge result with its published answer.
func Expect(what, want, got string) error {
	if want != got {
		return fmt.Errorf("%w: %s is %q, want %q", ErrUnexpectedResult, what, got, want)
	}
	return nil
}
