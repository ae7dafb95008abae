package program

import (
	"fmt"
	"io"
	"strings"
)

const dumpIndent = "    "

// Dump writes a human-readable listing of the program to w, one indexed
// instruction per line, indented by bracket depth. It has no effect on
// compiled behavior.
func (p Program) Dump(w io.Writer) {
	depth := 0
	for i, in := range p {
		if in.Op == OpJumpIfNonZero {
			depth--
		}
		fmt.Fprintf(w, "%s%d: %s\n", strings.Repeat(dumpIndent, depth), i, in)
		if in.Op == OpJumpIfZero {
			depth++
		}
	}
}
