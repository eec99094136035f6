package shader

import (
	"fmt"
	"io"
	"strings"
)

// DumpProgram writes a line-numbered listing of one stage's assembled
// text, for operator debugging after a compile failure.
func DumpProgram(w io.Writer, stage, program string) {
	fmt.Fprintf(w, "%s shader program:\n", stage)
	fmt.Fprintln(w, "----------------------------------")
	for i, line := range strings.Split(program, "\n") {
		fmt.Fprintf(w, "%d: %s\n", i+1, line)
	}
	fmt.Fprintf(w, "End of %s shader program.\n", stage)
}

// dumpProgramString renders DumpProgram into a string for logging.
func dumpProgramString(stage, program string) string {
	var b strings.Builder
	DumpProgram(&b, stage, program)
	return b.String()
}
