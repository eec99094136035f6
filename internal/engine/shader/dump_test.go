package shader

import (
	"strings"
	"testing"
)

func TestDumpProgram(t *testing.T) {
	var b strings.Builder
	DumpProgram(&b, "Vertex", "#version 150\nvoid main() {\n}")

	out := b.String()
	if !strings.HasPrefix(out, "Vertex shader program:\n") {
		t.Errorf("unexpected dump prefix: %q", out)
	}
	for _, want := range []string{
		"1: #version 150\n",
		"2: void main() {\n",
		"3: }\n",
		"End of Vertex shader program.\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in dump output:\n%s", want, out)
		}
	}
}

func TestDumpProgramEmpty(t *testing.T) {
	var b strings.Builder
	DumpProgram(&b, "Geometry", "")

	if !strings.Contains(b.String(), "1: \n") {
		t.Errorf("expected single empty numbered line, got %q", b.String())
	}
}
