package shader

import (
	"strings"
	"testing"
)

func TestValueString(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{Int(3), "3"},
		{Int(0), "0"},
		{Int(-7), "-7"},
		{Float(1.5), "1.5"},
		{Float(2), "2.0"},
		{Float(0), "0.0"},
		{Float(-0.25), "-0.25"},
	}

	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("Value %+v: expected %q, got %q", tt.value, tt.want, got)
		}
	}
}

func TestConstantsEqual(t *testing.T) {
	a := Constants{}
	a.SetInt("FOO", 3)
	a.SetFloat("BAR", 1.5)

	b := Constants{}
	b.SetFloat("BAR", 1.5)
	b.SetInt("FOO", 3)

	if !a.Equal(b) {
		t.Error("expected equality to ignore insertion order")
	}

	c := a.Clone()
	c.SetInt("FOO", 4)
	if a.Equal(c) {
		t.Error("expected differing values to compare unequal")
	}
	if a["FOO"] != Int(3) {
		t.Error("Clone must not alias the original")
	}

	// Same magnitude, different tag.
	d := Constants{}
	d.SetFloat("FOO", 3)
	d.SetFloat("BAR", 1.5)
	if a.Equal(d) {
		t.Error("expected int and float tags to compare unequal")
	}

	e := Constants{}
	e.SetInt("FOO", 3)
	if a.Equal(e) {
		t.Error("expected differing lengths to compare unequal")
	}
}

func TestWriteDefines(t *testing.T) {
	c := Constants{}
	c.SetInt("FOO", 3)
	c.SetFloat("BAR", 1.5)
	c.SetFloat("BAZ", 2)

	var b strings.Builder
	c.writeDefines(&b)

	want := "#define BAR 1.5\n#define BAZ 2.0\n#define FOO 3\n"
	if b.String() != want {
		t.Errorf("expected %q, got %q", want, b.String())
	}
}

func TestUntrimmedNamePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected SetInt with untrimmed name to panic")
		}
	}()
	Constants{}.SetInt(" FOO", 1)
}

func TestUntrimmedNamePanicsOnEmit(t *testing.T) {
	// A name smuggled past the Set helpers is caught at emission.
	c := Constants{"FOO ": Int(1)}
	defer func() {
		if recover() == nil {
			t.Error("expected writeDefines to panic on untrimmed name")
		}
	}()
	var b strings.Builder
	c.writeDefines(&b)
}

func TestLogLabel(t *testing.T) {
	c := Constants{}
	c.SetInt("MATERIAL_TYPE", 1)
	c.SetInt("DRAWTYPE", 0)

	got := logLabel("basic", c)
	want := "basic DRAWTYPE=0 MATERIAL_TYPE=1"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLogLabelTruncation(t *testing.T) {
	c := Constants{}
	for _, name := range []string{"AA", "BB", "CC", "DD", "EE", "FF", "GG", "HH", "II", "JJ"} {
		c.SetInt("ENABLE_VERY_LONG_CONSTANT_"+name, 1)
	}

	got := logLabel("basic", c)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected truncated label to end with ellipsis, got %q", got)
	}
	// Truncation stops appending shortly past the cap.
	if len(got) > 120 {
		t.Errorf("label too long: %d chars", len(got))
	}
}
