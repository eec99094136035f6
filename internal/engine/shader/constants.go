// Package shader generates, caches and rebuilds GPU programs. A caller
// asks for a shader by logical name plus a set of compile-time
// constants; the package assembles the final program text from
// driver-capability headers, injected constants and cached source
// bodies, compiles it, and hands back a stable id.
package shader

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ValueKind tags a constant value as integer or floating point.
type ValueKind uint8

const (
	IntValue ValueKind = iota
	FloatValue
)

// Value is a compile-time shader constant: either an int or a float32.
// The two kinds render differently (floats always carry a decimal
// point, which GLSL ES requires) and compare as distinct even for
// equal magnitudes.
type Value struct {
	kind ValueKind
	i    int
	f    float32
}

// Int returns an integer constant value.
func Int(v int) Value { return Value{kind: IntValue, i: v} }

// Float returns a floating-point constant value.
func Float(v float32) Value { return Value{kind: FloatValue, f: v} }

// Kind reports whether the value is an int or a float.
func (v Value) Kind() ValueKind { return v.kind }

// Int returns the integer payload; zero for float values.
func (v Value) Int() int { return v.i }

// Float returns the float payload; zero for int values.
func (v Value) Float() float32 { return v.f }

// String renders the value as a GLSL literal. Whole-number floats keep
// a trailing ".0" so the literal stays a float.
func (v Value) String() string {
	switch v.kind {
	case IntValue:
		return strconv.Itoa(v.i)
	case FloatValue:
		s := strconv.FormatFloat(float64(v.f), 'f', -1, 32)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}
	panic(fmt.Sprintf("shader: invalid value kind %d", v.kind))
}

// Constants maps constant names to tagged values. It keys cache
// identity and is spliced into program text as #define lines, so names
// must be identifier-safe and already trimmed; inserting a name with
// surrounding whitespace panics (it would silently corrupt the
// generated text and defeat deduplication).
type Constants map[string]Value

// SetInt stores an integer constant.
func (c Constants) SetInt(name string, v int) { c.set(name, Int(v)) }

// SetFloat stores a floating-point constant.
func (c Constants) SetFloat(name string, v float32) { c.set(name, Float(v)) }

func (c Constants) set(name string, v Value) {
	mustBeTrimmed(name)
	c[name] = v
}

func mustBeTrimmed(name string) {
	if strings.TrimSpace(name) != name {
		panic(fmt.Sprintf("shader: constant name %q has surrounding whitespace", name))
	}
}

// Clone returns an independent copy.
func (c Constants) Clone() Constants {
	out := make(Constants, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Equal reports value equality irrespective of insertion order.
func (c Constants) Equal(other Constants) bool {
	if len(c) != len(other) {
		return false
	}
	for k, v := range c {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// sortedNames returns the constant names in lexical order, giving the
// emitted text a deterministic layout.
func (c Constants) sortedNames() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// writeDefines emits one "#define NAME VALUE" line per constant, sorted
// by name. Panics on untrimmed names that bypassed the Set helpers.
func (c Constants) writeDefines(b *strings.Builder) {
	for _, name := range c.sortedNames() {
		mustBeTrimmed(name)
		b.WriteString("#define ")
		b.WriteString(name)
		b.WriteByte(' ')
		b.WriteString(c[name].String())
		b.WriteByte('\n')
	}
}

// logLabel builds a short identifying label from a shader name and its
// input constants, for compiler output and logs. Long labels are
// truncated with an ellipsis.
func logLabel(name string, constants Constants) string {
	label := name
	for _, k := range constants.sortedNames() {
		if len(label) > 60 {
			label += "..."
			break
		}
		label += " " + k + "=" + constants[k].String()
	}
	return label
}
