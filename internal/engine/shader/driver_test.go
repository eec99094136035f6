package shader

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/vantage/internal/config"
	"github.com/Faultbox/vantage/internal/engine/video"
)

// fakeDriver implements video.Driver for tests, recording every
// compile and delete.
type fakeDriver struct {
	typ      video.DriverType
	name     string
	supports bool
	fully    bool

	failCompile bool

	nextID   video.ProgramID
	compiled []compiledProgram
	deleted  []video.ProgramID
}

type compiledProgram struct {
	stages video.StageSources
	label  string
	cb     video.ProgramCallback
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		typ:      video.DriverOpenGL3,
		name:     "fake renderer",
		supports: true,
		fully:    true,
	}
}

func (d *fakeDriver) Type() video.DriverType  { return d.typ }
func (d *fakeDriver) Name() string            { return d.name }
func (d *fakeDriver) SupportsShaders() bool   { return d.supports }
func (d *fakeDriver) FullyProgrammable() bool { return d.fully }

func (d *fakeDriver) CompileProgram(stages video.StageSources, label string, cb video.ProgramCallback) (video.ProgramID, error) {
	if d.failCompile {
		return 0, errors.New("synthetic compile failure")
	}
	d.nextID++
	d.compiled = append(d.compiled, compiledProgram{stages: stages, label: label, cb: cb})
	return d.nextID, nil
}

func (d *fakeDriver) DeleteProgram(id video.ProgramID) {
	d.deleted = append(d.deleted, id)
}

func (d *fakeDriver) Transform(video.TransformKind) mgl32.Mat4 {
	return mgl32.Ident4()
}

// lastCompiled returns the most recent compile request.
func (d *fakeDriver) lastCompiled(t *testing.T) compiledProgram {
	t.Helper()
	if len(d.compiled) == 0 {
		t.Fatal("no programs were compiled")
	}
	return d.compiled[len(d.compiled)-1]
}

// newTestSource builds a Source over a fake driver and an empty assets
// directory, with simple vertex/fragment bodies injected for "basic".
func newTestSource(t *testing.T, driver *fakeDriver) *Source {
	t.Helper()
	resolver := NewResolver(t.TempDir())
	src := NewSource(driver, resolver, &config.ShaderConfig{})

	if err := src.InsertSourceShader("basic", RoleVertex, "void main() { vertex; }\n"); err != nil {
		t.Fatalf("InsertSourceShader vertex: %v", err)
	}
	if err := src.InsertSourceShader("basic", RoleFragment, "void main() { fragment; }\n"); err != nil {
		t.Fatalf("InsertSourceShader fragment: %v", err)
	}
	return src
}
