package shader

import (
	"strings"
	"testing"

	"github.com/Faultbox/vantage/internal/engine/video"
)

func requestBasic(t *testing.T, src *Source, input Constants, base video.BaseMaterial) {
	t.Helper()
	if _, err := src.RequestShader("basic", input, base); err != nil {
		t.Fatalf("request: %v", err)
	}
}

func TestHeaderOpenGL3(t *testing.T) {
	driver := newFakeDriver() // OpenGL3, fully programmable
	src := newTestSource(t, driver)
	requestBasic(t, src, Constants{}, video.MaterialSolid)

	compiled := driver.lastCompiled(t)
	if !strings.HasPrefix(compiled.stages.Vertex, "#version 150\n") {
		t.Error("expected #version 150 vertex header")
	}
	if !strings.Contains(compiled.stages.Vertex, "attribute highp vec4 inVertexPosition;") {
		t.Error("expected native attribute declarations")
	}
	if !strings.Contains(compiled.stages.Vertex, "#define inVertexColor (inVertexColor.bgra)") {
		t.Error("expected vertex color swizzle define")
	}
	if !strings.Contains(compiled.stages.Fragment, "precision mediump float;") {
		t.Error("expected fragment precision directive")
	}
	if !strings.Contains(compiled.stages.Fragment, "#define baseTexture texture0") {
		t.Error("expected sampler alias defines")
	}
}

func TestHeaderGLES2(t *testing.T) {
	driver := newFakeDriver()
	driver.typ = video.DriverGLES2
	src := newTestSource(t, driver)
	requestBasic(t, src, Constants{}, video.MaterialSolid)

	compiled := driver.lastCompiled(t)
	if !strings.HasPrefix(compiled.stages.Vertex, "#version 100\n") {
		t.Error("expected #version 100 vertex header")
	}
}

func TestHeaderLegacy(t *testing.T) {
	driver := newFakeDriver()
	driver.typ = video.DriverOpenGLLegacy
	driver.fully = false
	src := newTestSource(t, driver)
	requestBasic(t, src, Constants{}, video.MaterialSolid)

	compiled := driver.lastCompiled(t)
	if !strings.HasPrefix(compiled.stages.Vertex, "#version 120\n") {
		t.Error("expected #version 120 header")
	}
	if !strings.Contains(compiled.stages.Vertex, "#define inVertexPosition gl_Vertex") {
		t.Error("expected gl_* builtin aliases on the legacy tier")
	}
	if !strings.Contains(compiled.stages.Vertex, "#define highp\n") {
		t.Error("expected precision qualifiers defined away")
	}
	if strings.Contains(compiled.stages.Fragment, "precision mediump float;") {
		t.Error("legacy tier must not emit a precision directive")
	}
}

func TestDiscardConstants(t *testing.T) {
	tests := []struct {
		name     string
		typ      video.DriverType
		fully    bool
		renderer string
		base     video.BaseMaterial
		want     string
		absent   string
	}{
		{
			name: "programmable alpha",
			typ:  video.DriverOpenGL3, fully: true,
			base: video.MaterialTransparentAlphaChannel,
			want: "#define USE_DISCARD 1",
		},
		{
			name: "programmable alpha ref",
			typ:  video.DriverOpenGL3, fully: true,
			base: video.MaterialTransparentAlphaChannelRef,
			want: "#define USE_DISCARD_REF 1",
		},
		{
			name: "programmable solid",
			typ:  video.DriverOpenGL3, fully: true,
			base:   video.MaterialSolid,
			absent: "USE_DISCARD",
		},
		{
			name: "legacy alpha",
			typ:  video.DriverOpenGLLegacy, fully: false,
			renderer: "Mesa DRI",
			base:     video.MaterialTransparentAlphaChannel,
			absent:   "USE_DISCARD",
		},
		{
			name: "legacy GC7000 alpha",
			typ:  video.DriverOpenGLLegacy, fully: false,
			renderer: "Vivante GC7000",
			base:     video.MaterialTransparentAlphaChannel,
			want:     "#define USE_DISCARD 1",
		},
		{
			name: "legacy GC7000 alpha ref",
			typ:  video.DriverOpenGLLegacy, fully: false,
			renderer: "Vivante GC7000",
			base:     video.MaterialTransparentAlphaChannelRef,
			want:     "#define USE_DISCARD_REF 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver := newFakeDriver()
			driver.typ = tt.typ
			driver.fully = tt.fully
			if tt.renderer != "" {
				driver.name = tt.renderer
			}
			src := newTestSource(t, driver)
			requestBasic(t, src, Constants{}, tt.base)

			fragment := driver.lastCompiled(t).stages.Fragment
			if tt.want != "" && !strings.Contains(fragment, tt.want) {
				t.Errorf("expected %q in fragment header", tt.want)
			}
			if tt.absent != "" && strings.Contains(fragment, tt.absent) {
				t.Errorf("did not expect %q in fragment header", tt.absent)
			}
		})
	}
}

func TestInputConstantsEmitted(t *testing.T) {
	driver := newFakeDriver()
	src := newTestSource(t, driver)

	input := Constants{}
	input.SetInt("FOO", 3)
	input.SetFloat("BAR", 1.5)
	requestBasic(t, src, input, video.MaterialSolid)

	vertex := driver.lastCompiled(t).stages.Vertex
	if !strings.Contains(vertex, "#define FOO 3\n") {
		t.Error("expected integer define in header")
	}
	if !strings.Contains(vertex, "#define BAR 1.5\n") {
		t.Error("expected float define in header")
	}
}

func TestConstantSetterOrdering(t *testing.T) {
	driver := newFakeDriver()
	src := newTestSource(t, driver)

	src.AddConstantSetter(setterFunc(func(name string, c Constants) {
		c.SetInt("ORDERED", 1)
		c.SetInt("SHARED", 1)
	}))
	src.AddConstantSetter(setterFunc(func(name string, c Constants) {
		// Later setters override earlier ones for the same key.
		c.SetInt("SHARED", 2)
	}))

	requestBasic(t, src, Constants{}, video.MaterialSolid)

	vertex := driver.lastCompiled(t).stages.Vertex
	if !strings.Contains(vertex, "#define ORDERED 1\n") {
		t.Error("expected first setter's constant")
	}
	if !strings.Contains(vertex, "#define SHARED 2\n") {
		t.Error("expected the later setter to win for a shared key")
	}

	// Injected constants do not leak into the record's identity.
	id, err := src.RequestShader("basic", Constants{}, video.MaterialSolid)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if len(src.Record(id).InputConstants) != 0 {
		t.Error("expected setter output to stay out of input constants")
	}
}

type setterFunc func(name string, constants Constants)

func (f setterFunc) OnGenerate(name string, constants Constants) { f(name, constants) }

func TestLineResetMarker(t *testing.T) {
	driver := newFakeDriver()
	src := newTestSource(t, driver)
	requestBasic(t, src, Constants{}, video.MaterialSolid)

	compiled := driver.lastCompiled(t)
	for _, stage := range []string{compiled.stages.Vertex, compiled.stages.Fragment} {
		marker := strings.Index(stage, "#line 0\n")
		if marker < 0 {
			t.Fatal("expected a #line 0 marker")
		}
		body := stage[marker+len("#line 0\n"):]
		if !strings.Contains(body, "void main()") {
			t.Error("expected the source body after the line reset marker")
		}
		if strings.Contains(body, "#define") {
			t.Error("expected all header defines before the line reset marker")
		}
	}
}

func TestGeometryStageOptional(t *testing.T) {
	driver := newFakeDriver()
	src := newTestSource(t, driver)

	requestBasic(t, src, Constants{}, video.MaterialSolid)
	if geom := driver.lastCompiled(t).stages.Geometry; geom != "" {
		t.Errorf("expected no geometry stage, got %q", geom)
	}

	if err := src.InsertSourceShader("withgeom", RoleVertex, "void main() {}\n"); err != nil {
		t.Fatal(err)
	}
	if err := src.InsertSourceShader("withgeom", RoleFragment, "void main() {}\n"); err != nil {
		t.Fatal(err)
	}
	if err := src.InsertSourceShader("withgeom", RoleGeometry, "void geom() {}\n"); err != nil {
		t.Fatal(err)
	}

	if _, err := src.RequestShader("withgeom", Constants{}, video.MaterialSolid); err != nil {
		t.Fatalf("request: %v", err)
	}
	geom := driver.lastCompiled(t).stages.Geometry
	if !strings.Contains(geom, "void geom()") {
		t.Errorf("expected geometry stage assembled, got %q", geom)
	}
	if !strings.Contains(geom, "#line 0\n") {
		t.Error("expected line reset marker in geometry stage")
	}
}

func TestMissingBodiesStillCompile(t *testing.T) {
	// A shader with no source text gets empty bodies; any failure is
	// the driver's to report.
	driver := newFakeDriver()
	src := newTestSource(t, driver)

	if _, err := src.RequestShader("nosource", Constants{}, video.MaterialSolid); err != nil {
		t.Fatalf("request: %v", err)
	}
	compiled := driver.lastCompiled(t)
	if !strings.HasSuffix(compiled.stages.Vertex, "#line 0\n") {
		t.Error("expected empty vertex body")
	}
}

func TestCompileLabel(t *testing.T) {
	driver := newFakeDriver()
	src := newTestSource(t, driver)

	input := Constants{}
	input.SetInt("DRAWTYPE", 0)
	input.SetInt("MATERIAL_TYPE", 1)
	requestBasic(t, src, input, video.MaterialSolid)

	label := driver.lastCompiled(t).label
	if label != "basic DRAWTYPE=0 MATERIAL_TYPE=1" {
		t.Errorf("unexpected label %q", label)
	}
}
