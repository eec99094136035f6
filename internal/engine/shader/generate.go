package shader

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/vantage/internal/engine/video"
	"github.com/Faultbox/vantage/internal/logger"
)

// Header fragments for the fully programmable tier (core GL3, GLES2).
// Semantic attribute and matrix names are declared natively.
const programmableVertexHeader = `precision mediump float;

uniform highp mat4 mWorldView;
uniform highp mat4 mWorldViewProj;
uniform mediump mat4 mTexture;

attribute highp vec4 inVertexPosition;
attribute lowp vec4 inVertexColor;
attribute mediump vec2 inTexCoord0;
attribute mediump vec3 inVertexNormal;
attribute mediump vec4 inVertexTangent;
attribute mediump vec4 inVertexBinormal;
` +
	// Vertex color component order is reversed compared to what the
	// vertex buffers hold.
	"#define inVertexColor (inVertexColor.bgra)\n"

const programmableFragmentHeader = `precision mediump float;
`

// Header fragments for the legacy fixed-function-emulation tier: the
// same semantic names, aliased onto the gl_* builtins.
const legacyCommonHeader = `#version 120
#define lowp
#define mediump
#define highp
`

const legacyVertexHeader = `#define mWorldView gl_ModelViewMatrix
#define mWorldViewProj gl_ModelViewProjectionMatrix
#define mTexture (gl_TextureMatrix[0])

#define inVertexPosition gl_Vertex
#define inVertexColor gl_Color
#define inTexCoord0 gl_MultiTexCoord0
#define inVertexNormal gl_Normal
#define inVertexTangent gl_MultiTexCoord1
#define inVertexBinormal gl_MultiTexCoord2
`

// Legacy semantic texture names mapped to the fixed texture units,
// appended to the fragment header on both tiers.
const samplerAliasHeader = `#define baseTexture texture0
#define normalTexture texture1
#define textureFlags texture2
`

// generate assembles and compiles the program for one record. Must run
// on the owner goroutine.
func (s *Source) generate(name string, input Constants, baseMat video.BaseMaterial) (Record, error) {
	rec := Record{
		Name:           name,
		BaseMaterial:   baseMat,
		InputConstants: input.Clone(),
	}

	driver := s.driver

	// The null driver doesn't support shaders, but we can pretend it
	// does.
	if driver.Type() == video.DriverNull {
		return rec, nil
	}
	if !driver.SupportsShaders() {
		return rec, ErrShadersUnsupported
	}

	fullyProgrammable := driver.FullyProgrammable()

	var common strings.Builder
	var vertexHeader, fragmentHeader, geometryHeader string
	if fullyProgrammable {
		if driver.Type() == video.DriverOpenGL3 {
			common.WriteString("#version 150\n")
		} else {
			common.WriteString("#version 100\n")
		}
		vertexHeader = programmableVertexHeader
		fragmentHeader = programmableFragmentHeader
	} else {
		common.WriteString(legacyCommonHeader)
		vertexHeader = legacyVertexHeader
	}
	fragmentHeader += samplerAliasHeader

	label := logLabel(name, rec.InputConstants)

	constants := rec.InputConstants.Clone()

	useDiscard := fullyProgrammable
	if !useDiscard && strings.Contains(driver.Name(), "GC7000") {
		// Workaround for an OpenGL implementation lacking
		// GL_ALPHA_TEST.
		useDiscard = true
	}
	if useDiscard {
		switch baseMat {
		case video.MaterialTransparentAlphaChannel:
			constants.SetInt("USE_DISCARD", 1)
		case video.MaterialTransparentAlphaChannelRef:
			constants.SetInt("USE_DISCARD_REF", 1)
		}
	}

	// Let the constant setters do their job, in registration order.
	for _, setter := range s.constantSetters {
		setter.OnGenerate(name, constants)
	}
	constants.writeDefines(&common)

	commonHeader := common.String()
	// Reset the line counter so compiler diagnostics reference line
	// numbers in the original file rather than the synthetic header.
	const lineReset = "#line 0\n"

	vertex := s.sources.GetOrLoad(name, RoleVertex)
	fragment := s.sources.GetOrLoad(name, RoleFragment)
	geometry := s.sources.GetOrLoad(name, RoleGeometry)

	stages := video.StageSources{
		Vertex:   commonHeader + vertexHeader + lineReset + vertex,
		Fragment: commonHeader + fragmentHeader + lineReset + fragment,
	}
	// The geometry stage is optional.
	if geometry != "" {
		stages.Geometry = commonHeader + geometryHeader + lineReset + geometry
	}

	dispatcher := newDispatcher(s.uniformFactories)

	logger.Info("compiling high level shaders", zap.String("shader", label))
	program, err := driver.CompileProgram(stages, label, dispatcher)
	if err != nil {
		logger.Error("failed to generate shaders",
			zap.String("shader", label), zap.Error(err))
		logger.Warn(dumpProgramString("Vertex", stages.Vertex))
		logger.Warn(dumpProgramString("Fragment", stages.Fragment))
		if stages.Geometry != "" {
			logger.Warn(dumpProgramString("Geometry", stages.Geometry))
		}
		return rec, &CompileError{Label: label, Err: err}
	}

	rec.Program = program
	rec.Dispatcher = dispatcher
	return rec, nil
}
