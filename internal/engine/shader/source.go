package shader

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/vantage/internal/config"
	"github.com/Faultbox/vantage/internal/engine/video"
	"github.com/Faultbox/vantage/internal/logger"
)

// Record is one compiled shader entry. Identity for deduplication is
// the (Name, BaseMaterial, InputConstants) triple compared by value.
// Program is valid exactly when Name is non-empty; the sentinel record
// at id 0 has an empty name and Program 0 ("use fixed function").
type Record struct {
	Name           string
	BaseMaterial   video.BaseMaterial
	InputConstants Constants

	// Program is the compiled driver handle, 0 for "no program".
	Program video.ProgramID
	// Dispatcher fans renderer events out to this program's uniform
	// setters. Nil for the sentinel and on the null driver.
	Dispatcher *Dispatcher
}

// Source owns the append-only, id-indexed table of compiled shader
// records, deduplicates identical requests and drives generation.
//
// The goroutine that constructs the Source becomes its owner: the only
// goroutine allowed to touch the GPU interface. RequestShader may be
// called from any goroutine, but on a cache miss an off-owner call
// degrades to the sentinel id 0 (queuing cross-goroutine requests is
// not implemented). RebuildShaders, InsertSourceShader and the setter
// registrations are owner-only.
type Source struct {
	owner    uint64
	driver   video.Driver
	resolver *Resolver
	sources  *SourceCache

	// mu guards appends to records, Record lookups, rebuild and
	// teardown. The dedup scan in RequestShader intentionally runs
	// outside it: a concurrent rebuild can race the scan. This is a
	// known sharp edge of the design.
	mu      sync.Mutex
	records []Record

	constantSetters  []ConstantSetter
	uniformFactories []UniformSetterFactory
}

// NewSource creates a shader source over the given driver and resolver.
// The calling goroutine becomes the owner. The built-in constant and
// uniform setters are registered first; cfg supplies the feature flags
// the built-in constant setter reads.
func NewSource(driver video.Driver, resolver *Resolver, cfg *config.ShaderConfig) *Source {
	s := &Source{
		owner:    curGoroutineID(),
		driver:   driver,
		resolver: resolver,
		sources:  NewSourceCache(resolver),
	}

	// Index 0 is the permanent null shader.
	s.records = append(s.records, Record{})

	s.AddConstantSetter(NewMainConstantSetter(cfg))
	s.AddUniformSetterFactory(MainUniformSetterFactory{})

	return s
}

// AddConstantSetter registers a global constant setter. Owner-only;
// registration is irreversible for the process lifetime.
func (s *Source) AddConstantSetter(setter ConstantSetter) {
	s.constantSetters = append(s.constantSetters, setter)
}

// AddUniformSetterFactory registers a global uniform setter factory.
// Owner-only; registration is irreversible for the process lifetime.
func (s *Source) AddUniformSetterFactory(factory UniformSetterFactory) {
	s.uniformFactories = append(s.uniformFactories, factory)
}

// RequestShader returns the id of the shader compiled from the named
// sources with the given input constants and base material, generating
// it on first request. An empty name yields the sentinel id 0. On a
// cache miss from a non-owner goroutine the request is not serviced:
// the error is logged and the sentinel id is returned.
//
// Compilation failures are returned to the caller; the surrounding
// application layer is expected to surface them and abort the
// triggering action.
func (s *Source) RequestShader(name string, input Constants, baseMat video.BaseMaterial) (uint32, error) {
	// Empty name means shader 0.
	if name == "" {
		logger.Info("shader requested with empty name")
		return 0, nil
	}

	// Unlocked scan over a snapshot of the table.
	records := s.records
	for i := range records {
		rec := &records[i]
		if rec.Name == name && rec.BaseMaterial == baseMat && rec.InputConstants.Equal(input) {
			return uint32(i), nil
		}
	}

	if curGoroutineID() != s.owner {
		logger.Error("shader generation requested from a non-owner goroutine; returning null shader",
			zap.String("shader", name))
		return 0, nil
	}

	rec, err := s.generate(name, input, baseMat)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	id := uint32(len(s.records))
	s.records = append(s.records, rec)
	s.mu.Unlock()

	return id, nil
}

// Record returns the record for an id. Out-of-range ids (including ids
// from a torn-down Source) yield the empty sentinel record.
func (s *Source) Record(id uint32) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id >= uint32(len(s.records)) {
		return Record{}
	}
	return s.records[id]
}

// InsertSourceShader stores program text for (name, role) without
// touching the filesystem, unless a local override file exists, which
// always wins over programmatically supplied defaults. Owner-only.
func (s *Source) InsertSourceShader(name string, role FileRole, text string) error {
	if curGoroutineID() != s.owner {
		return ErrWrongGoroutine
	}
	s.sources.Insert(name, role, text, true)
	return nil
}

// ProcessQueue services queued cross-goroutine shader requests.
// Queuing is not implemented, so this is a no-op hook.
func (s *Source) ProcessQueue() {}

// RebuildShaders regenerates every record in place from its stored
// (name, base material, constants) triple, releasing the old compiled
// handles first. Call after a rendering feature flag changes so all
// programs reflect the new constant set. Cached source text is kept:
// rebuild reacts to constant changes, not source edits. Owner-only.
func (s *Source) RebuildShaders() error {
	if curGoroutineID() != s.owner {
		return ErrWrongGoroutine
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		rec := &s.records[i]
		if rec.Name != "" {
			s.driver.DeleteProgram(rec.Program)
			rec.Program = 0 // invalidate
			rec.Dispatcher = nil
		}
	}

	logger.Info("recreating shaders", zap.Int("count", len(s.records)-1))

	for i := range s.records {
		rec := &s.records[i]
		if rec.Name == "" {
			continue
		}
		newRec, err := s.generate(rec.Name, rec.InputConstants, rec.BaseMaterial)
		if err != nil {
			return fmt.Errorf("rebuilding shader %q: %w", rec.Name, err)
		}
		*rec = newRec
	}

	return nil
}

// Close releases every compiled program and empties the table.
// Previously issued ids resolve to the sentinel record afterwards.
// Owner-only.
func (s *Source) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for i := range s.records {
		if s.records[i].Name != "" {
			s.driver.DeleteProgram(s.records[i].Program)
			n++
		}
	}
	s.records = nil

	logger.Info("shader source closed", zap.Int("released", n))
}

// MaterialType classifies a surface material for the convenience
// request path. Its numeric value is spliced into the program as the
// MATERIAL_TYPE constant.
type MaterialType int

const (
	MaterialBasic MaterialType = iota
	MaterialAlpha
	MaterialLiquidTransparent
	MaterialLiquidOpaque
	MaterialWavingLeaves
	MaterialWavingPlants
	MaterialWavingLiquidBasic
	MaterialWavingLiquidTransparent
	MaterialWavingLiquidOpaque
	MaterialPlain
	MaterialPlainAlpha
)

// DrawType identifies the draw style spliced into the program as the
// DRAWTYPE constant.
type DrawType int

// RequestMaterialShader requests the named shader with the standard
// {MATERIAL_TYPE, DRAWTYPE} input constants, deriving the base material
// from the material type.
func (s *Source) RequestMaterialShader(name string, material MaterialType, draw DrawType) (uint32, error) {
	input := Constants{}
	input.SetInt("MATERIAL_TYPE", int(material))
	input.SetInt("DRAWTYPE", int(draw))

	base := video.MaterialSolid
	switch material {
	case MaterialAlpha, MaterialPlainAlpha,
		MaterialLiquidTransparent, MaterialWavingLiquidTransparent:
		base = video.MaterialTransparentAlphaChannel
	case MaterialBasic, MaterialPlain, MaterialWavingLeaves,
		MaterialWavingPlants, MaterialWavingLiquidBasic:
		base = video.MaterialTransparentAlphaChannelRef
	}

	return s.RequestShader(name, input, base)
}
