package shader

import (
	"os"
	"path/filepath"
	"sync"
)

// FileRole names the pipeline stage a source file belongs to.
type FileRole int

const (
	RoleVertex FileRole = iota
	RoleFragment
	RoleGeometry
)

// Filename returns the on-disk file name for the role.
func (r FileRole) Filename() string {
	switch r {
	case RoleVertex:
		return "opengl_vertex.glsl"
	case RoleFragment:
		return "opengl_fragment.glsl"
	case RoleGeometry:
		return "opengl_geometry.glsl"
	}
	return ""
}

func (r FileRole) String() string {
	switch r {
	case RoleVertex:
		return "vertex"
	case RoleFragment:
		return "fragment"
	case RoleGeometry:
		return "geometry"
	}
	return "unknown"
}

// Resolver maps a (shader name, file role) pair to a filesystem path.
// A user override directory is searched first, then the bundled assets
// under assetsDir/shaders. Every result is memoized, including "not
// found", so repeated lookups never re-touch the filesystem.
//
// The memo lives for the process. Changing the override directory does
// not purge previously cached negative results; stale negatives persist
// (known limitation).
type Resolver struct {
	mu          sync.RWMutex
	overrideDir string
	assetsDir   string
	cache       map[string]string // "" = confirmed absent

	// exists is the filesystem probe; swapped out in tests.
	exists func(path string) bool
}

// NewResolver creates a resolver over the bundled assets directory.
func NewResolver(assetsDir string) *Resolver {
	return &Resolver{
		assetsDir: assetsDir,
		cache:     make(map[string]string),
		exists:    fileExists,
	}
}

// SetOverrideDir sets the user override directory. Pass "" to disable
// the override tier. Cached results are not invalidated.
func (r *Resolver) SetOverrideDir(dir string) {
	r.mu.Lock()
	r.overrideDir = dir
	r.mu.Unlock()
}

// Resolve returns the path for the named shader's file, or "" if the
// file exists in neither tier.
func (r *Resolver) Resolve(name string, role FileRole) string {
	key := name + "/" + role.Filename()

	r.mu.RLock()
	path, ok := r.cache[key]
	overrideDir := r.overrideDir
	r.mu.RUnlock()
	if ok {
		return path
	}

	if overrideDir != "" {
		if p := filepath.Join(overrideDir, name, role.Filename()); r.exists(p) {
			path = p
		}
	}
	if path == "" {
		if p := filepath.Join(r.assetsDir, "shaders", name, role.Filename()); r.exists(p) {
			path = p
		}
	}

	// An empty result is cached too.
	r.mu.Lock()
	r.cache[key] = path
	r.mu.Unlock()

	return path
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
