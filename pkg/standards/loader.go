// Package standards implements the bundled standards loader (spec
// §4.6, component C7): discovery and parsing of YAML standards shipped
// inside the library's own asset directory, offline and network-free,
// behind a bounded in-process cache.
package standards

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/adri-oss/adri-go/pkg/adri"
)

// DefaultCacheSize is the bounded LRU's default capacity (spec §4.6).
const DefaultCacheSize = 128

//go:embed bundled/*.yaml
var bundledAssets embed.FS

// Bundled returns the Loader over the standards shipped inside this
// module itself — the offline-first default every protection engine
// falls back to before ever touching the filesystem outside the
// package (spec §1, §4.6).
func Bundled() (*Loader, error) {
	sub, err := fs.Sub(bundledAssets, "bundled")
	if err != nil {
		return nil, err
	}
	return New(sub, "bundled")
}

// Metadata is the lightweight summary returned by Loader.Metadata,
// without pulling the full requirements document into the caller.
type Metadata struct {
	ID          string
	Name        string
	Version     string
	Description string
	FilePath    string
}

// Loader is the C7 state machine: Created -> Validated(bundled-dir) ->
// Ready. Construction fails fast if the bundled directory is missing.
// It reads from an fs.FS, so the same implementation serves both the
// module's embedded bundle and an arbitrary on-disk override (tests,
// or a deployment that ships its own bundled-standards directory
// alongside the binary).
type Loader struct {
	files fs.FS
	label string // for error messages / metadata.FilePath
	mu    sync.Mutex
	cache *lruCache
}

// New validates that the root of files is a readable directory, then
// returns a Loader ready to serve load/list/exists/metadata.
func New(files fs.FS, label string) (*Loader, error) {
	if _, err := fs.ReadDir(files, "."); err != nil {
		return nil, &adri.StandardsDirectoryNotFoundError{Path: label}
	}
	return &Loader{files: files, label: label, cache: newLRUCache(DefaultCacheSize)}, nil
}

// NewFromDir is a convenience constructor over a plain OS directory,
// used for bundled-standards overrides and tests.
func NewFromDir(dirPath string) (*Loader, error) {
	info, err := os.Stat(dirPath)
	if err != nil || !info.IsDir() {
		return nil, &adri.StandardsDirectoryNotFoundError{Path: dirPath}
	}
	return New(os.DirFS(dirPath), dirPath)
}

// Load reads <dir>/<name>.yaml, validates its structure, and returns
// the parsed Standard. Results are cached by name in a bounded LRU
// guarded by a lock, safe for concurrent callers (spec §5).
func (l *Loader) Load(name string) (*adri.Standard, error) {
	l.mu.Lock()
	if cached, ok := l.cache.get(name); ok {
		l.mu.Unlock()
		return cached.Clone(), nil
	}
	l.mu.Unlock()

	filename := name + ".yaml"
	raw, err := fs.ReadFile(l.files, filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &adri.StandardNotFoundError{Name: name, Path: filepath.Join(l.label, filename)}
		}
		return nil, &adri.InvalidStandardError{Name: name, Err: err}
	}

	std, err := parseStandard(raw)
	if err != nil {
		return nil, &adri.InvalidStandardError{Name: name, Err: err}
	}

	l.mu.Lock()
	l.cache.put(name, std)
	l.mu.Unlock()

	return std.Clone(), nil
}

// List returns the sorted stems of every *.yaml/*.yml file in the
// bundled directory.
func (l *Loader) List() ([]string, error) {
	entries, err := fs.ReadDir(l.files, ".")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if strings.EqualFold(ext, ".yaml") || strings.EqualFold(ext, ".yml") {
			names = append(names, strings.TrimSuffix(e.Name(), ext))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether name resolves to a bundled standard file.
func (l *Loader) Exists(name string) bool {
	_, err := fs.Stat(l.files, name+".yaml")
	return err == nil
}

// Metadata lazily loads name once and returns its summary fields.
func (l *Loader) Metadata(name string) (Metadata, error) {
	std, err := l.Load(name)
	if err != nil {
		return Metadata{}, err
	}
	return Metadata{
		ID:          std.Standards.ID,
		Name:        std.Standards.Name,
		Version:     std.Standards.Version,
		Description: std.Standards.Description,
		FilePath:    filepath.Join(l.label, name+".yaml"),
	}, nil
}

// LoadFile reads and validates a standard from an arbitrary on-disk
// path, outside any bundled directory. Read errors are returned as-is
// so callers can branch on os.IsNotExist; parse and structure errors
// come back as InvalidStandardError.
func LoadFile(path string) (*adri.Standard, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	std, err := parseStandard(raw)
	if err != nil {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return nil, &adri.InvalidStandardError{Name: name, Err: err}
	}
	return std, nil
}

// parseStandard decodes and structurally validates a standard document
// (spec §4.6: "presence of standards with {id, name, version} and
// requirements with overall_minimum").
func parseStandard(raw []byte) (*adri.Standard, error) {
	var std adri.Standard
	if err := yaml.Unmarshal(raw, &std); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if std.Standards.ID == "" || std.Standards.Name == "" || std.Standards.Version == "" {
		return nil, fmt.Errorf("standards section must set id, name, version")
	}
	var top map[string]any
	if err := yaml.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if req, ok := top["requirements"].(map[string]any); !ok || req["overall_minimum"] == nil {
		return nil, fmt.Errorf("requirements section must set overall_minimum")
	}
	for _, known := range []string{"standards", "record_identification", "requirements", "metadata"} {
		delete(top, known)
	}
	if len(top) > 0 {
		std.Extra = top
	}
	if std.Requirements.OverallMinimum < 0 || std.Requirements.OverallMinimum > 100 {
		return nil, fmt.Errorf("requirements.overall_minimum must be in [0,100], got %v", std.Requirements.OverallMinimum)
	}
	if std.Requirements.FieldRequirements == nil {
		std.Requirements.FieldRequirements = map[string]adri.FieldRule{}
	}
	if std.Requirements.DimensionRequirements == nil {
		std.Requirements.DimensionRequirements = map[string]adri.DimensionConfig{}
	}
	return &std, nil
}
