package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"ssc/internal/sema"
)

// Manifest is a decoded ssc.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config

	meta toml.MetaData
}

// Config mirrors the sections of ssc.toml.
type Config struct {
	Check CheckConfig `toml:"check"`
	Trace TraceConfig `toml:"trace"`
}

// CheckConfig is the [check] section.
type CheckConfig struct {
	DuplicateDeclarations string   `toml:"duplicate_declarations"`
	MaxDiagnostics        int      `toml:"max_diagnostics"`
	Jobs                  int      `toml:"jobs"`
	Exclude               []string `toml:"exclude"`
}

// TraceConfig is the [trace] section.
type TraceConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}

// LoadManifest decodes and validates the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if _, err := sema.ParseDuplicatePolicy(cfg.Check.DuplicateDeclarations); err != nil {
		return nil, fmt.Errorf("%s: [check].duplicate_declarations: %w", path, err)
	}
	if cfg.Check.MaxDiagnostics < 0 {
		return nil, fmt.Errorf("%s: [check].max_diagnostics must not be negative", path)
	}
	if cfg.Check.Jobs < 0 {
		return nil, fmt.Errorf("%s: [check].jobs must not be negative", path)
	}
	for _, pattern := range cfg.Check.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("%s: [check].exclude pattern %q: %w", path, pattern, err)
		}
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
		meta:   meta,
	}, nil
}

// LoadProjectManifest finds ssc.toml above startDir and decodes it.
// ok is false when there is no manifest.
func LoadProjectManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// IsDefined reports whether key was present in the file, e.g.
// IsDefined("check", "jobs").
func (m *Manifest) IsDefined(key ...string) bool {
	if m == nil {
		return false
	}
	return m.meta.IsDefined(key...)
}

// Policy returns the checking policy configured by [check].
func (m *Manifest) Policy() sema.Policy {
	if m == nil {
		return sema.Policy{}
	}
	dup, _ := sema.ParseDuplicatePolicy(m.Config.Check.DuplicateDeclarations)
	return sema.Policy{DuplicateDecls: dup}
}

// Excluded reports whether a path relative to the manifest root matches one
// of the [check].exclude patterns. Patterns match the relative path or any
// of its directory components.
func (m *Manifest) Excluded(rel string) bool {
	if m == nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range m.Config.Check.Exclude {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		for _, part := range strings.Split(rel, "/") {
			if ok, _ := filepath.Match(pattern, part); ok {
				return true
			}
		}
	}
	return false
}
