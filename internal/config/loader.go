package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
)

// Source records where a config value came from.
type Source struct {
	Kind   SourceKind
	File   string
	Line   int
	Column int
}

// SourceMap indexes file positions by dotted YAML path ("gestures.tap_slop").
type SourceMap map[string]Source

// Lookup returns the source of path, or SourceDefault when the file did not
// set it.
func (m SourceMap) Lookup(path string) Source {
	if src, ok := m[path]; ok {
		return src
	}
	return Source{Kind: SourceDefault}
}

func (m SourceMap) index(node *yaml.Node, file, prefix string) {
	if node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		path := key.Value
		if prefix != "" {
			path = prefix + "." + path
		}
		m[path] = Source{Kind: SourceFile, File: file, Line: val.Line, Column: val.Column}
		m.index(val, file, path)
	}
}

type LoadResult struct {
	Config  *Config
	Sources SourceMap // only keys set by the file
	File    string    // empty when no file existed
}

func DefaultConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "floatwin", "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "floatwin", "config.yaml"), nil
}

// Load reads the configuration from the standard location. A missing file
// yields the defaults.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	res, err := LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadFromPath overlays the file at path onto the defaults and validates the
// result. Unknown keys are rejected.
func LoadFromPath(path string) (*LoadResult, error) {
	res := &LoadResult{Sources: SourceMap{}}
	var raw RawConfig

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("%s: failed to read: %w", path, err)
	default:
		if err := decodeFile(data, path, &raw, res.Sources); err != nil {
			return nil, err
		}
		res.File = path
	}

	cfg, err := BuildEffectiveConfig(raw)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) && verr.Path != "" {
			if src, ok := res.Sources[verr.Path]; ok {
				verr.Source = src
			}
		}
		return nil, err
	}
	res.Config = cfg
	return res, nil
}

// decodeFile records key positions from the node tree, then decodes
// strictly into raw so unknown keys are reported.
func decodeFile(data []byte, path string, raw *RawConfig, sources SourceMap) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%s: failed to parse: %w", path, err)
	}
	if len(doc.Content) == 0 {
		return nil
	}
	sources.index(doc.Content[0], path, "")

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(raw); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// SourcePaths lists the YAML paths that were set by the loaded file.
func (r *LoadResult) SourcePaths() []string {
	out := make([]string, 0, len(r.Sources))
	for path := range r.Sources {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}
