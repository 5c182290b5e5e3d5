package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"advisord/internal/common/fsutil"
	"advisord/pkg/types"
)

// LoadDir scans a directory for *.gguf files and builds models from filenames.
// ID is the full filename; MaxRAMRequired is estimated from the file size.
func LoadDir(dir string) ([]types.Model, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var models []types.Model
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".gguf") {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", name, err)
		}
		models = append(models, types.Model{
			ID:             name,
			Name:           name,
			Path:           filepath.Join(abs, name),
			MaxRAMRequired: estimateRAM(fi.Size()),
		})
	}
	return models, nil
}

// estimateRAM scales a gguf file size by 1.2: weights are mapped whole, plus
// room for KV cache and runtime buffers. Empty files estimate to 1 byte so
// they never classify as free.
func estimateRAM(size int64) uint64 {
	if size <= 0 {
		return 1
	}
	return uint64(size) * 6 / 5
}

type manifest struct {
	Models []types.Model `json:"models" yaml:"models" toml:"models"`
}

// LoadFile reads a model manifest based on its extension.
// Supports: .yaml/.yml, .json, .toml
func LoadFile(path string) ([]types.Model, error) {
	if path == "" {
		return nil, fmt.Errorf("empty manifest path")
	}
	p, err := fsutil.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	var m manifest
	switch ext := strings.ToLower(filepath.Ext(p)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &m)
	case ".json":
		err = json.Unmarshal(b, &m)
	case ".toml":
		err = toml.Unmarshal(b, &m)
	default:
		return nil, fmt.Errorf("unsupported manifest extension: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	seen := make(map[string]bool, len(m.Models))
	for i, mdl := range m.Models {
		if strings.TrimSpace(mdl.ID) == "" {
			return nil, fmt.Errorf("manifest entry %d: missing id", i)
		}
		if seen[mdl.ID] {
			return nil, fmt.Errorf("manifest entry %d: duplicate id %q", i, mdl.ID)
		}
		seen[mdl.ID] = true
		if m.Models[i].Name == "" {
			m.Models[i].Name = mdl.ID
		}
	}
	return m.Models, nil
}
