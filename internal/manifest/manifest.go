package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Filename is the manifest fbdiag requires at the project root.
const Filename = "package.json"

// ErrMissing reports that no package.json exists at the project root.
var ErrMissing = errors.New("package.json not found")

// ParseError wraps a syntax problem in the manifest. The decoder diagnostic
// is preserved so the report can show what exactly is malformed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Manifest is the subset of package.json the diagnostics report on.
// Scripts are printed, never executed.
type Manifest struct {
	Name    string            `json:"name"`
	Type    string            `json:"type"`
	Engines map[string]string `json:"engines"`
	Scripts map[string]string `json:"scripts"`
}

// Load reads and parses <root>/package.json.
func Load(root string) (*Manifest, error) {
	path := filepath.Join(root, Filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrMissing
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &m, nil
}

// PinnedNodeVersion reports a node version pinned by .node-version or .nvmrc
// under root, and which file declared it. Empty strings when nothing is
// pinned.
func PinnedNodeVersion(root string) (version, source string) {
	for _, f := range []string{".node-version", ".nvmrc"} {
		if data, err := os.ReadFile(filepath.Join(root, f)); err == nil {
			v := strings.TrimSpace(string(data))
			if v != "" {
				return v, f
			}
		}
	}
	return "", ""
}
