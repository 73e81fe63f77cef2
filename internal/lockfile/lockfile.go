package lockfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Recognized lockfile names.
const (
	PNPMLock = "pnpm-lock.yaml"
	NPMLock  = "package-lock.json"
	YarnLock = "yarn.lock"
)

// Bun lockfiles are reported as an advisory only; bun never participates in
// install strategy selection.
var bunLocks = []string{"bun.lockb", "bun.lock"}

// Presence records which of the three recognized lockfiles exist at the
// project root.
type Presence struct {
	PNPM bool
	NPM  bool
	Yarn bool
}

// Detect checks the recognized lockfiles under root.
func Detect(root string) Presence {
	return Presence{
		PNPM: exists(filepath.Join(root, PNPMLock)),
		NPM:  exists(filepath.Join(root, NPMLock)),
		Yarn: exists(filepath.Join(root, YarnLock)),
	}
}

// BunLockName returns the name of a bun lockfile under root, or "".
func BunLockName(root string) string {
	for _, name := range bunLocks {
		if exists(filepath.Join(root, name)) {
			return name
		}
	}
	return ""
}

// PNPMLockVersion reads the lockfileVersion field from pnpm-lock.yaml.
// The field is a bare number in v5 lockfiles and a quoted string from v6 on,
// so it is decoded loosely. Empty string when absent or unreadable.
func PNPMLockVersion(root string) string {
	data, err := os.ReadFile(filepath.Join(root, PNPMLock))
	if err != nil {
		return ""
	}
	var doc struct {
		LockfileVersion any `yaml:"lockfileVersion"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil || doc.LockfileVersion == nil {
		return ""
	}
	return fmt.Sprint(doc.LockfileVersion)
}

// NPMLockVersion reads the lockfileVersion field from package-lock.json.
// Empty string when absent or unreadable.
func NPMLockVersion(root string) string {
	data, err := os.ReadFile(filepath.Join(root, NPMLock))
	if err != nil {
		return ""
	}
	var doc struct {
		LockfileVersion json.Number `json:"lockfileVersion"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return ""
	}
	return doc.LockfileVersion.String()
}

func exists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
