package envinfo

import (
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// Snapshot is a read-only copy of the process environment. It is built once
// from an explicit environ slice and handed to every child invocation, so no
// stage depends on ambient global state.
type Snapshot struct {
	environ []string
	vars    map[string]string
}

func NewSnapshot(environ []string) *Snapshot {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		vars[k] = v
	}
	cp := make([]string, len(environ))
	copy(cp, environ)
	return &Snapshot{environ: cp, vars: vars}
}

// Environ returns the snapshot in os.Environ form, for exec.Cmd.Env.
func (s *Snapshot) Environ() []string {
	cp := make([]string, len(s.environ))
	copy(cp, s.environ)
	return cp
}

func (s *Snapshot) Get(key string) string {
	return s.vars[key]
}

func (s *Snapshot) Has(key string) bool {
	_, ok := s.vars[key]
	return ok
}

// Keys returns all variable names in sorted order. Values are deliberately
// not exposed in bulk so the report never leaks secrets.
func (s *Snapshot) Keys() []string {
	keys := make([]string, 0, len(s.vars))
	for k := range s.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DotenvKeys reads a dotenv file and returns its key names, sorted. Values
// are discarded for the same reason Keys hides them.
func DotenvKeys(path string) ([]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
