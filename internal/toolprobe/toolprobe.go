package toolprobe

import "os/exec"

// Tools probed before the run, in report order.
var Tools = []string{"node", "npm", "pnpm", "yarn"}

// Which returns the resolved path for name, or "" when it is not on PATH.
func Which(name string) string {
	path, err := exec.LookPath(name)
	if err != nil {
		return ""
	}
	return path
}

// Available reports whether name is on PATH.
func Available(name string) bool {
	return Which(name) != ""
}
