package strategy

import "github.com/fbdiag-dev/fbdiag/internal/lockfile"

// Strategy is the installer/build command pair chosen for a project.
type Strategy struct {
	Installer []string
	Build     []string
}

// Select picks the install strategy from lockfile presence and executable
// availability. Evaluated top to bottom, first match wins:
//
//  1. pnpm-lock.yaml present and pnpm on PATH: frozen-lockfile pnpm install
//  2. yarn.lock present and yarn on PATH: frozen-lockfile yarn install
//  3. npm: `npm ci` when package-lock.json exists, plain `npm install`
//     otherwise
//
// pnpm and yarn win over npm even when package-lock.json is also present:
// their frozen installs are reproducible where the npm fallback is
// best-effort. Select has no side effects.
func Select(locks lockfile.Presence, available func(string) bool) Strategy {
	switch {
	case locks.PNPM && available("pnpm"):
		return Strategy{
			Installer: []string{"pnpm", "install", "--frozen-lockfile"},
			Build:     []string{"pnpm", "run", "build"},
		}
	case locks.Yarn && available("yarn"):
		return Strategy{
			Installer: []string{"yarn", "install", "--frozen-lockfile"},
			Build:     []string{"yarn", "build"},
		}
	default:
		installer := []string{"npm", "install"}
		if locks.NPM {
			installer = []string{"npm", "ci"}
		}
		return Strategy{
			Installer: installer,
			Build:     []string{"npm", "run", "build"},
		}
	}
}
