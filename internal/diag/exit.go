package diag

import "fmt"

// Exit codes for diagnostic failures. A failed install or build propagates
// the child's exit code instead.
const (
	ExitRootMissing     = 2
	ExitManifestMissing = 3
	ExitManifestInvalid = 4
	ExitNoOutput        = 5
)

// ExitError aborts the pipeline with a specific process exit code. The
// human-facing explanation has already been written to the report by the
// stage that raised it; Msg is for internal error chains.
type ExitError struct {
	Code int
	Msg  string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s (exit %d)", e.Msg, e.Code)
}

func Exitf(code int, format string, args ...any) *ExitError {
	return &ExitError{Code: code, Msg: fmt.Sprintf(format, args...)}
}
