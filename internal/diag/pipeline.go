package diag

import "fmt"

// Pipeline runs stages in order and stops at the first failure. There are no
// retries; every stage runs at most once.
type Pipeline struct {
	stages []Stage
}

func NewPipeline() *Pipeline {
	return &Pipeline{}
}

func (p *Pipeline) AddStage(s Stage) {
	p.stages = append(p.stages, s)
}

// Run executes every stage against ctx. The returned error is either an
// *ExitError carrying the process exit code (reachable via errors.As), or an
// unexpected internal error.
func (p *Pipeline) Run(ctx *Context) error {
	for _, s := range p.stages {
		if err := s.Run(ctx); err != nil {
			return fmt.Errorf("%s: %w", s.Name(), err)
		}
	}
	return nil
}
