package construct

import "golang.org/x/sync/errgroup"

// Job is one independent (input, expected) pair to validate, with its own
// sinks: "an implementation may parallelise independent
// validations across threads provided each has its own reports and stats
// sinks."
type Job struct {
	Input    Handle
	Expected Node
	Reports  ReportSink
	Stats    StatsSink
}

// ValidateAll runs every job concurrently, using the same Context for all
// of them (the registry and parsed-path cache are read-mostly and safe to
// share across concurrent validations). It returns the per-job verdicts
// in input order. A job never mutates another job's tree or sinks.
func ValidateAll(ctx *Context, jobs []Job) ([]bool, error) {
	results := make([]bool, len(jobs))
	var g errgroup.Group
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					if fe, isFault := r.(*FaultError); isFault {
						err = fe
						return
					}
					panic(r)
				}
			}()
			results[i] = Validate(ctx, job.Input, job.Expected, job.Reports, job.Stats)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
