// Package pipe runs records through a chain of stages on a single goroutine.
// Each source record travels through every stage and reaches the sink before
// the next one is started.
package pipe

import "context"

type Pipe[R any] struct {
	source  Source[R]
	stages  []pipeStage[R]
	stopped chan struct{}
}

type Source[R any] func() ([]*R, error)
type Sink[R any] func(*R) error

type pipeStage[R any] interface {
	process(r *R) ([]*R, error)
}

func New[R any](source Source[R]) *Pipe[R] {
	return &Pipe[R]{
		source:  source,
		stopped: make(chan struct{}),
	}
}

func (p *Pipe[R]) Map(fn func(r *R) (*R, error)) {
	p.FanOut(func(in *R) ([]*R, error) {
		out, err := fn(in)
		if err != nil {
			return nil, err
		}

		if out == nil {
			return nil, nil
		}

		return []*R{out}, nil
	})
}

// FanOut adds a stage that turns one record into zero or more. Returning no
// records drops the input; returning an error aborts the pipe.
func (p *Pipe[R]) FanOut(fn func(r *R) ([]*R, error)) {
	p.stages = append(p.stages, &simpleStage[R]{fn: fn})
}

// Stop makes the pipe return after the record in flight.
func (p *Pipe[R]) Stop() {
	select {
	case <-p.stopped:
	default:
		close(p.stopped)
	}
}

// Sink pulls the source and drives every record depth-first into sink. It
// returns the first source, stage or sink error, or ctx's error when ctx is
// done before all records were handled.
func (p *Pipe[R]) Sink(ctx context.Context, sink Sink[R]) error {
	records, err := p.source()
	if err != nil {
		return err
	}

	for _, record := range records {
		if err := p.run(ctx, 0, record, sink); err != nil {
			return err
		}
	}

	return nil
}

func (p *Pipe[R]) run(ctx context.Context, index int, record *R, sink Sink[R]) error {
	if done(ctx, p.stopped) {
		return ctx.Err()
	}

	if index == len(p.stages) {
		return sink(record)
	}

	outs, err := p.stages[index].process(record)
	if err != nil {
		p.Stop()
		return err
	}

	for _, out := range outs {
		if err := p.run(ctx, index+1, out, sink); err != nil {
			return err
		}
	}

	return nil
}
