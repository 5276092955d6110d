// Package worker provides a bounded pool for blocking work so slow
// hashing or store operations cannot stall unrelated requests.
package worker

import "context"

// Pool bounds the number of concurrently executing blocking calls with
// a semaphore channel. The zero value is not usable; construct with New.
type Pool struct {
	sem chan struct{}
}

func New(size int) *Pool {
	if size <= 0 {
		size = 4
	}
	return &Pool{sem: make(chan struct{}, size)}
}

// Do runs fn once a pool slot is available and returns its error. If
// ctx is already cancelled or cancelled before a slot frees up, the
// context error is returned and fn never runs. The slot is released on
// every exit path.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	// A two-way select picks randomly when both a slot and the
	// cancellation are ready; check cancellation first so it wins.
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-p.sem }()

	return fn()
}
