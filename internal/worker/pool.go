package worker

import (
	"sync"
)

type task func()

type Pool struct {
	wg   sync.WaitGroup
	jobs chan task
}

func NewPool(n int) *Pool {
	p := &Pool{jobs: make(chan task, 1024)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
			}
		}()
	}
	return p
}

func (p *Pool) Submit(f task) { p.jobs <- f }

// Batch dispatches the functions concurrently on the pool, waits for all of
// them, and returns the first error in list order. Later functions still run
// to completion even when an earlier one fails.
func (p *Pool) Batch(fns []func() error) error {
	var wg sync.WaitGroup
	errs := make([]error, len(fns))
	for i, fn := range fns {
		i, fn := i, fn
		wg.Add(1)
		p.Submit(func() {
			defer wg.Done()
			errs[i] = fn()
		})
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *Pool) Stop() { close(p.jobs); p.wg.Wait() }
