// Copyright 2025 go-qnnpack Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package workerpool provides a persistent worker pool for dispatching
// independent index-addressed tasks, such as the row strips of a batched
// operator execution.
//
// Create one pool per process (or per inference context) and reuse it
// across calls; spawning goroutines per call wastes the warm-up:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
package workerpool

import (
	"runtime"
	"sync"
)

// Executor runs n independent tasks, task(0) through task(n-1), and returns
// once all have completed. Implementations may run tasks concurrently; the
// caller guarantees tasks are independent.
type Executor interface {
	Parallel(n int, task func(i int))
}

// Pool is a fixed-size pool of worker goroutines implementing Executor.
// The zero value is not usable; construct with New.
type Pool struct {
	tasks   chan func()
	workers int
	wg      sync.WaitGroup
}

// New creates a pool with the given number of workers. A non-positive count
// defaults to GOMAXPROCS.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		tasks:   make(chan func()),
		workers: workers,
	}
	for range workers {
		p.wg.Go(func() {
			for task := range p.tasks {
				task()
			}
		})
	}
	return p
}

// Workers returns the worker count.
func (p *Pool) Workers() int { return p.workers }

// Parallel dispatches n tasks across the pool and blocks until all
// complete. Tasks must not call back into Parallel on the same pool.
func (p *Pool) Parallel(n int, task func(i int)) {
	if n <= 0 {
		return
	}
	var done sync.WaitGroup
	done.Add(n)
	for i := range n {
		p.tasks <- func() {
			defer done.Done()
			task(i)
		}
	}
	done.Wait()
}

// Close shuts the pool down and waits for workers to exit. The pool must
// not be used after Close.
func (p *Pool) Close() {
	close(p.tasks)
	p.wg.Wait()
}
