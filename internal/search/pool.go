package search

import (
	"runtime"
	"sync"
)

// forkJoinPool runs traversal units on a fixed number of goroutines.
// Forked tasks go onto one shared stack of unstarted work. Helper
// goroutines pop from it while any is left, and a goroutine waiting in
// invokeAll pops from it too, so a slot never sits idle while a forked
// task is still unstarted.
type forkJoinPool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []*poolTask // unstarted tasks, top of stack last
	idle    int         // helper slots with no goroutine running
	workers int
}

type poolTask struct {
	run   func()
	group *taskGroup
}

// taskGroup tracks one invokeAll call; remaining is guarded by the pool mutex
type taskGroup struct {
	remaining int
}

func newForkJoinPool(workers int) *forkJoinPool {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	p := &forkJoinPool{
		// the calling goroutine is one of the workers
		idle:    workers - 1,
		workers: workers,
	}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// invokeAll runs every task and returns once all of them have completed.
// While waiting, the caller runs unstarted tasks from the shared stack.
func (p *forkJoinPool) invokeAll(tasks []func()) {
	if len(tasks) == 0 {
		return
	}
	group := &taskGroup{remaining: len(tasks)}

	p.mu.Lock()
	// pushed in reverse so tasks start in the given order
	for i := len(tasks) - 1; i >= 0; i-- {
		p.pending = append(p.pending, &poolTask{run: tasks[i], group: group})
	}
	for p.idle > 0 && len(p.pending) > 0 {
		p.idle--
		go p.helper()
	}
	p.cond.Broadcast()

	for group.remaining > 0 {
		if t := p.popLocked(); t != nil {
			p.mu.Unlock()
			p.runTask(t)
			p.mu.Lock()
			continue
		}
		p.cond.Wait()
	}
	p.mu.Unlock()
}

// helper runs pending tasks until the stack is empty, then gives its slot back
func (p *forkJoinPool) helper() {
	p.mu.Lock()
	for {
		t := p.popLocked()
		if t == nil {
			p.idle++
			p.mu.Unlock()
			return
		}
		p.mu.Unlock()
		p.runTask(t)
		p.mu.Lock()
	}
}

func (p *forkJoinPool) popLocked() *poolTask {
	n := len(p.pending)
	if n == 0 {
		return nil
	}
	t := p.pending[n-1]
	p.pending[n-1] = nil
	p.pending = p.pending[:n-1]
	return t
}

func (p *forkJoinPool) runTask(t *poolTask) {
	t.run()

	p.mu.Lock()
	t.group.remaining--
	if t.group.remaining == 0 {
		p.cond.Broadcast()
	}
	p.mu.Unlock()
}

// size returns the number of goroutines that may run units at once
func (p *forkJoinPool) size() int {
	return p.workers
}
