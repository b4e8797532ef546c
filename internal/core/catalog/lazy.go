// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/taibuivan/fisheye/internal/platform/apperr"
)

// # Load State Machine

// State is the load state of a [Lazy] value.
//
//	Uninitialized ──Get──▶ Loading ──ok──▶ Ready
//	                          │
//	                          └──err──▶ Failed ──Get──▶ Loading
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateFailed
)

// String returns the lower-case state name used in logs and health checks.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "uninitialized"
	}
}

// Lazy fetches a value once and serves it from memory afterwards.
//
// # Concurrency
//
// Lazy is safe for concurrent use. Concurrent first callers share a single
// in-flight load. The load runs detached from the callers' cancellation; a
// caller whose context ends stops waiting but does not abort the load.
type Lazy[T any] struct {
	name  string
	load  func(ctx context.Context) (T, error)
	group singleflight.Group

	mu    sync.RWMutex
	state State
	value T
	err   error
}

// NewLazy returns an uninitialized [Lazy]. The name appears in error messages.
func NewLazy[T any](name string, load func(ctx context.Context) (T, error)) *Lazy[T] {
	return &Lazy[T]{name: name, load: load}
}

// Get returns the cached value, loading it first when needed.
// A previous failure is retried.
func (l *Lazy[T]) Get(ctx context.Context) (T, error) {
	if value, ok := l.ready(); ok {
		return value, nil
	}

	result := l.group.DoChan(l.name, func() (any, error) {
		l.mu.Lock()
		if l.state == StateReady {
			value := l.value
			l.mu.Unlock()
			return value, nil
		}
		l.state = StateLoading
		l.mu.Unlock()

		value, err := l.load(context.WithoutCancel(ctx))

		l.mu.Lock()
		defer l.mu.Unlock()

		if err != nil {
			l.state = StateFailed
			l.err = err
			return nil, err
		}

		// A concurrent Set may have won the race while the fetch was running.
		if l.state == StateReady {
			return l.value, nil
		}

		l.state = StateReady
		l.value = value
		l.err = nil
		return value, nil
	})

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			var zero T
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Set stores a value without fetching. It fails with ALREADY_INITIALIZED
// when a value is already cached.
func (l *Lazy[T]) Set(value T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == StateReady {
		return apperr.AlreadyInitialized(l.name)
	}

	l.state = StateReady
	l.value = value
	l.err = nil
	return nil
}

// Update replaces the cached value with the result of fn, under the write
// lock. It fails with NOT_FOUND when nothing is cached yet.
//
// fn must not mutate its argument in place: readers may still hold it.
func (l *Lazy[T]) Update(fn func(current T) (T, error)) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != StateReady {
		return apperr.NotFound(l.name)
	}

	next, err := fn(l.value)
	if err != nil {
		return err
	}

	l.value = next
	return nil
}

// State returns the current load state.
func (l *Lazy[T]) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Err returns the error of the last failed load, or nil.
func (l *Lazy[T]) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.state != StateFailed {
		return nil
	}
	return l.err
}

func (l *Lazy[T]) ready() (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.value, l.state == StateReady
}
