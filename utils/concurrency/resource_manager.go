// Package concurrency implements a simple channel based resource manager for
// concurrent operations.
package concurrency

import (
	"sync"
)

// ResourceManager stores a channel of some given resource (e.g. a comparison
// evaluator) meant to be used concurrently, and a channel collecting the
// errors of the tasks run on those resources.
type ResourceManager[T any] struct {
	sync.WaitGroup
	Resources chan T
	Errors    chan error
}

// NewResourceManager instantiates a new [ResourceManager] over the given
// resources. The number of resources bounds the concurrency: a task only
// starts once a resource is free.
func NewResourceManager[T any](resources []T) *ResourceManager[T] {
	ch := make(chan T, len(resources))
	for i := range resources {
		ch <- resources[i]
	}
	return &ResourceManager[T]{
		Resources: ch,
		Errors:    make(chan error, len(resources)),
	}
}

// Task is a function taking as input a resource of any kind that can be
// used concurrently.
type Task[T any] func(resource T) (err error)

// Run runs a [Task] concurrently on the next free resource and returns the
// resource to the pool when the task completes. Once an error has been
// recorded, subsequently submitted tasks are dropped.
func (r *ResourceManager[T]) Run(f Task[T]) {
	r.Add(1)
	go func() {
		defer r.Done()
		if len(r.Errors) != 0 {
			return
		}
		resource := <-r.Resources
		if err := f(resource); err != nil {
			if len(r.Errors) < cap(r.Errors) {
				r.Errors <- err
			}
		}
		r.Resources <- resource
	}()
}

// Wait blocks until all submitted [Task] have finished and returns the
// first encountered error, if any.
func (r *ResourceManager[T]) Wait() (err error) {
	r.WaitGroup.Wait()
	if len(r.Errors) != 0 {
		return <-r.Errors
	}
	return
}
