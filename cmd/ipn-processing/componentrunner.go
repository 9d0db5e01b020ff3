package main

import (
	"log"
	"sync"
)

// runnable is a long-running daemon component (event broker, API server).
type runnable interface {
	Run() error
}

// componentRunner starts daemon components in their own goroutines and
// reports when one stops. The daemon has no partial-degradation mode, so any
// stop is treated by main as fatal.
type componentRunner struct {
	wg *sync.WaitGroup
}

func newComponentRunner() *componentRunner {
	return &componentRunner{wg: &sync.WaitGroup{}}
}

// run starts component and returns a channel that is closed once it stops,
// for whatever reason.
func (r *componentRunner) run(component runnable, name string) <-chan struct{} {
	done := make(chan struct{})
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer close(done)

		if err := component.Run(); err != nil {
			log.Printf("Error: %s stopped: %s", name, err)
		} else {
			log.Printf("%s stopped normally", name)
		}
	}()
	return done
}
