// Package dispatch serializes accessibility work onto the process's main
// OS thread. The platform's accessibility calls are not safe from arbitrary
// threads, so every tree read and every action press funnels through here.
package dispatch

import (
	"context"

	"golang.design/x/mainthread"
)

// schedule blocks until f has run on the main thread. Tests swap it for an
// inline runner.
var schedule = mainthread.Call

// Run hands the main goroutine's OS thread to the dispatcher and runs main
// on a worker goroutine. It must be the first call in the program's main
// function and returns when main returns.
func Run(main func()) {
	mainthread.Init(main)
}

// Call runs f on the main thread and blocks until it finishes or ctx ends,
// whichever comes first. When ctx ends first, Call returns ctx.Err() while
// f may still run later; f must therefore watch the same ctx and get out
// quickly once it fires.
//
// Call must not be used from the main thread itself.
func Call(ctx context.Context, f func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		schedule(f)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
