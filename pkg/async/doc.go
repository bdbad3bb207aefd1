// Package async provides simple, generic helpers for running computations asynchronously and
// waiting for their completion.
//
// The package is centred around the generic type Future that represents the eventual result of an
// asynchronous operation. A Future can be obtained by calling Async, which starts the supplied
// function in its own goroutine and immediately returns a *Future instance. The caller can then
// wait for completion with Await or poll the state with IsComplete.
//
// WaitAll and Settle coordinate a batch of futures in a spawn-all, await-all fashion: every future
// is awaited even when an earlier one already failed, and results always come back in the order the
// futures were passed, never in completion order. This is what the validator package relies on to
// report the earliest failing item of a collection deterministically.
//
// If the provided context is cancelled before a computation starts, the Future completes with the
// context error. The package never cancels running computations on its own.
//
// # Usage
//
//	futures := make([]*async.Future[string], len(ids))
//	for i, id := range ids {
//	    futures[i] = async.Async(ctx, id, lookup)
//	}
//	names, err := async.WaitAll(futures...)
//
// # Error Handling
//
// The package does not introduce custom error types; functions return the error produced by the
// user callback or the context error.
package async
