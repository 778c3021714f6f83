// Package async runs functions in the background and exposes their eventual
// result as a generic Future.
//
// mbuzz uses it for fire-and-forget work such as recording a new session:
// the request handler launches the call with Async and moves on without
// awaiting the Future. Tests, or callers that care, can still Await it.
//
//	fut := async.Async(ctx, payload, func(ctx context.Context, p Payload) (bool, error) {
//	    return send(ctx, p)
//	})
//	// ... later, optionally
//	ok, err := fut.AwaitWithTimeout(time.Second)
//
// Panics inside the task are recovered and surface as an error wrapping
// ErrPanic. A context that is already cancelled when the goroutine starts
// completes the Future with the context error without running the task.
package async
