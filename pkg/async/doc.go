// Package async runs units of work in goroutines and converts their failures
// into reported outcomes.
//
// Async starts a function and returns a Future; Await blocks for its result.
// Handle builds on that: it runs a unit of work, recovers panics, hands any
// failure to a Reporter together with a call-site label, and returns an
// Outcome that either holds the value or is absent. Errors never escape
// Handle.
//
//	out := async.Handle(ctx, reporter, "HomePage.simulateAsyncError",
//	    func(ctx context.Context) (struct{}, error) {
//	        return struct{}{}, errors.New("boom")
//	    })
//	if v, ok := out.Value(); ok {
//	    use(v)
//	}
package async
