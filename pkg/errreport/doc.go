// Package errreport turns arbitrary failure values into log records and
// user-displayable messages.
//
// Reporter.Report accepts anything that can reach a failure boundary: error
// values, strings, panic payloads, nil. The value is classified once into a
// Cause (Known or Unknown); nothing downstream inspects its shape again.
// Every report is logged with slog, appended to a Sink and answered with a
// sanitized, non-empty message. Report never panics.
//
//	rep := errreport.New(
//	    errreport.WithLogger(log),
//	    errreport.WithSink(errreport.NewMemorySink(100)),
//	    errreport.WithMessageMapper(backend.FriendlyMessage),
//	)
//	msg := rep.Report(ctx, err, "HomePage.simulateNetworkError")
package errreport
