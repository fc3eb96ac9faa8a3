// Package baselog provides a dual-mode logging client: log calls are
// delivered to the baselog backend over HTTP when remote delivery is
// configured and reachable, and printed locally otherwise.
//
// # Basic Usage
//
//	manager := baselog.NewManager()
//	if !manager.Configure(ctx, api.NewConfig("https://api.example.com", "my-key", api.EnvProduction)) {
//	    // remote delivery unavailable; logging continues locally
//	}
//	defer manager.Reset()
//
//	logger := manager.Logger()
//	logger.Info(ctx, "user signed in",
//	    api.WithCategory("auth"),
//	    api.WithTags("security", "login"),
//	)
//
// # Modes
//
// A logger is promoted to remote mode only when the delivery client's
// readiness check against the backend succeeds. A failed remote send prints
// the record locally for that call and leaves the mode untouched: only
// [Manager.Configure], [Manager.Reset] or [Logger.Close] change it. Log
// calls never return errors, so logging cannot crash the host application.
//
// # Local Output
//
// Local-mode and fallback output goes to stdout through zerolog's console
// writer. Redirect it with [WithLocalOutput] or supply a fully configured
// logger with [WithLocalLogger].
//
// Remote delivery, retries and error classification live in the api
// subpackage; use [api.Client] directly when typed delivery errors are
// needed, for example from batch pipelines.
package baselog
