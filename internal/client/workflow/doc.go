// Package workflow implements the upload workflow behind every docforge
// front end.
//
// A Controller owns one session: at most one staged file, one state
// (idle, uploading, succeeded, failed), a simulated progress value and at
// most one downloadable archive. Front ends call Select, Submit and Reset,
// render Snapshot, and use Subscribe or Wait to follow changes.
//
// Each submission starts a run tagged with a generation number. The run owns
// the progress ticker, the reveal timer and the request context, and every
// exit path (resolve, reject, reset, close) releases all three. Results that
// arrive for an older generation are dropped.
package workflow
