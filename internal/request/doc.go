// Package request tracks the lifecycle of a print submission for the UI.
//
// A Controller owns a small State value: Disabled is true for the whole
// submission, including an artificial minimum busy duration (500ms by
// default) that keeps spinners visible for instant responses; Error carries
// the most recent failure, cleared whenever a new submission starts.
//
// Failures never escape as return values. A transport error is stored as its
// Error() text; a non-2xx response becomes "<code> <status text>", followed by
// ": <body>" when the server sent one.
//
// Submit does not serialise callers. The UI is expected to gate on Disabled,
// or to use TrySubmit, which refuses with ErrBusy while a submission is in
// flight.
package request
