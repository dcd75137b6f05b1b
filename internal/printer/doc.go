// Package printer is the HTTP client for the thermal printer server.
//
// Every printable thing is a Document that knows how to encode itself as a
// Submission: URL-encoded parameters for the text-like kinds, multipart form
// data for the image and photo kinds. Client.Post sends a Submission below
// the configured API prefix (default "/api") and hands back the status line
// and body untouched. Deciding what counts as a failure is the caller's job.
//
// Multipart booleans follow the server's checkbox convention: a field with a
// non-empty value is true, an empty value is false. Fields are always written
// so the server never falls back to its own default.
package printer
