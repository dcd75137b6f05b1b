// Package logtail reads the tail of receipt's own log file for the Logs view.
//
// Read uses a ring buffer of maxLines strings, so memory stays bounded no
// matter how large the file has grown. Parse understands the JSON lines the
// logging package writes (ts, level, msg plus arbitrary fields) and degrades
// to a message-only Entry for anything else, such as a panic trace appended
// by the runtime.
package logtail
