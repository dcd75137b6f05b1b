// Package ui implements the receipt terminal interface.
//
// The model follows the usual Bubble Tea split: app.go owns Init, Update and
// View and routes keys per view; each view renders from state it receives as
// messages, never by calling into the backend directly.
//
// Views:
//
//   - Compose: pick a document kind and fill in its form; ctrl+s hands the
//     submission to the request controller in a tea.Cmd. While the controller
//     reports Disabled, a spinner replaces the status line and further
//     submissions are refused.
//   - History: recent submissions from the state store, newest first.
//   - Logs: tail of the application's own zap log file.
//
// Controller notifications reach the program through a Sender (normally the
// *tea.Program itself), so the status bar follows submissions started
// anywhere in the process.
//
// Keys that must work while typing live on ctrl and function keys; see
// keys.go. The theme cycles with ctrl+t and is saved to the prefs file along
// with the chat username and dither algorithm.
package ui
