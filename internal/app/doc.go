// Package app is the composition root for receipt.
//
// # Overview
//
// Run wires configuration, logging, the printer client, the request
// controller, the history store and the health poller together, then hands
// control to the TUI until the user quits or the context is cancelled.
// PrintOnce builds the same services without a UI and submits a single
// document, which is what the -text and -photo flags use.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          Read ~/.config/receipt/config.toml
//	       ├─────> logging.New()          zap JSON logger to the log file
//	       ├─────> printer.NewClient()    HTTP client for the printer API
//	       ├─────> request.New()          Controller with the busy floor
//	       ├─────> state.NewStore()       History + health for the UI
//	       ├─────> controller.Subscribe() Mirror submissions into the store
//	       ├─────> StartPoller()          Background health pings
//	       └─────> ui.Run()               Start TUI (blocks)
//
// # Health Polling
//
// The poller pings the server root every two seconds by default. Failures
// back off exponentially (interval doubled per consecutive failure, capped at
// 30 seconds) and are recorded in the store, which the header shows as
// retrying or offline. Submissions are never blocked by the poller; a job
// sent to an unreachable printer simply fails with the transport error.
//
// # Error Handling
//
// Fatal errors returned from Run and PrintOnce:
//   - Configuration file present but invalid
//   - Log file cannot be opened
//   - Invalid api_url
//
// In one-shot mode a failed submission is returned as an error carrying the
// controller's message, for example "404 Not Found".
package app
