// Package state provides the thread-safe store shared by receipt's
// background goroutines and the UI.
//
// # Overview
//
// Two producers write into the Store and one consumer reads from it:
//
//	Producers:                         Consumer (UI):
//	┌──────────────────────┐          ┌──────────────────┐
//	│ request.Controller   │ Begin /  │                  │
//	│   events             │ Finish   │                  │
//	│                      │─────────→│ store.Snapshot() │
//	│ health poller        │ SetHealth│       ↓          │
//	│   client.Ping()      │─────────→│   render views   │
//	└──────────────────────┘  (mutex) └──────────────────┘
//
// # Core Types
//
// Job is one submission: its id, document kind, endpoint path, status
// (pending, printed or failed), the error text shown to the user and its
// start and finish times.
//
// Health is the result of the latest backend ping. IsOffline reports true
// after two consecutive failed pings, so a single dropped request does not
// flip the header indicator.
//
// # History Limit
//
// The store keeps at most the configured number of jobs (50 by default) and
// drops the oldest first. Printed and failed totals cover the whole session,
// including evicted jobs.
//
// # Snapshots
//
// Snapshot returns jobs newest first and copies every slice and error, so the
// UI can hold on to a snapshot while the store keeps changing.
package state
