package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/receipt/internal/request"
)

// Sender delivers messages into a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// forwardEvents relays controller events to sender until the returned
// function is called.
func forwardEvents(controller *request.Controller, sender Sender) func() {
	return controller.Subscribe(func(ev request.Event) {
		sender.Send(requestEventMsg(ev))
	})
}
