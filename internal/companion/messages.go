// Package companion delivers bearing messages from the paired companion
// device to the host event loop, over BLE advertisements, a WebSocket, or a
// simulated companion in demo mode.
package companion

import (
	"bearing-alert.klederson.com/internal/message"
	tea "github.com/charmbracelet/bubbletea"
)

// Sender delivers messages to the host event loop. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// FrameMsg carries one raw wire frame from the companion.
type FrameMsg struct {
	Source string
	Frame  []byte
}

// DropMsg reports an inbound message the transport could not deliver.
type DropMsg struct {
	Source string
	Reason message.DropReason
}

// ErrorMsg reports a transport failure that stops the transport.
type ErrorMsg struct {
	Source string
	Err    error
}
