package message

import (
	"fmt"

	"github.com/pkg/errors"
)

// DropReason is the opaque code a transport reports when it could not
// deliver an inbound message. It is logged, never interpreted.
type DropReason uint32

// Result codes reported by the watch platform's message transport.
const (
	DropSendTimeout    DropReason = 1 << 1
	DropSendRejected   DropReason = 1 << 2
	DropNotConnected   DropReason = 1 << 3
	DropAppNotRunning  DropReason = 1 << 4
	DropInvalidArgs    DropReason = 1 << 5
	DropBusy           DropReason = 1 << 6
	DropBufferOverflow DropReason = 1 << 7
	DropOutOfMemory    DropReason = 1 << 12
	DropClosed         DropReason = 1 << 13
	DropInternalError  DropReason = 1 << 14
)

var dropNames = map[DropReason]string{
	DropSendTimeout:    "send timeout",
	DropSendRejected:   "send rejected",
	DropNotConnected:   "not connected",
	DropAppNotRunning:  "app not running",
	DropInvalidArgs:    "invalid args",
	DropBusy:           "busy",
	DropBufferOverflow: "buffer overflow",
	DropOutOfMemory:    "out of memory",
	DropClosed:         "closed",
	DropInternalError:  "internal error",
}

func (r DropReason) String() string {
	if name, ok := dropNames[r]; ok {
		return name
	}
	return fmt.Sprintf("reason %d", uint32(r))
}

// DropReasonFor maps a framing error from ParseDictionary to a drop reason.
func DropReasonFor(err error) DropReason {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrFrameTooLarge):
		return DropBufferOverflow
	default:
		return DropInvalidArgs
	}
}
