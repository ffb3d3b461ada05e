package companion

import (
	"bytes"
	"sync"

	"github.com/pkg/errors"
	"tinygo.org/x/bluetooth"
)

// SourceBLE names frames received from BLE advertisements.
const SourceBLE = "ble"

// BLEReceiver listens for companion advertisements. The companion broadcasts
// its latest bearing frame as manufacturer data under a fixed company ID.
type BLEReceiver struct {
	adapter   *bluetooth.Adapter
	companyID uint16
	program   Sender

	mu      sync.Mutex
	running bool
	last    map[string][]byte // address -> last forwarded frame
}

// NewBLEReceiver creates a receiver on the named adapter (e.g., "hci0").
// Platforms without named adapters use the default one.
func NewBLEReceiver(adapterID string, companyID uint16) *BLEReceiver {
	return &BLEReceiver{
		adapter:   adapterFor(adapterID),
		companyID: companyID,
		last:      make(map[string][]byte),
	}
}

// Start enables the adapter and begins scanning in a goroutine. Frames are
// sent via program.Send().
func (r *BLEReceiver) Start(p Sender) error {
	r.program = p

	if err := r.adapter.Enable(); err != nil {
		return errors.Wrap(err, "failed to enable BLE adapter (try running with sudo or setcap cap_net_admin+ep)")
	}

	r.setRunning(true)
	go func() {
		err := r.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if !r.isRunning() {
				return
			}
			for _, m := range result.ManufacturerData() {
				r.handle(result.Address.String(), m.CompanyID, m.Data)
			}
		})
		if err != nil && r.isRunning() && r.program != nil {
			r.program.Send(ErrorMsg{Source: SourceBLE, Err: errors.Wrap(err, "BLE scan")})
		}
	}()

	return nil
}

// handle forwards a manufacturer data payload if it belongs to the companion
// and differs from the last one seen from that address. Advertisements repeat
// many times a second.
func (r *BLEReceiver) handle(addr string, companyID uint16, data []byte) {
	if companyID != r.companyID {
		return
	}
	r.mu.Lock()
	if prev, ok := r.last[addr]; ok && bytes.Equal(prev, data) {
		r.mu.Unlock()
		return
	}
	frame := append([]byte(nil), data...)
	r.last[addr] = frame
	r.mu.Unlock()

	if r.program != nil {
		r.program.Send(FrameMsg{Source: SourceBLE, Frame: frame})
	}
}

// Stop halts scanning.
func (r *BLEReceiver) Stop() {
	r.setRunning(false)
	_ = r.adapter.StopScan()
}

func (r *BLEReceiver) setRunning(v bool) {
	r.mu.Lock()
	r.running = v
	r.mu.Unlock()
}

func (r *BLEReceiver) isRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}
