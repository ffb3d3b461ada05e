//go:build !linux

package companion

import "tinygo.org/x/bluetooth"

func adapterFor(string) *bluetooth.Adapter {
	return bluetooth.DefaultAdapter
}
