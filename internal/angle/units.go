package angle

// Raw is an angle in device units. TrigMaxAngle raw units make a full circle.
type Raw uint32

// TrigMaxAngle is one full revolution in device units.
const TrigMaxAngle Raw = 0x10000

// ToDegrees converts a device angle to whole degrees in [0, 360).
// Fractions are truncated, matching what the sensor firmware reports.
func ToDegrees(r Raw) int {
	r %= TrigMaxAngle
	return int(uint64(r) * 360 / uint64(TrigMaxAngle))
}

// FromDegrees converts degrees to a device angle. The result is rounded up so
// that ToDegrees(FromDegrees(d)) == d for every d in [0, 360).
func FromDegrees(deg int) Raw {
	d := uint64(Normalize(deg))
	full := uint64(TrigMaxAngle)
	return Raw((d*full + 359) / 360)
}

// RawDelta returns the shorter distance between two device angles, in device units.
func RawDelta(a, b Raw) Raw {
	a %= TrigMaxAngle
	b %= TrigMaxAngle
	d := a - b
	if b > a {
		d = b - a
	}
	if d > TrigMaxAngle/2 {
		d = TrigMaxAngle - d
	}
	return d
}
