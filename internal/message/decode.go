package message

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// KeyBearing selects a bearing update. It is the only key the watch understands.
const KeyBearing uint32 = 1

// Decode errors. Both leave the bearing untouched.
var (
	ErrMissingKey = errors.New("bearing key missing")
	ErrBadValue   = errors.New("bearing value is not an unsigned 16-bit integer")
)

// Bearing is a decoded bearing update, in degrees.
type Bearing struct {
	Degrees uint16
}

// Decode extracts the bearing update from a dictionary. Unknown keys are ignored.
func Decode(d Dictionary) (Bearing, error) {
	t, ok := d.Find(KeyBearing)
	if !ok {
		return Bearing{}, ErrMissingKey
	}
	v, err := integer(t)
	if err != nil {
		return Bearing{}, err
	}
	if v < 0 || v > 0xFFFF {
		return Bearing{}, errors.Wrapf(ErrBadValue, "value %d", v)
	}
	return Bearing{Degrees: uint16(v)}, nil
}

// integer reads a little-endian integer tuple of width 1, 2 or 4.
func integer(t Tuple) (int64, error) {
	if t.Type != TypeUint && t.Type != TypeInt {
		return 0, errors.Wrapf(ErrBadValue, "tuple type %d", t.Type)
	}
	signed := t.Type == TypeInt
	switch len(t.Value) {
	case 1:
		if signed {
			return int64(int8(t.Value[0])), nil
		}
		return int64(t.Value[0]), nil
	case 2:
		v := binary.LittleEndian.Uint16(t.Value)
		if signed {
			return int64(int16(v)), nil
		}
		return int64(v), nil
	case 4:
		v := binary.LittleEndian.Uint32(t.Value)
		if signed {
			return int64(int32(v)), nil
		}
		return int64(v), nil
	default:
		return 0, errors.Wrapf(ErrBadValue, "width %d", len(t.Value))
	}
}

// EncodeBearing builds the wire frame for a bearing update.
func EncodeBearing(deg uint16) ([]byte, error) {
	return Dictionary{Uint16Tuple(KeyBearing, deg)}.MarshalBinary()
}
