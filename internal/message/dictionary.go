// Package message decodes the key/value dictionaries a companion device sends
// to the watch and classifies transport drops.
package message

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

// InboxSize is the largest frame the host transport reserves for inbound messages.
const InboxSize = 64

// TupleType tags the encoding of a tuple's value.
type TupleType uint8

const (
	TypeBytes TupleType = iota
	TypeCString
	TypeUint
	TypeInt
)

const (
	headerSize      = 1
	tupleHeaderSize = 4 + 1 + 2
)

// Framing errors. A frame failing with any of these never reached the decoder
// and is reported as a drop.
var (
	ErrFrameTooLarge = errors.New("frame exceeds inbox size")
	ErrTruncated     = errors.New("frame truncated")
	ErrTrailingBytes = errors.New("trailing bytes after last tuple")
	ErrTupleType     = errors.New("unknown tuple type")
)

// Tuple is one key/value pair of a dictionary.
type Tuple struct {
	Key   uint32
	Type  TupleType
	Value []byte
}

// Dictionary is an ordered set of tuples as received from the companion.
type Dictionary []Tuple

// Find returns the first tuple with the given key.
func (d Dictionary) Find(key uint32) (Tuple, bool) {
	for _, t := range d {
		if t.Key == key {
			return t, true
		}
	}
	return Tuple{}, false
}

// Uint16Tuple builds an unsigned 16-bit tuple.
func Uint16Tuple(key uint32, v uint16) Tuple {
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, v)
	return Tuple{Key: key, Type: TypeUint, Value: buf}
}

// ParseDictionary decodes a wire frame:
//
//	count u8
//	count × { key u32 LE, type u8, length u16 LE, value [length]byte }
func ParseDictionary(frame []byte) (Dictionary, error) {
	if len(frame) > InboxSize {
		return nil, errors.Wrapf(ErrFrameTooLarge, "%d bytes", len(frame))
	}
	if len(frame) < headerSize {
		return nil, ErrTruncated
	}

	count := int(frame[0])
	rest := frame[headerSize:]
	dict := make(Dictionary, 0, count)
	for i := 0; i < count; i++ {
		if len(rest) < tupleHeaderSize {
			return nil, errors.Wrapf(ErrTruncated, "tuple %d header", i)
		}
		key := binary.LittleEndian.Uint32(rest[0:4])
		typ := TupleType(rest[4])
		n := int(binary.LittleEndian.Uint16(rest[5:7]))
		rest = rest[tupleHeaderSize:]

		if typ > TypeInt {
			return nil, errors.Wrapf(ErrTupleType, "tuple %d type %d", i, typ)
		}
		if len(rest) < n {
			return nil, errors.Wrapf(ErrTruncated, "tuple %d value", i)
		}
		value := make([]byte, n)
		copy(value, rest[:n])
		rest = rest[n:]

		dict = append(dict, Tuple{Key: key, Type: typ, Value: value})
	}
	if len(rest) != 0 {
		return nil, errors.Wrapf(ErrTrailingBytes, "%d bytes", len(rest))
	}
	return dict, nil
}

// MarshalBinary encodes the dictionary in the wire format ParseDictionary reads.
func (d Dictionary) MarshalBinary() ([]byte, error) {
	if len(d) > 0xFF {
		return nil, errors.Errorf("too many tuples: %d", len(d))
	}
	var buf bytes.Buffer
	buf.WriteByte(byte(len(d)))
	for _, t := range d {
		if len(t.Value) > 0xFFFF {
			return nil, errors.Errorf("tuple %d value too long: %d bytes", t.Key, len(t.Value))
		}
		var hdr [tupleHeaderSize]byte
		binary.LittleEndian.PutUint32(hdr[0:4], t.Key)
		hdr[4] = byte(t.Type)
		binary.LittleEndian.PutUint16(hdr[5:7], uint16(len(t.Value)))
		buf.Write(hdr[:])
		buf.Write(t.Value)
	}
	if buf.Len() > InboxSize {
		return nil, errors.Wrapf(ErrFrameTooLarge, "%d bytes", buf.Len())
	}
	return buf.Bytes(), nil
}
