package message

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestEncodeParseBearing(t *testing.T) {
	frame, err := EncodeBearing(270)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, frame, test.ShouldResemble, []byte{1, 1, 0, 0, 0, byte(TypeUint), 2, 0, 0x0E, 0x01})

	dict, err := ParseDictionary(frame)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, dict, test.ShouldHaveLength, 1)

	b, err := Decode(dict)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, b.Degrees, test.ShouldEqual, uint16(270))
}

func TestParseDictionaryErrors(t *testing.T) {
	_, err := ParseDictionary(nil)
	test.That(t, errors.Is(err, ErrTruncated), test.ShouldBeTrue)

	_, err = ParseDictionary(make([]byte, InboxSize+1))
	test.That(t, errors.Is(err, ErrFrameTooLarge), test.ShouldBeTrue)

	// header claims one tuple but carries none
	_, err = ParseDictionary([]byte{1})
	test.That(t, errors.Is(err, ErrTruncated), test.ShouldBeTrue)

	// value shorter than declared length
	_, err = ParseDictionary([]byte{1, 1, 0, 0, 0, byte(TypeUint), 2, 0, 0x0E})
	test.That(t, errors.Is(err, ErrTruncated), test.ShouldBeTrue)

	_, err = ParseDictionary([]byte{1, 1, 0, 0, 0, 9, 0, 0})
	test.That(t, errors.Is(err, ErrTupleType), test.ShouldBeTrue)

	_, err = ParseDictionary([]byte{0, 0xAA})
	test.That(t, errors.Is(err, ErrTrailingBytes), test.ShouldBeTrue)

	dict, err := ParseDictionary([]byte{0})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, dict, test.ShouldBeEmpty)
}

func TestDecodeMissingKey(t *testing.T) {
	_, err := Decode(nil)
	test.That(t, err, test.ShouldEqual, ErrMissingKey)

	_, err = Decode(Dictionary{Uint16Tuple(7, 90)})
	test.That(t, err, test.ShouldEqual, ErrMissingKey)
}

func TestDecodeIgnoresUnknownKeys(t *testing.T) {
	b, err := Decode(Dictionary{
		{Key: 42, Type: TypeCString, Value: []byte("hi\x00")},
		Uint16Tuple(KeyBearing, 45),
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, b.Degrees, test.ShouldEqual, uint16(45))
}

func TestDecodeValueWidths(t *testing.T) {
	for _, tc := range []struct {
		name  string
		tuple Tuple
		want  uint16
		ok    bool
	}{
		{"uint8", Tuple{Key: KeyBearing, Type: TypeUint, Value: []byte{200}}, 200, true},
		{"uint32", Tuple{Key: KeyBearing, Type: TypeUint, Value: []byte{0x2C, 0x01, 0, 0}}, 300, true},
		{"int16", Tuple{Key: KeyBearing, Type: TypeInt, Value: []byte{90, 0}}, 90, true},
		{"negative", Tuple{Key: KeyBearing, Type: TypeInt, Value: []byte{0xFF}}, 0, false},
		{"too wide", Tuple{Key: KeyBearing, Type: TypeUint, Value: []byte{0, 0, 1, 0}}, 0, false},
		{"odd width", Tuple{Key: KeyBearing, Type: TypeUint, Value: []byte{1, 2, 3}}, 0, false},
		{"string", Tuple{Key: KeyBearing, Type: TypeCString, Value: []byte("90\x00")}, 0, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b, err := Decode(Dictionary{tc.tuple})
			if !tc.ok {
				test.That(t, errors.Is(err, ErrBadValue), test.ShouldBeTrue)
				return
			}
			test.That(t, err, test.ShouldBeNil)
			test.That(t, b.Degrees, test.ShouldEqual, tc.want)
		})
	}
}

func TestMarshalTooLarge(t *testing.T) {
	d := Dictionary{{Key: 2, Type: TypeBytes, Value: make([]byte, InboxSize)}}
	_, err := d.MarshalBinary()
	test.That(t, errors.Is(err, ErrFrameTooLarge), test.ShouldBeTrue)
}

func TestDropReason(t *testing.T) {
	test.That(t, DropNotConnected.String(), test.ShouldEqual, "not connected")
	test.That(t, DropReason(3).String(), test.ShouldEqual, "reason 3")

	_, err := ParseDictionary(make([]byte, InboxSize+1))
	test.That(t, DropReasonFor(err), test.ShouldEqual, DropBufferOverflow)
	_, err = ParseDictionary([]byte{2})
	test.That(t, DropReasonFor(err), test.ShouldEqual, DropInvalidArgs)
	test.That(t, DropReasonFor(nil), test.ShouldEqual, DropReason(0))
}
