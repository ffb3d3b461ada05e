package angle

import (
	"testing"

	"go.viam.com/test"
)

func TestToDegrees(t *testing.T) {
	test.That(t, ToDegrees(0), test.ShouldEqual, 0)
	test.That(t, ToDegrees(TrigMaxAngle/4), test.ShouldEqual, 90)
	test.That(t, ToDegrees(TrigMaxAngle/2), test.ShouldEqual, 180)
	test.That(t, ToDegrees(TrigMaxAngle-1), test.ShouldEqual, 359)
	test.That(t, ToDegrees(TrigMaxAngle), test.ShouldEqual, 0)
	test.That(t, ToDegrees(TrigMaxAngle+TrigMaxAngle/4), test.ShouldEqual, 90)
}

func TestFromDegreesRoundTrip(t *testing.T) {
	for d := 0; d < 360; d++ {
		test.That(t, ToDegrees(FromDegrees(d)), test.ShouldEqual, d)
	}
	test.That(t, FromDegrees(0), test.ShouldEqual, Raw(0))
	test.That(t, FromDegrees(360), test.ShouldEqual, Raw(0))
	test.That(t, FromDegrees(-90), test.ShouldEqual, FromDegrees(270))
}

func TestNormalize(t *testing.T) {
	test.That(t, Normalize(0), test.ShouldEqual, 0)
	test.That(t, Normalize(360), test.ShouldEqual, 0)
	test.That(t, Normalize(725), test.ShouldEqual, 5)
	test.That(t, Normalize(-1), test.ShouldEqual, 359)
	test.That(t, Normalize(-361), test.ShouldEqual, 359)
}

func TestCircularDistance(t *testing.T) {
	test.That(t, CircularDistance(0, 359), test.ShouldEqual, 1)
	test.That(t, CircularDistance(359, 0), test.ShouldEqual, 1)
	test.That(t, CircularDistance(0, 180), test.ShouldEqual, 180)
	test.That(t, CircularDistance(10, 350), test.ShouldEqual, 20)
	test.That(t, CircularDistance(-10, 10), test.ShouldEqual, 20)
	test.That(t, CircularDistance(185, 180), test.ShouldEqual, 5)
}

func TestRawDelta(t *testing.T) {
	test.That(t, RawDelta(0, TrigMaxAngle-1), test.ShouldEqual, Raw(1))
	test.That(t, RawDelta(TrigMaxAngle-1, 0), test.ShouldEqual, Raw(1))
	test.That(t, RawDelta(100, 300), test.ShouldEqual, Raw(200))
	test.That(t, RawDelta(0, TrigMaxAngle/2), test.ShouldEqual, TrigMaxAngle/2)
}

func TestPoint(t *testing.T) {
	test.That(t, Point(0), test.ShouldEqual, "N")
	test.That(t, Point(44), test.ShouldEqual, "NE")
	test.That(t, Point(90), test.ShouldEqual, "E")
	test.That(t, Point(200), test.ShouldEqual, "S")
	test.That(t, Point(350), test.ShouldEqual, "N")
	test.That(t, Point(-90), test.ShouldEqual, "W")
}
