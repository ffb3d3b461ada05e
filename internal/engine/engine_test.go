package engine

import (
	"testing"

	"bearing-alert.klederson.com/internal/alert"
	"bearing-alert.klederson.com/internal/angle"
	"bearing-alert.klederson.com/internal/bearing"
	"bearing-alert.klederson.com/internal/compass"
	"bearing-alert.klederson.com/internal/message"
	"bearing-alert.klederson.com/internal/status"
	"go.uber.org/zap/zaptest"
	"go.viam.com/test"
)

type fakeDisplay struct {
	heading, bearing         string
	headingSets, bearingSets int
}

func (d *fakeDisplay) SetHeadingText(s string) { d.heading = s; d.headingSets++ }
func (d *fakeDisplay) SetBearingText(s string) { d.bearing = s; d.bearingSets++ }

type fakeHaptic struct{ pulses int }

func (h *fakeHaptic) Pulse() { h.pulses++ }

func newEngine(t *testing.T, threshold int) (*Engine, *fakeDisplay, *fakeHaptic) {
	t.Helper()
	d := &fakeDisplay{}
	h := &fakeHaptic{}
	e := New(bearing.NewStore(threshold), alert.NewEvaluator(h), d, zaptest.NewLogger(t).Sugar())
	e.Start()
	return e, d, h
}

func setBearing(t *testing.T, e *Engine, deg uint16) {
	t.Helper()
	test.That(t, e.HandleMessage(message.Dictionary{message.Uint16Tuple(message.KeyBearing, deg)}), test.ShouldBeNil)
}

func TestStartDefaults(t *testing.T) {
	e, d, _ := newEngine(t, bearing.DefaultThreshold)
	test.That(t, d.heading, test.ShouldEqual, status.InitialHeading)
	test.That(t, d.bearing, test.ShouldEqual, "0°")
	test.That(t, e.BearingSet(), test.ShouldBeFalse)
	test.That(t, e.State(), test.ShouldBeNil)
}

func TestEndToEndAlert(t *testing.T) {
	e, d, h := newEngine(t, 10)
	setBearing(t, e, 180)
	test.That(t, d.bearing, test.ShouldEqual, "180°")

	st := e.HandleSample(compass.Sample{Status: compass.StatusCalibrated, HeadingRaw: angle.FromDegrees(185)})
	test.That(t, st, test.ShouldResemble, compass.HeadingAvailable{Degrees: 185})
	test.That(t, d.heading, test.ShouldEqual, "185°\n1.02pi")
	test.That(t, h.pulses, test.ShouldEqual, 1)
	test.That(t, e.Evaluator().Inside(), test.ShouldBeTrue)
}

func TestWrapAlert(t *testing.T) {
	e, _, h := newEngine(t, 10)
	e.HandleSample(compass.Sample{Status: compass.StatusCalibrating, HeadingRaw: angle.FromDegrees(359)})
	test.That(t, h.pulses, test.ShouldEqual, 1)

	setBearing(t, e, 180)
	e.HandleSample(compass.Sample{Status: compass.StatusCalibrated, HeadingRaw: angle.FromDegrees(0)})
	test.That(t, h.pulses, test.ShouldEqual, 1)
}

func TestNoAlertWithoutHeading(t *testing.T) {
	e, d, h := newEngine(t, 180)

	st := e.HandleSample(compass.Sample{Status: compass.StatusDataInvalid})
	test.That(t, st, test.ShouldResemble, compass.Invalid{})
	test.That(t, d.heading, test.ShouldEqual, "Compass data invalid")

	st = e.HandleSample(compass.Sample{Status: compass.Status(5), HeadingRaw: angle.FromDegrees(0)})
	test.That(t, st, test.ShouldResemble, compass.UnknownStatus{Code: 5})
	test.That(t, d.heading, test.ShouldEqual, "Unknown CompassStatus: 5")

	test.That(t, h.pulses, test.ShouldEqual, 0)
}

func TestMissingKeyLeavesBearing(t *testing.T) {
	e, d, _ := newEngine(t, 10)
	setBearing(t, e, 45)
	sets := d.bearingSets

	err := e.HandleMessage(message.Dictionary{message.Uint16Tuple(9, 300)})
	test.That(t, err, test.ShouldEqual, message.ErrMissingKey)
	test.That(t, e.Target(), test.ShouldResemble, bearing.Target{Bearing: 45, Threshold: 10})
	test.That(t, d.bearing, test.ShouldEqual, "45°")
	test.That(t, d.bearingSets, test.ShouldEqual, sets)
}

func TestDecodeTwiceIdempotent(t *testing.T) {
	e, _, _ := newEngine(t, 10)
	setBearing(t, e, 200)
	once := e.Target()
	setBearing(t, e, 200)
	test.That(t, e.Target(), test.ShouldResemble, once)
	test.That(t, e.BearingSet(), test.ShouldBeTrue)
}

func TestHandleFrame(t *testing.T) {
	e, d, _ := newEngine(t, 10)

	frame, err := message.EncodeBearing(300)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, e.HandleFrame(frame), test.ShouldBeNil)
	test.That(t, d.bearing, test.ShouldEqual, "300°")

	err = e.HandleFrame([]byte{3, 1})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, d.heading, test.ShouldEqual, status.DroppedHeading)
	test.That(t, e.Target().Bearing, test.ShouldEqual, 300)
}

func TestHandleDrop(t *testing.T) {
	e, d, h := newEngine(t, 10)
	e.HandleDrop(message.DropNotConnected)
	test.That(t, d.heading, test.ShouldEqual, "Message dropped")
	test.That(t, d.bearing, test.ShouldEqual, "0°")

	// the next sample replaces the notice
	e.HandleSample(compass.Sample{Status: compass.StatusCalibrated, HeadingRaw: angle.FromDegrees(90)})
	test.That(t, d.heading, test.ShouldEqual, "90°\n0.50pi")
	test.That(t, h.pulses, test.ShouldEqual, 0)
}
