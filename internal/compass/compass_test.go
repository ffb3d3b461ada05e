package compass

import (
	"sync"
	"testing"

	"bearing-alert.klederson.com/internal/angle"
	tea "github.com/charmbracelet/bubbletea"
	"go.viam.com/test"
)

func TestClassify(t *testing.T) {
	st := Classify(Sample{Status: StatusDataInvalid, HeadingRaw: angle.FromDegrees(90)})
	test.That(t, st, test.ShouldResemble, Invalid{})
	_, ok := Heading(st)
	test.That(t, ok, test.ShouldBeFalse)

	for _, status := range []Status{StatusCalibrating, StatusCalibrated} {
		st = Classify(Sample{Status: status, HeadingRaw: angle.FromDegrees(185)})
		test.That(t, st, test.ShouldResemble, HeadingAvailable{Degrees: 185})
		deg, ok := Heading(st)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, deg, test.ShouldEqual, 185)
	}

	st = Classify(Sample{Status: Status(7), HeadingRaw: angle.FromDegrees(10)})
	test.That(t, st, test.ShouldResemble, UnknownStatus{Code: 7})

	st = Classify(Sample{Status: Status(-2)})
	test.That(t, st, test.ShouldResemble, UnknownStatus{Code: -2})
}

func TestStatusString(t *testing.T) {
	test.That(t, StatusCalibrated.String(), test.ShouldEqual, "calibrated")
	test.That(t, Status(9).String(), test.ShouldEqual, "unknown(9)")
}

func TestFilter(t *testing.T) {
	f := NewFilter(DefaultFilter)
	at := func(st Status, deg int) Sample {
		return Sample{Status: st, HeadingRaw: angle.FromDegrees(deg)}
	}

	test.That(t, f.Pass(at(StatusCalibrated, 0)), test.ShouldBeTrue)
	test.That(t, f.Pass(at(StatusCalibrated, 5)), test.ShouldBeFalse)
	test.That(t, f.Pass(at(StatusCalibrated, 355)), test.ShouldBeFalse)
	test.That(t, f.Pass(at(StatusCalibrated, 11)), test.ShouldBeTrue)
	// measured from the last delivered sample, across the wrap
	test.That(t, f.Pass(at(StatusCalibrated, 359)), test.ShouldBeTrue)
	test.That(t, f.Pass(at(StatusCalibrated, 3)), test.ShouldBeFalse)

	// status changes always pass
	test.That(t, f.Pass(at(StatusCalibrating, 359)), test.ShouldBeTrue)
	test.That(t, f.Pass(at(StatusCalibrating, 359)), test.ShouldBeFalse)
}

func TestFilterZeroDeliversAll(t *testing.T) {
	f := NewFilter(0)
	s := Sample{Status: StatusCalibrated, HeadingRaw: 42}
	test.That(t, f.Pass(s), test.ShouldBeTrue)
	test.That(t, f.Pass(s), test.ShouldBeTrue)
}

func TestMockSensorPhases(t *testing.T) {
	s := NewMockSensor(nil)
	test.That(t, s.sampleAt(0.5).Status, test.ShouldEqual, StatusDataInvalid)
	test.That(t, s.sampleAt(2).Status, test.ShouldEqual, StatusCalibrating)
	test.That(t, s.sampleAt(10).Status, test.ShouldEqual, StatusCalibrated)

	_, ok := Heading(Classify(s.sampleAt(10)))
	test.That(t, ok, test.ShouldBeTrue)
}

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()
}

func TestMockSensorStartStop(t *testing.T) {
	s := NewMockSensor(NewFilter(0))
	rec := &recordingSender{}
	test.That(t, s.Start(rec), test.ShouldBeNil)
	s.Stop()
	s.Stop()
}
