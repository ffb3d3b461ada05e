// Package engine wires the bearing-alert core together: compass samples are
// classified, rendered and tested against the bearing store, and companion
// messages update the store.
//
// The host must call the Handle methods serially.
package engine

import (
	"bearing-alert.klederson.com/internal/alert"
	"bearing-alert.klederson.com/internal/bearing"
	"bearing-alert.klederson.com/internal/compass"
	"bearing-alert.klederson.com/internal/message"
	"bearing-alert.klederson.com/internal/status"
	"go.uber.org/zap"
)

// Display receives the two text fields whenever they are recomputed.
type Display interface {
	SetHeadingText(text string)
	SetBearingText(text string)
}

// Engine is the bearing-alert core for one process lifetime.
type Engine struct {
	store     *bearing.Store
	evaluator *alert.Evaluator
	display   Display
	logger    *zap.SugaredLogger

	state compass.State
}

// New creates an engine around an owned store and evaluator.
func New(store *bearing.Store, evaluator *alert.Evaluator, display Display, logger *zap.SugaredLogger) *Engine {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Engine{
		store:     store,
		evaluator: evaluator,
		display:   display,
		logger:    logger,
	}
}

// Start pushes the initial display state.
func (e *Engine) Start() {
	e.display.SetHeadingText(status.InitialHeading)
	e.display.SetBearingText(status.FormatBearing(e.store.Current()))
}

// HandleSample classifies a sample, renders it and, when it carries a
// heading, runs the alert test. It returns the classification.
func (e *Engine) HandleSample(s compass.Sample) compass.State {
	st := compass.Classify(s)
	e.state = st
	e.display.SetHeadingText(status.FormatHeading(st))

	switch st := st.(type) {
	case compass.HeadingAvailable:
		target := e.store.Current()
		if e.evaluator.Evaluate(st.Degrees, target) {
			e.logger.Debugw("alert", "heading", st.Degrees, "bearing", target.Bearing, "threshold", target.Threshold)
		}
	case compass.UnknownStatus:
		e.logger.Warnw("unknown compass status", "code", st.Code)
	}
	return st
}

// HandleMessage applies a companion dictionary. On a decode error neither the
// store nor the display changes.
func (e *Engine) HandleMessage(d message.Dictionary) error {
	msg, err := message.Decode(d)
	if err != nil {
		e.logger.Debugw("ignoring companion message", "error", err, "tuples", len(d))
		return err
	}
	e.store.Update(msg)
	target := e.store.Current()
	e.logger.Infow("bearing updated", "bearing", target.Bearing)
	e.display.SetBearingText(status.FormatBearing(target))
	return nil
}

// HandleFrame parses a wire frame and applies it. Frames that fail to parse
// are treated as transport drops.
func (e *Engine) HandleFrame(frame []byte) error {
	d, err := message.ParseDictionary(frame)
	if err != nil {
		e.logger.Warnw("malformed companion frame", "error", err, "bytes", len(frame))
		e.HandleDrop(message.DropReasonFor(err))
		return err
	}
	return e.HandleMessage(d)
}

// HandleDrop records that the transport dropped an inbound message.
func (e *Engine) HandleDrop(reason message.DropReason) {
	e.logger.Warnw("message dropped", "reason", reason.String(), "code", uint32(reason))
	e.display.SetHeadingText(status.DroppedHeading)
}

// Target returns the current bearing target.
func (e *Engine) Target() bearing.Target {
	return e.store.Current()
}

// BearingSet reports whether a bearing has been received.
func (e *Engine) BearingSet() bool {
	return e.store.IsSet()
}

// State returns the classification of the last sample, or nil before the
// first one.
func (e *Engine) State() compass.State {
	return e.state
}

// Evaluator exposes the alert evaluator for status reporting.
func (e *Engine) Evaluator() *alert.Evaluator {
	return e.evaluator
}
