package app

import (
	"fmt"
	"time"

	"bearing-alert.klederson.com/internal/alert"
	"bearing-alert.klederson.com/internal/angle"
	"bearing-alert.klederson.com/internal/bearing"
	"bearing-alert.klederson.com/internal/companion"
	"bearing-alert.klederson.com/internal/compass"
	"bearing-alert.klederson.com/internal/config"
	"bearing-alert.klederson.com/internal/engine"
	"bearing-alert.klederson.com/internal/message"
	"bearing-alert.klederson.com/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// bearingNudge is how far [ and ] move the bearing in live mode.
const bearingNudge = 15

// statusCycle is the order the C key walks through.
var statusCycle = []compass.Status{
	compass.StatusDataInvalid,
	compass.StatusCalibrating,
	compass.StatusCalibrated,
	compass.Status(7),
}

type transport interface {
	Stop()
}

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	cfg        *config.Config
	logger     *zap.SugaredLogger
	engine     *engine.Engine
	face       *face
	vibe       *vibe
	track      *track
	filter     *compass.Filter
	mirror     *companion.WSServer
	transports []transport
}

// AppModel is the root Bubble Tea model for bearing-alert. It is the host
// the engine runs in: every sample and companion message reaches the engine
// through Update, one at a time.
type AppModel struct {
	width  int
	height int

	demo   bool
	source string
	manual compass.Sample
	errMsg string

	shared *shared
}

// New creates the model and its engine. The engine starts immediately so the
// face shows the initial texts before the first sample.
func New(cfg *config.Config, logger *zap.SugaredLogger) AppModel {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	sh := &shared{
		cfg:     cfg,
		logger:  logger,
		face:    &face{},
		vibe:    &vibe{now: time.Now},
		track:   newTrack(config.HistoryLength),
		filter:  compass.NewFilter(cfg.HeadingFilter()),
	}

	sinks := displays{sh.face}
	if cfg.Companion.Listen != "" {
		sh.mirror = companion.NewWSServer(cfg.Companion.Listen, logger.Named("ws"))
		sinks = append(sinks, sh.mirror)
	}

	evaluator := alert.NewEvaluator(sh.vibe,
		alert.WithPolicy(cfg.AlertPolicy()),
		alert.WithCooldown(cfg.Alert.Cooldown),
	)
	sh.engine = engine.New(bearing.NewStore(cfg.Threshold), evaluator, sinks, logger.Named("engine"))
	sh.engine.Start()

	return AppModel{
		demo:   cfg.Demo,
		source: sourceLabel(cfg),
		manual: compass.Sample{Status: compass.StatusCalibrated},
		shared: sh,
	}
}

func sourceLabel(cfg *config.Config) string {
	switch {
	case cfg.Demo && cfg.Companion.Listen != "":
		return companion.SourceDemo + "+" + companion.SourceWebSocket
	case cfg.Demo:
		return companion.SourceDemo
	case cfg.Companion.BLE && cfg.Companion.Listen != "":
		return companion.SourceBLE + "/" + cfg.Companion.Adapter + "+" + companion.SourceWebSocket
	case cfg.Companion.BLE:
		return companion.SourceBLE + "/" + cfg.Companion.Adapter
	case cfg.Companion.Listen != "":
		return companion.SourceWebSocket
	default:
		return "none"
	}
}

func (m AppModel) Init() tea.Cmd {
	if m.demo {
		return tickCmd()
	}
	sample := m.manual
	return tea.Batch(
		tickCmd(),
		func() tea.Msg { return compass.SampleMsg{Sample: sample} },
	)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		return m, tickCmd()

	case compass.SampleMsg:
		m.applySample(msg.Sample)
		return m, nil

	case companion.FrameMsg:
		if err := m.shared.engine.HandleFrame(msg.Frame); err != nil {
			m.shared.logger.Debugw("frame not applied", "source", msg.Source, "error", err)
		}
		return m, nil

	case companion.DropMsg:
		m.shared.engine.HandleDrop(msg.Reason)
		return m, nil

	case companion.ErrorMsg:
		m.errMsg = fmt.Sprintf("%s: %v", msg.Source, msg.Err)
		m.shared.logger.Errorw("transport failed", "source", msg.Source, "error", msg.Err)
		return m, nil
	}

	return m, nil
}

func (m AppModel) applySample(s compass.Sample) {
	st := m.shared.engine.HandleSample(s)
	if deg, ok := compass.Heading(st); ok {
		target := m.shared.engine.Target()
		m.shared.track.record(angle.CircularDistance(deg, target.Bearing), target.Threshold)
	}
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.stopTransports()
		return m, tea.Quit
	}
	if m.demo {
		return m, nil
	}

	switch msg.String() {
	case "left", "h":
		m.turn(-m.shared.cfg.HeadingFilterDeg)

	case "right", "l":
		m.turn(m.shared.cfg.HeadingFilterDeg)

	case "c", "C":
		m.manual.Status = nextStatus(m.manual.Status)
		m.deliver()

	case "[":
		m.nudgeBearing(-bearingNudge)

	case "]":
		m.nudgeBearing(bearingNudge)

	case "x", "X":
		m.shared.engine.HandleDrop(message.DropNotConnected)
	}

	return m, nil
}

// turn rotates the manual sensor and delivers it through the heading filter.
func (m *AppModel) turn(deg int) {
	m.manual.HeadingRaw = angle.FromDegrees(angle.ToDegrees(m.manual.HeadingRaw) + deg)
	m.deliver()
}

func (m *AppModel) deliver() {
	if m.shared.filter.Pass(m.manual) {
		m.applySample(m.manual)
	}
}

// nudgeBearing plays the companion locally: the new bearing goes through the
// same wire path as a received frame.
func (m AppModel) nudgeBearing(deg int) {
	b := angle.Normalize(m.shared.engine.Target().Bearing + deg)
	frame, err := message.EncodeBearing(uint16(b))
	if err != nil {
		m.shared.logger.Errorw("encoding bearing", "error", err)
		return
	}
	_ = m.shared.engine.HandleFrame(frame)
}

func nextStatus(s compass.Status) compass.Status {
	for i, st := range statusCycle {
		if st == s {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return statusCycle[0]
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing bearing-alert..."
	}

	menuH := 1
	statusH := 1
	bodyH := m.height - menuH - statusH
	if bodyH < 5 {
		bodyH = 5
	}

	dialW := m.width * 3 / 5
	// Keep the ring round: a row is about twice as tall as a column is wide
	if round := int(float64(bodyH)/config.AspectRatio) + 4; dialW > round {
		dialW = round
	}
	if dialW < 30 {
		dialW = 30
	}
	faceW := m.width - dialW
	if faceW < 24 {
		faceW = 24
		dialW = m.width - faceW
	}

	eng := m.shared.engine
	target := eng.Target()
	heading, available := compass.Heading(eng.State())
	dist := angle.CircularDistance(heading, target.Bearing)
	aligned := available && dist <= target.Threshold
	pulsing := m.shared.vibe.active(config.PulseFlash)

	menuBar := ui.RenderMenuBar(m.width, m.source, m.demo)

	innerW := dialW - 4
	innerH := bodyH - 4
	if innerW < 5 {
		innerW = 5
	}
	if innerH < 3 {
		innerH = 3
	}
	dial := ui.RenderDial(innerW, innerH, ui.Dial{
		Heading:    heading,
		HasHeading: available,
		Bearing:    target.Bearing,
		Threshold:  target.Threshold,
		Aligned:    aligned,
	})
	dialPanel := ui.RenderDialPanel(dialW, bodyH, dial, ui.RenderLegend(innerW))

	headingText, bearingText := m.shared.face.texts()
	facePanel := ui.RenderFace(ui.Face{
		HeadingText: headingText,
		BearingText: bearingText,
		Pulsing:     pulsing,
		Distance:    dist,
		Available:   available,
		Threshold:   target.Threshold,
		History:     m.shared.track.distances(),
		Streak:      m.shared.track.streak(),
	}, faceW, bodyH)

	statusBar := ui.RenderStatusBar(m.width, ui.StatusInfo{
		Calibration: calibrationLabel(eng.State()),
		Available:   available,
		Aligned:     aligned,
		Distance:    dist,
		Threshold:   target.Threshold,
		Policy:      eng.Evaluator().Policy().String(),
		Pulses:      eng.Evaluator().Pulses(),
		BearingSet:  eng.BearingSet(),
		Err:         m.errMsg,
	})

	return ui.ComposeLayout(menuBar, dialPanel, facePanel, statusBar)
}

func calibrationLabel(st compass.State) string {
	switch st := st.(type) {
	case nil:
		return "waiting"
	case compass.Invalid:
		return "invalid"
	case compass.UnknownStatus:
		return fmt.Sprintf("status %d", st.Code)
	default:
		return "heading"
	}
}

// StartTransports starts the sensor feed and companion transports. Must be
// called before p.Run().
func (m *AppModel) StartTransports(p companion.Sender) error {
	sh := m.shared
	if sh.mirror != nil {
		if err := sh.mirror.Start(p); err != nil {
			return err
		}
		sh.transports = append(sh.transports, sh.mirror)
	}

	if m.demo {
		sensor := compass.NewMockSensor(sh.filter)
		if err := sensor.Start(p); err != nil {
			return err
		}
		sh.transports = append(sh.transports, sensor)

		mock := companion.NewMockCompanion(config.DemoBearingEvery)
		if err := mock.Start(p); err != nil {
			return err
		}
		sh.transports = append(sh.transports, mock)
		return nil
	}

	if sh.cfg.Companion.BLE {
		receiver := companion.NewBLEReceiver(sh.cfg.Companion.Adapter, sh.cfg.Companion.CompanyID)
		if err := receiver.Start(p); err != nil {
			return err
		}
		sh.transports = append(sh.transports, receiver)
	}

	return nil
}

func (m *AppModel) stopTransports() {
	for _, t := range m.shared.transports {
		t.Stop()
	}
	m.shared.transports = nil
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
