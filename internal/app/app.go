package app

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"radar-panel.klederson.com/internal/config"
	"radar-panel.klederson.com/internal/control"
	"radar-panel.klederson.com/internal/device"
	"radar-panel.klederson.com/internal/dialog"
	"radar-panel.klederson.com/internal/panel"
	"radar-panel.klederson.com/internal/radar"
	"radar-panel.klederson.com/internal/ui"
)

// Link is the connection to the radar, either the simulator or the MQTT
// bridge.
type Link interface {
	dialog.CommandSink
	Start(p device.Sender) error
	Stop()
}

// Options configures New.
type Options struct {
	Profile  *control.Profile
	Link     Link
	LinkName string
	AutoHide time.Duration
	Logger   *zap.Logger
	Now      func() time.Time
}

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	dialog  *dialog.Dialog
	link    Link
	targets *TargetStore
	history *CommandRing
	sweep   *radar.Sweep
	logger  *zap.Logger
	now     func() time.Time
	scale   float64
	alarmed map[int]bool
}

// recorder keeps a copy of every command on its way to the radar.
type recorder struct {
	history *CommandRing
	next    dialog.CommandSink
}

func (r *recorder) Submit(cmd control.Command) {
	r.history.Push(cmd)
	if r.next != nil {
		r.next.Submit(cmd)
	}
}

// AppModel is the root Bubble Tea model for the radar control panel.
type AppModel struct {
	width  int
	height int

	linkName string
	cursor   int
	form     *ui.ZoneForm
	formErr  string
	keyErr   string
	linkErr  string

	shared *shared

	// Cached snapshot
	view    dialog.View
	targets []radar.Target
	bogeys  []int
}

// New creates a new AppModel with the control panel shown.
func New(opts Options) (AppModel, error) {
	if opts.Profile == nil {
		return AppModel{}, errors.New("app: no radar profile")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	history := NewCommandRing(config.HistorySize)
	d, err := dialog.New(opts.Profile, &recorder{history: history, next: opts.Link},
		dialog.WithLogger(opts.Logger),
		dialog.WithClock(opts.Now),
		dialog.WithAutoHide(opts.AutoHide),
	)
	if err != nil {
		return AppModel{}, err
	}
	d.ShowDialog()

	m := AppModel{
		linkName: opts.LinkName,
		shared: &shared{
			dialog:  d,
			link:    opts.Link,
			targets: NewTargetStore(),
			history: history,
			sweep:   radar.NewSweep(),
			logger:  opts.Logger,
			now:     opts.Now,
			scale:   config.DefaultScale,
			alarmed: make(map[int]bool),
		},
	}
	return m.refresh(), nil
}

// Dialog exposes the dialog coordinator.
func (m AppModel) Dialog() *dialog.Dialog { return m.shared.dialog }

// History returns the commands sent so far, oldest first.
func (m AppModel) History() []control.Command { return m.shared.history.Values() }

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		panelTickCmd(),
		evictCmd(),
	)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.form != nil {
			return m.handleFormKey(msg)
		}
		return m.handleKey(msg)

	case TickMsg:
		m.shared.sweep.Update()
		return m.refresh(), tickCmd()

	case PanelTickMsg:
		m.shared.dialog.Tick(time.Time(msg))
		return m.refresh(), panelTickCmd()

	case EvictMsg:
		if n := m.shared.targets.Evict(config.TargetTimeout, time.Time(msg)); n > 0 {
			m.shared.logger.Debug("Evicted stale targets", zap.Int("count", n))
		}
		return m.refresh(), evictCmd()

	case device.ReportMsg:
		m.shared.dialog.ReportFromDevice(msg.Kind, msg.Value, msg.Mode)
		return m.refresh(), nil

	case device.BoundsMsg:
		if err := m.shared.dialog.ReportBounds(msg.Min, msg.Max); err != nil {
			m.linkErr = err.Error()
		}
		return m.refresh(), nil

	case device.TargetMsg:
		m.shared.targets.Upsert(msg.ID, msg.Range, msg.Bearing, m.shared.now())
		return m.refresh(), nil

	case device.ErrorMsg:
		m.linkErr = msg.Err.Error()
		return m, nil
	}

	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.shared.dialog
	m.keyErr = ""

	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.stopLink()
		return m, tea.Quit

	case "h", "H":
		d.ToggleDialog()
		return m.refresh(), nil

	case "m", "M":
		d.SetManuallyPositioned(!m.view.ManuallyPositioned)
		return m.refresh(), nil

	case "1", "2":
		index := int(msg.String()[0] - '1')
		cfg, err := d.Zone(index)
		if err != nil {
			return m, nil
		}
		if err := d.EditZone(index); err != nil {
			m.shared.logger.Debug("Zone edit refused", zap.Int("zone", index), zap.Error(err))
			m.keyErr = "zone edit: " + err.Error()
			return m.refresh(), nil
		}
		form := ui.NewZoneForm(index, cfg)
		m.form = &form
		m.formErr = ""
		return m.refresh(), nil
	}

	if m.view.Visibility != panel.Shown || len(m.view.Controls) == 0 {
		return m.refresh(), nil
	}
	kind := m.view.Controls[m.cursor].Kind

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		d.Touch()

	case "down", "j":
		if m.cursor < len(m.view.Controls)-1 {
			m.cursor++
		}
		d.Touch()

	case "home":
		m.cursor = 0
		d.Touch()

	case "end":
		m.cursor = len(m.view.Controls) - 1
		d.Touch()

	case "+", "=", "right":
		m.adjust(kind, config.SmallStep)

	case "-", "_", "left":
		m.adjust(kind, -config.SmallStep)

	case "pgup":
		m.adjust(kind, config.LargeStep)

	case "pgdown":
		m.adjust(kind, -config.LargeStep)

	case "a", "A":
		_ = d.CycleAuto(kind)
	}

	return m.refresh(), nil
}

// adjust routes a step to kind. Range steps are scaled to meters.
func (m AppModel) adjust(kind control.Kind, steps int) {
	if kind == control.KindRange {
		steps *= config.RangeStep
	}
	_ = m.shared.dialog.RouteAdjustment(kind, steps)
}

func (m AppModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.shared.dialog

	switch msg.String() {
	case "ctrl+c":
		m.stopLink()
		return m, tea.Quit

	case "tab", "down":
		m.form.NextField()

	case "shift+tab", "up":
		m.form.PrevField()

	case "+", "=", "right", " ":
		m.form.Adjust(1)

	case "-", "_", "left":
		m.form.Adjust(-1)

	case "pgup":
		m.form.Adjust(config.LargeStep)

	case "pgdown":
		m.form.Adjust(-config.LargeStep)

	case "enter":
		if err := d.ConfigureZone(m.form.Index, m.form.Config); err != nil {
			m.formErr = err.Error()
			return m.refresh(), nil
		}
		d.FinishZoneEdit()
		m.form = nil
		m.formErr = ""

	case "esc":
		d.FinishZoneEdit()
		m.form = nil
		m.formErr = ""
	}

	return m.refresh(), nil
}

// refresh re-reads the dialog and targets and flags targets inside alarm
// zones.
func (m AppModel) refresh() AppModel {
	d := m.shared.dialog
	m.view = d.View()

	for _, c := range m.view.Controls {
		if c.Kind == control.KindRange && c.Mode.Kind == control.ModeManual && c.Value > 0 {
			m.shared.scale = float64(c.Value)
		}
	}
	if m.cursor >= len(m.view.Controls) {
		m.cursor = max(0, len(m.view.Controls)-1)
	}

	snap := m.shared.targets.Snapshot()
	m.targets = make([]radar.Target, 0, len(snap))
	m.bogeys = nil
	inside := make(map[int]bool, len(snap))
	for _, t := range snap {
		zones := d.ZonesContaining(t.Range, t.Bearing)
		bogey := len(zones) > 0
		m.targets = append(m.targets, radar.Target{
			ID:      t.ID,
			Range:   t.Range,
			Bearing: t.Bearing,
			Bogey:   bogey,
		})
		if !bogey {
			continue
		}
		m.bogeys = append(m.bogeys, t.ID)
		inside[t.ID] = true
		if !m.shared.alarmed[t.ID] {
			m.shared.logger.Warn("Guard zone alarm",
				zap.Int("target", t.ID),
				zap.Ints("zones", zones),
				zap.Float64("range", t.Range),
				zap.Float64("bearing", t.Bearing))
		}
	}
	m.shared.alarmed = inside
	return m
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing radar panel..."
	}

	menuH := 1
	statusH := 1
	bodyH := m.height - menuH - statusH
	if bodyH < 5 {
		bodyH = 5
	}

	radarW := m.width * 2 / 3
	if radarW < 30 {
		radarW = 30
	}
	sideW := m.width - radarW
	if sideW < 24 {
		sideW = 24
		radarW = m.width - sideW
	}

	menuBar := ui.RenderMenuBar(m.width, m.view.Model, m.linkName)

	innerW := radarW - 4
	innerH := bodyH - 5
	if innerW < 5 {
		innerW = 5
	}
	if innerH < 3 {
		innerH = 3
	}
	scale := m.shared.scale
	radarContent := radar.Render(innerW, innerH, radar.Scene{
		Scale:   scale,
		Zones:   m.view.Zones[:],
		Editing: m.view.EditingZone,
		Targets: m.targets,
		Sweep:   m.shared.sweep,
	})
	legend := radar.RenderLegend(innerW, scale)
	radarPanel := ui.RenderRadarPanel(radarW, bodyH, radar.FormatDistance(scale), radarContent, legend)

	var side string
	if m.form != nil {
		side = ui.RenderGuardPanel(*m.form, sideW, bodyH, m.formErr)
	} else {
		side = ui.RenderControlList(m.view.Controls, sideW, bodyH, m.cursor, m.view.Visibility, m.view.ManuallyPositioned)
	}

	status := ui.StatusInfo{
		Visibility: m.view.Visibility,
		Targets:    len(m.targets),
		Bogeys:     m.bogeys,
		SweepDeg:   m.shared.sweep.Degrees(),
		LastError:  m.view.LastError,
	}
	if !m.view.AutoHideDeadline.IsZero() {
		status.AutoHideIn = m.view.AutoHideDeadline.Sub(m.shared.now())
	}
	if cmd, ok := m.shared.history.Last(); ok {
		status.LastCommand = cmd.String()
	}
	if m.keyErr != "" {
		status.LastError = m.keyErr
	}
	if m.linkErr != "" {
		status.LastError = m.linkErr
	}
	statusBar := ui.RenderStatusBar(m.width, status)

	if m.view.ManuallyPositioned {
		return ui.ComposeOverlay(menuBar, radarPanel, side, statusBar)
	}
	return ui.ComposeLayout(menuBar, radarPanel, side, statusBar)
}

// StartLink connects the radar link. Must be called before p.Run().
func (m *AppModel) StartLink(p *tea.Program) error {
	if m.shared.link == nil {
		return nil
	}
	return m.shared.link.Start(p)
}

func (m AppModel) stopLink() {
	if m.shared.link != nil {
		m.shared.link.Stop()
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func panelTickCmd() tea.Cmd {
	return tea.Tick(config.TickInterval, func(t time.Time) tea.Msg {
		return PanelTickMsg(t)
	})
}

func evictCmd() tea.Cmd {
	return tea.Tick(config.EvictInterval, func(t time.Time) tea.Msg {
		return EvictMsg(t)
	})
}
