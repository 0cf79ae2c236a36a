package update

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rensjo/habitquestd/internal/commands"
	"github.com/Rensjo/habitquestd/internal/notify"
	"github.com/Rensjo/habitquestd/internal/service"
	"github.com/Rensjo/habitquestd/internal/views"
)

const testReminderBody = "This is a test reminder from HabitQuest."

const helpGuideMarkdown = `# HabitQuest Reminder

The dashboard fronts the background scheduler. Habit completions and
activity check-ins recorded here feed the same state the reminder
policy reads.

- reminders fire only inside the configured hour window
- each day is capped by the daily reminder limit
- twelve quiet hours must pass before a nudge goes out
`

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Complete string
	Track    string
	CheckIn  string
	Toggle   string
	Test     string
	Refresh  string
	Help     string
	Quit     string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type HabitItem struct {
	ID          string
	CompletedAt time.Time
}

type Model struct {
	Service      *service.Service
	Snapshot     service.Status
	Habits       []HabitItem
	Cursor       int
	Palette      CommandPaletteState
	TrackActive  bool
	HelpVisible  bool
	Status       StatusBar
	Keys         GlobalKeyMap
	RefreshEvery time.Duration
	Quitting     bool
	LastError    error

	commandInput textinput.Model
	trackInput   textinput.Model
	helpModel    help.Model
}

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

type RefreshMsg struct{}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

func NewModel(svc *service.Service) Model {
	m := Model{
		Service:      svc,
		RefreshEvery: time.Second,
		Keys: GlobalKeyMap{
			Complete: "c",
			Track:    "a",
			CheckIn:  " ",
			Toggle:   "n",
			Test:     "t",
			Refresh:  "r",
			Help:     "?",
			Quit:     "q",
		},
	}
	m.initBubbleComponents()
	m.refreshSnapshot()
	return m
}

func NewModelWithRefresh(svc *service.Service, every time.Duration) Model {
	m := NewModel(svc)
	if every > 0 {
		m.RefreshEvery = every
	}
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 44

	m.trackInput = textinput.New()
	m.trackInput.Prompt = "habit> "
	m.trackInput.CharLimit = 128
	m.trackInput.Width = 36

	m.helpModel = help.New()
}

func (m Model) Init() tea.Cmd {
	if m.Service == nil {
		return nil
	}
	return refreshAfter(m.RefreshEvery)
}

func refreshAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return RefreshMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed), nil
		}
		if m.TrackActive {
			return m.handleTrackKey(typed), nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Complete:
			return m.completeSelected(), nil
		case m.Keys.Track:
			m.TrackActive = true
			m.trackInput.Focus()
			m.trackInput.SetValue("")
			m.Status = StatusBar{Text: "tracking new habit, enter to confirm"}
			return m, nil
		case m.Keys.CheckIn:
			return m.recordCheckIn(), nil
		case m.Keys.Toggle:
			return m.toggleNotifications(), nil
		case m.Keys.Test:
			return m.sendTestNotification(), nil
		case m.Keys.Refresh:
			m.refreshSnapshot()
			m.Status = StatusBar{Text: "status refreshed"}
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case "j", "down":
			if m.Cursor < len(m.Habits)-1 {
				m.Cursor++
			}
			return m, nil
		case "k", "up":
			if m.Cursor > 0 {
				m.Cursor--
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
	case RefreshMsg:
		m.refreshSnapshot()
		if m.Quitting {
			return m, nil
		}
		return m, refreshAfter(m.RefreshEvery)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) completeSelected() Model {
	item, ok := m.selectedHabit()
	if !ok {
		m.Status = StatusBar{Text: "no habit selected, press a to track one", IsError: true}
		return m
	}
	if m.Service == nil {
		m.Status = StatusBar{Text: "service unavailable", IsError: true}
		return m
	}
	m.Service.RecordHabitCompletion(item.ID)
	m.refreshSnapshot()
	m.Status = StatusBar{Text: fmt.Sprintf("habit completed: %s", item.ID)}
	return m
}

func (m Model) recordCheckIn() Model {
	if m.Service == nil {
		m.Status = StatusBar{Text: "service unavailable", IsError: true}
		return m
	}
	m.Service.RecordActivity()
	m.refreshSnapshot()
	m.Status = StatusBar{Text: "activity check-in recorded"}
	return m
}

func (m Model) toggleNotifications() Model {
	if m.Service == nil {
		m.Status = StatusBar{Text: "service unavailable", IsError: true}
		return m
	}
	cfg := m.Snapshot.Config
	cfg.Enabled = !cfg.Enabled
	if err := m.Service.UpdateConfig(cfg); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.refreshSnapshot()
	if cfg.Enabled {
		m.Status = StatusBar{Text: "notifications on"}
	} else {
		m.Status = StatusBar{Text: "notifications off"}
	}
	return m
}

func (m Model) sendTestNotification() Model {
	if m.Service == nil {
		m.Status = StatusBar{Text: "service unavailable", IsError: true}
		return m
	}
	if err := m.Service.SendNotification(notify.ReminderTitle, testReminderBody); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: "test notification sent"}
	return m
}

func (m Model) handleTrackKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.TrackActive = false
		m.trackInput.SetValue("")
		m.trackInput.Blur()
		m.Status = StatusBar{Text: "tracking cancelled"}
	case "enter":
		id := strings.TrimSpace(m.trackInput.Value())
		m.TrackActive = false
		m.trackInput.SetValue("")
		m.trackInput.Blur()
		if id == "" {
			m.Status = StatusBar{Text: "habit id is empty", IsError: true}
			return m
		}
		if m.Service == nil {
			m.Status = StatusBar{Text: "service unavailable", IsError: true}
			return m
		}
		m.Service.RecordHabitCompletion(id)
		m.refreshSnapshot()
		m.selectHabit(id)
		m.Status = StatusBar{Text: fmt.Sprintf("habit tracked: %s", id)}
	default:
		if msg.Type == tea.KeyRunes {
			m.trackInput.SetValue(m.trackInput.Value() + string(msg.Runes))
			return m
		}
		var cmd tea.Cmd
		m.trackInput, cmd = m.trackInput.Update(msg)
		_ = cmd
	}
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Complete: func(a commands.CompleteArgs) (commands.Result, error) {
			if m.Service == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeHandlerMissing, Message: "service unavailable"}
			}
			m.Service.RecordHabitCompletion(a.HabitID)
			return commands.Result{Message: fmt.Sprintf("habit completed: %s", a.HabitID)}, nil
		},
		Activity: func() (commands.Result, error) {
			if m.Service == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeHandlerMissing, Message: "service unavailable"}
			}
			m.Service.RecordActivity()
			return commands.Result{Message: "activity check-in recorded"}, nil
		},
		Notify: func(a commands.NotifyArgs) (commands.Result, error) {
			if m.Service == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeHandlerMissing, Message: "service unavailable"}
			}
			cfg := m.Snapshot.Config
			cfg.Enabled = a.Enabled
			if err := m.Service.UpdateConfig(cfg); err != nil {
				return commands.Result{}, err
			}
			state := "off"
			if a.Enabled {
				state = "on"
			}
			return commands.Result{Message: "notifications " + state}, nil
		},
		Window: func(a commands.WindowArgs) (commands.Result, error) {
			if m.Service == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeHandlerMissing, Message: "service unavailable"}
			}
			cfg := m.Snapshot.Config
			cfg.ReminderStartHour = a.StartHour
			cfg.ReminderEndHour = a.EndHour
			if err := m.Service.UpdateConfig(cfg); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("reminder window set to %02d-%02d", a.StartHour, a.EndHour)}, nil
		},
		Max: func(a commands.MaxArgs) (commands.Result, error) {
			if m.Service == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeHandlerMissing, Message: "service unavailable"}
			}
			cfg := m.Snapshot.Config
			cfg.MaxRemindersPerDay = a.Limit
			if err := m.Service.UpdateConfig(cfg); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("daily reminder limit set to %d", a.Limit)}, nil
		},
		Test: func() (commands.Result, error) {
			if m.Service == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeHandlerMissing, Message: "service unavailable"}
			}
			if err := m.Service.SendNotification(notify.ReminderTitle, testReminderBody); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "test notification sent"}, nil
		},
		Status: func() (commands.Result, error) {
			if m.Service == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeHandlerMissing, Message: "service unavailable"}
			}
			st := m.Service.Status()
			return commands.Result{Message: fmt.Sprintf(
				"running=%t state=%s ticks=%d sent=%d/%d",
				st.Engine.Running, st.Engine.State, st.Engine.Ticks,
				st.NotificationsSentToday, st.Config.MaxRemindersPerDay,
			)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message}
	}
	m.refreshSnapshot()

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m
}

func (m *Model) refreshSnapshot() {
	if m.Service == nil {
		return
	}
	m.Snapshot = m.Service.Status()

	habits := make([]HabitItem, 0, len(m.Snapshot.HabitCompletions))
	for id, ts := range m.Snapshot.HabitCompletions {
		habits = append(habits, HabitItem{ID: id, CompletedAt: ts})
	}
	sort.Slice(habits, func(i, j int) bool { return habits[i].ID < habits[j].ID })
	m.Habits = habits

	if m.Cursor >= len(m.Habits) && len(m.Habits) > 0 {
		m.Cursor = len(m.Habits) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m Model) selectedHabit() (HabitItem, bool) {
	if len(m.Habits) == 0 || m.Cursor < 0 || m.Cursor >= len(m.Habits) {
		return HabitItem{}, false
	}
	return m.Habits[m.Cursor], true
}

func (m *Model) selectHabit(id string) {
	for i, item := range m.Habits {
		if item.ID == id {
			m.Cursor = i
			return
		}
	}
}

func (m Model) View() string {
	now := time.Now()

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	left := m.renderHabitsView(now) + "\n\n" + m.renderActivityView(now)
	right := m.renderServiceView()
	if palette := views.RenderCommandPalette(m.Palette.Active, m.commandInput.View()); palette != "" {
		right += "\n\n" + palette
	}
	if m.HelpVisible {
		right += "\n\n" + m.renderHelpView()
	}

	return views.RenderApp(views.AppData{
		Header:        fmt.Sprintf("habitquestd | habits: %d | reminders today: %d/%d", len(m.Habits), m.Snapshot.NotificationsSentToday, m.Snapshot.Config.MaxRemindersPerDay),
		LeftPane:      left,
		RightPane:     right,
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Footer:        fmt.Sprintf("keys: %s complete | %s track | space check-in | %s notifications | %s test | / command | %s help | %s quit", m.Keys.Complete, m.Keys.Track, m.Keys.Toggle, m.Keys.Test, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderHabitsView(now time.Time) string {
	items := make([]views.HabitItemData, 0, len(m.Habits))
	for _, h := range m.Habits {
		items = append(items, views.HabitItemData{
			ID:            h.ID,
			LastCompleted: formatAgo(now, h.CompletedAt),
			DoneToday:     sameDay(h.CompletedAt, now),
		})
	}
	selectedID := ""
	if sel, ok := m.selectedHabit(); ok {
		selectedID = sel.ID
	}
	return views.RenderHabitsPanel(views.HabitsPanelData{
		Items:          items,
		SelectedID:     selectedID,
		TrackActive:    m.TrackActive,
		TrackInputView: m.trackInput.View(),
	})
}

func (m Model) renderActivityView(now time.Time) string {
	lastReminder := ""
	if m.Snapshot.LastNotificationDate != nil {
		lastReminder = m.Snapshot.LastNotificationDate.Format("2006-01-02")
	}
	idle := 0
	if !m.Snapshot.LastActivity.IsZero() {
		idle = int(now.Sub(m.Snapshot.LastActivity) / time.Hour)
	}
	if idle < 0 {
		idle = 0
	}
	return views.RenderActivityPanel(views.ActivityPanelData{
		LastActivity:  formatAgo(now, m.Snapshot.LastActivity),
		InactiveHours: idle,
		Sessions:      m.Snapshot.SessionsInWindow,
		SentToday:     m.Snapshot.NotificationsSentToday,
		MaxPerDay:     m.Snapshot.Config.MaxRemindersPerDay,
		LastReminder:  lastReminder,
	})
}

func (m Model) renderServiceView() string {
	eng := m.Snapshot.Engine
	lastTick := ""
	if !eng.LastTick.IsZero() {
		lastTick = eng.LastTick.Format("15:04:05")
	}
	supported := false
	if m.Service != nil {
		supported = m.Service.NotificationSupported()
	}
	return views.RenderServicePanel(views.ServicePanelData{
		Running:     eng.Running,
		State:       string(eng.State),
		Interval:    eng.Interval.String(),
		Ticks:       eng.Ticks,
		LastTick:    lastTick,
		LastOutcome: string(eng.LastOutcome),
		LastError:   eng.LastError,
		Enabled:     m.Snapshot.Config.Enabled,
		Window:      fmt.Sprintf("%02d-%02d", m.Snapshot.Config.ReminderStartHour, m.Snapshot.Config.ReminderEndHour),
		Supported:   supported,
	})
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	plain := make([]string, 0, len(m.keyBindings()))
	for _, kb := range m.keyBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	helpView := m.helpModel.View(helpKeyMap{
		short: bindings,
		full:  [][]key.Binding{bindings},
	})
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: helpView + "\n\n" + views.RenderMarkdown(helpGuideMarkdown),
	})
}

func (m Model) keyBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "j/k", Action: "move habit cursor"},
		{Key: m.Keys.Complete, Action: "complete selected habit"},
		{Key: m.Keys.Track, Action: "track a new habit"},
		{Key: "space", Action: "record activity check-in"},
		{Key: m.Keys.Toggle, Action: "toggle notifications"},
		{Key: m.Keys.Test, Action: "send test notification"},
		{Key: m.Keys.Refresh, Action: "refresh status"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit dashboard"},
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.keyBindings()))
	for _, kb := range m.keyBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}

func formatAgo(now, t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 48*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
