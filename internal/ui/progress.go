package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"ssc/internal/driver"
)

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	width   int
	done    bool
}

type fileItem struct {
	path   string
	status string
	stage  driver.Stage
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders per-file check
// progress. files are matched against driver.Event.File; the model quits when
// events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: "queued", stage: driver.StageLoad})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	case progress.FrameMsg:
		next, cmd := m.prog.Update(msg)
		m.prog = next.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	checked, failed := m.counts()
	header := fmt.Sprintf("%s %d/%d", m.title, checked, len(m.items))
	if failed > 0 {
		header += fmt.Sprintf(", %d failed", failed)
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-16, 20)
	for _, item := range m.items {
		status := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(item.path, nameWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	if label := statusLabel(ev.Stage, ev.Status); label != "" {
		m.items[idx].status = label
		m.items[idx].stage = ev.Stage
	}
	return m.prog.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := 0.0
	for _, item := range m.items {
		if finished(item.status) {
			total++
			continue
		}
		total += progressFromStage(item.stage)
	}
	return total / float64(len(m.items))
}

func (m *progressModel) counts() (checked, failed int) {
	for _, item := range m.items {
		if finished(item.status) {
			checked++
		}
		if item.status == "error" {
			failed++
		}
	}
	return checked, failed
}

func finished(status string) bool {
	return status == "ok" || status == "error" || status == "cached"
}

func progressFromStage(stage driver.Stage) float64 {
	switch stage {
	case driver.StageParse:
		return 0.3
	case driver.StageCheck:
		return 0.6
	default:
		return 0
	}
}

func statusLabel(stage driver.Stage, status driver.Status) string {
	switch status {
	case driver.StatusQueued:
		return "queued"
	case driver.StatusDone:
		return "ok"
	case driver.StatusError:
		return "error"
	case driver.StatusCached:
		return "cached"
	case driver.StatusWorking:
		switch stage {
		case driver.StageParse:
			return "parsing"
		case driver.StageCheck:
			return "checking"
		default:
			return "loading"
		}
	default:
		return ""
	}
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "ok":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "cached":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "loading", "parsing", "checking":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

// truncate clips value to width terminal cells.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	return runewidth.Truncate(value, width, "…")
}
