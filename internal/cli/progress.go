package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/pydocs/pkg/integrations"
)

const barWidth = 30

// runProgress is an integrations.Progress that must be closed after the run.
type runProgress interface {
	integrations.Progress
	Close()
}

// newProgress returns an animated progress bar when w is a terminal and a
// no-op otherwise.
func newProgress(w io.Writer) runProgress {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return newTeaProgress(w)
	}
	return noopProgress{}
}

type noopProgress struct{ integrations.NoopProgress }

func (noopProgress) Close() {}

// Messages driving progressModel.
type (
	startMsg struct {
		label string
		total int
	}
	stepMsg   struct{}
	finishMsg struct{}
	quitMsg   struct{}
)

// progressModel renders "label [=====     ] n/total".
type progressModel struct {
	label  string
	total  int
	done   int
	active bool
}

func (m progressModel) Init() tea.Cmd { return nil }

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		m.label, m.total, m.done, m.active = msg.label, msg.total, 0, true
	case stepMsg:
		if m.active && m.done < m.total {
			m.done++
		}
	case finishMsg:
		m.active = false
	case quitMsg:
		m.active = false
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m progressModel) View() string {
	if !m.active || m.total <= 0 {
		return ""
	}
	filled := m.done * barWidth / m.total
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled)
	return fmt.Sprintf("%s %s %s\n",
		StyleDim.Render(m.label),
		styleBar.Render("["+bar+"]"),
		StyleValue.Render(fmt.Sprintf("%d/%d", m.done, m.total)))
}

// teaProgress forwards progress events to a bubbletea program.
type teaProgress struct {
	program *tea.Program
	done    chan struct{}
	once    sync.Once
}

func newTeaProgress(w io.Writer) *teaProgress {
	p := &teaProgress{
		program: tea.NewProgram(progressModel{}, tea.WithOutput(w), tea.WithInput(nil)),
		done:    make(chan struct{}),
	}
	go func() {
		defer close(p.done)
		_, _ = p.program.Run()
	}()
	return p
}

func (p *teaProgress) Start(label string, total int) {
	p.program.Send(startMsg{label: label, total: total})
}

func (p *teaProgress) Step() { p.program.Send(stepMsg{}) }

func (p *teaProgress) Finish() { p.program.Send(finishMsg{}) }

// Close stops the program and waits for it to restore the terminal.
func (p *teaProgress) Close() {
	p.once.Do(func() {
		p.program.Send(quitMsg{})
		<-p.done
	})
}
