package viz

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type tickMsg time.Time

type progressMsg struct {
	done, total int
}

type finishedMsg struct {
	err error
}

type progressModel struct {
	title   string
	done    int
	total   int
	frame   int
	start   time.Time
	cancel  context.CancelFunc
	aborted bool
	err     error
	final   bool
}

func newProgressModel(title string, cancel context.CancelFunc) progressModel {
	return progressModel{title: title, cancel: cancel, start: time.Now()}
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m progressModel) Init() tea.Cmd { return tick() }

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.aborted = true
			m.cancel()
			return m, nil
		}
	case tickMsg:
		m.frame++
		return m, tick()
	case progressMsg:
		// Workers report out of order; keep the furthest.
		if msg.done > m.done {
			m.done = msg.done
		}
		m.total = msg.total
	case finishedMsg:
		m.err = msg.err
		m.final = true
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

func (m progressModel) View() string {
	elapsed := time.Since(m.start).Round(100 * time.Millisecond)
	if m.final {
		status := SparkHigh.Render("done")
		if m.err != nil {
			status = SparkLow.Render("failed")
		}
		return fmt.Sprintf("%s %s (%s)\n", m.title, status, elapsed)
	}
	if m.aborted {
		return fmt.Sprintf("%s %s\n", m.title, SparkMid.Render("canceling..."))
	}
	return fmt.Sprintf("%s %s %s %3.0f%% %s\n",
		AnimatedSpinner(m.frame), m.title, ProgressBar(m.percent(), 30), 100*m.percent(), Subtle.Render(elapsed.String()))
}

// RunProgress runs work while drawing a progress bar on out. work receives a
// context canceled when the user presses ctrl+c and a report function safe
// for concurrent use. It returns work's error.
func RunProgress(ctx context.Context, out io.Writer, title string, work func(ctx context.Context, report func(done, total int)) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newProgressModel(title, cancel), tea.WithOutput(out), tea.WithContext(ctx))

	result := make(chan error, 1)
	go func() {
		err := work(ctx, func(done, total int) {
			p.Send(progressMsg{done: done, total: total})
		})
		result <- err
		p.Send(finishedMsg{err: err})
	}()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		// The view failed. Stop the work, which can no longer report.
		cancel()
		<-result
		return err
	}
	return <-result
}
