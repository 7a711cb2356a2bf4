package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/reciteapp/recite-api/internal/domain/grading"
	"github.com/reciteapp/recite-api/internal/study"
)

// snapshotMsg delivers a session snapshot to the TUI.
type snapshotMsg struct {
	snap study.Snapshot
}

const narrationLines = 6

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	questionStyle  = lipgloss.NewStyle().Bold(true)
	narrationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	reviewStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	inputStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// model is the bubbletea model for a study session. The session runs on its
// own goroutines; the model renders snapshots and posts user intents back.
type model struct {
	setName string
	session *study.Session
	capture *typedCapture

	snap      study.Snapshot
	narration []string
	input     string
	chimed    bool
	quitting  bool
}

func newModel(setName string, capture *typedCapture) *model {
	return &model{
		setName: setName,
		capture: capture,
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snap = msg.snap
		if m.snap.State != study.StateListening {
			m.chimed = false
		}
		if m.snap.State == study.StateClosed {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case narrationMsg:
		m.narration = append(m.narration, msg.text)
		if len(m.narration) > narrationLines {
			m.narration = m.narration[len(m.narration)-narrationLines:]
		}
		return m, nil

	case chimeMsg:
		m.chimed = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		m.session.Close()
		return m, tea.Quit

	case tea.KeyEnter:
		switch m.snap.State {
		case study.StateGate:
			_ = m.session.Unlock()
		case study.StateListening:
			m.capture.submit(m.input)
			m.input = ""
		}
		return m, nil

	case tea.KeyBackspace:
		if m.snap.State == study.StateListening && len(m.input) > 0 {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
		return m, nil

	case tea.KeyRunes, tea.KeySpace:
		if m.snap.State == study.StateListening {
			m.input += string(msg.Runes)
			if msg.Type == tea.KeySpace {
				m.input += " "
			}
			return m, nil
		}
	}

	switch strings.ToLower(msg.String()) {
	case "y":
		if m.snap.State == study.StateReview {
			m.session.ConfirmCorrect()
		}
	case "n":
		if m.snap.State == study.StateReview {
			m.session.ConfirmIncorrect()
		}
	case "r":
		if m.snap.State == study.StateSummary {
			_ = m.session.Retry()
		}
	case "q":
		if m.snap.State != study.StateListening {
			m.quitting = true
			m.session.Close()
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Recite: "+m.setName) + "\n")
	b.WriteString(m.statusLine() + "\n\n")

	for _, line := range m.narration {
		b.WriteString(narrationStyle.Render(line) + "\n")
	}
	if len(m.narration) > 0 {
		b.WriteString("\n")
	}

	switch m.snap.State {
	case study.StateGate:
		b.WriteString("Press enter to start studying.\n")

	case study.StateQuestion:
		b.WriteString(questionStyle.Render(m.snap.Question) + "\n")

	case study.StateListening:
		b.WriteString(questionStyle.Render(m.snap.Question) + "\n")
		prompt := "> "
		if m.chimed {
			prompt = "♪ > "
		}
		b.WriteString(inputStyle.Render(prompt+m.input) + "\n")
		b.WriteString(helpStyle.Render("type your answer and press enter (empty for \"I don't know\")") + "\n")

	case study.StateReview:
		b.WriteString(questionStyle.Render(m.snap.Question) + "\n")
		answer := m.snap.Transcript
		if strings.TrimSpace(answer) == "" {
			answer = "(no answer)"
		}
		b.WriteString("Your answer: " + answer + "\n")
		if m.snap.Verdict != nil {
			b.WriteString(fmt.Sprintf("Closest match: %s (score %.2f)\n",
				m.snap.Verdict.MatchedVariant, m.snap.Verdict.Score))
		}
		b.WriteString(reviewStyle.Render("Count as correct? (y/n)") + "\n")

	case study.StateResult:
		if m.snap.Verdict != nil && m.snap.Verdict.Kind == grading.AutoCorrect {
			b.WriteString(correctStyle.Render("Correct!") + "\n")
		}

	case study.StateSummary:
		b.WriteString(titleStyle.Render("Session complete") + "\n")
		b.WriteString(correctStyle.Render(fmt.Sprintf("  correct:   %d", m.snap.CorrectCount)) + "\n")
		b.WriteString(incorrectStyle.Render(fmt.Sprintf("  incorrect: %d", m.snap.IncorrectCount)) + "\n")
		b.WriteString(fmt.Sprintf("  total:     %d\n", m.snap.TotalCards))
		b.WriteString(helpStyle.Render("r to retry, q to quit") + "\n")

	case study.StateBreak:
		b.WriteString(titleStyle.Render("Break time") + "\n")
		b.WriteString(fmt.Sprintf("Back in %ds. Step away from the screen.\n", m.snap.BreakRemaining))
		b.WriteString(helpStyle.Render("q to leave the session") + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("esc to quit") + "\n")
	return b.String()
}

// statusLine renders progress and running counts.
func (m *model) statusLine() string {
	correct := correctStyle.Render(fmt.Sprintf("✓%d", m.snap.CorrectCount))
	incorrect := incorrectStyle.Render(fmt.Sprintf("✗%d", m.snap.IncorrectCount))
	card := m.snap.CardIndex + 1
	if card > m.snap.TotalCards {
		card = m.snap.TotalCards
	}
	return fmt.Sprintf("card %d/%d  %s %s  [%s]",
		card, m.snap.TotalCards, correct, incorrect, m.snap.State)
}
