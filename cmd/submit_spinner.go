package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/artemis-companion-cli/internal/domain"
)

type submitPhaseMsg struct {
	phase domain.SubmissionPhase
}

type submitDoneMsg struct {
	result domain.SubmissionResult
}

type submitSpinnerModel struct {
	spinner spinner.Model
	phase   domain.SubmissionPhase
	run     tea.Cmd
	result  domain.SubmissionResult
	done    bool
}

func newSubmitSpinnerModel(run tea.Cmd) submitSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return submitSpinnerModel{
		spinner: s,
		phase:   domain.PhaseIdle,
		run:     run,
	}
}

func (m submitSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m submitSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case submitPhaseMsg:
		m.phase = msg.phase
		return m, nil
	case submitDoneMsg:
		m.done = true
		m.result = msg.result
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m submitSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), phaseLabel(m.phase))
}

func phaseLabel(phase domain.SubmissionPhase) string {
	switch phase {
	case domain.PhaseCheckingChanges:
		return "Checking for changes..."
	case domain.PhaseStaging:
		return "Staging changes..."
	case domain.PhaseCommitting:
		return "Committing..."
	case domain.PhaseSyncing:
		return "Syncing with remote..."
	case domain.PhasePushing:
		return "Pushing..."
	default:
		return "Preparing submission..."
	}
}

// runSubmitSpinner shows the phase of the running submission until it ends.
// The observer is called from the submission goroutine.
func runSubmitSpinner(ctx context.Context, output io.Writer, submit func(context.Context, func(domain.SubmissionPhase)) domain.SubmissionResult) (domain.SubmissionResult, error) {
	var p *tea.Program

	submitCmd := func() tea.Msg {
		return submitDoneMsg{result: submit(ctx, func(phase domain.SubmissionPhase) {
			p.Send(submitPhaseMsg{phase: phase})
		})}
	}

	p = tea.NewProgram(
		newSubmitSpinnerModel(submitCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return domain.SubmissionResult{}, err
	}

	result, ok := finalModel.(submitSpinnerModel)
	if !ok {
		return domain.SubmissionResult{}, fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.result, nil
}
