package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/artemis-companion-cli/internal/domain"
)

const dueWindow = 7 * 24 * time.Hour

// Overview is everything `ac context show` prints. Exercises and courses are
// expected in priority order.
type Overview struct {
	Context          *domain.ChatContext
	Mode             domain.SelectionMode
	Exercises        []domain.TrackedExercise
	Courses          []domain.TrackedCourse
	WorkspaceTracked bool
	Connection       *domain.ConnectionStatus
}

type RenderOptions struct {
	Now time.Time
}

func renderView(o Overview, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Artemis Companion"),
		s.header.Render(fmt.Sprintf("mode: %s  exercises: %d  courses: %d", modeLabel(o.Mode), len(o.Exercises), len(o.Courses))),
		contextLine(o.Context, s),
	}

	if o.Connection != nil {
		lines = append(lines, connectionLine(*o.Connection, s))
	}

	if len(o.Exercises) == 0 && len(o.Courses) == 0 {
		lines = append(lines, s.section.Render(s.empty.Render("Nothing tracked yet. Open an exercise or run `ac sync`.")))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	if len(o.Exercises) > 0 {
		block := []string{s.header.Render("Exercises")}
		for _, exercise := range o.Exercises {
			block = append(block, renderExercise(exercise, o.Context, opts, s))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, block...)))
	}

	if len(o.Courses) > 0 {
		block := []string{s.header.Render("Courses")}
		for _, course := range o.Courses {
			block = append(block, renderCourse(course, o.Context, o.WorkspaceTracked, opts, s))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, block...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func modeLabel(mode domain.SelectionMode) string {
	if mode == "" {
		return string(domain.SelectionAuto)
	}
	return string(mode)
}

func contextLine(ctx *domain.ChatContext, s styles) string {
	if ctx == nil {
		return s.detail.Render("context: none")
	}
	return s.detail.Render(fmt.Sprintf("context: %s %q (%s)", ctx.Type, domain.StripWorkspaceMarker(ctx.Title), ctx.Reason))
}

func connectionLine(status domain.ConnectionStatus, s styles) string {
	if status.Connected {
		return s.ok.Render("realtime: connected")
	}

	line := fmt.Sprintf("realtime: disconnected (%d reconnect attempts)", status.Attempts)
	if status.LastError != nil {
		line += ": " + status.LastError.Error()
	}
	return s.warning.Render(line)
}

func isSelected(ctx *domain.ChatContext, kind domain.ContextType, id int64) bool {
	return ctx != nil && ctx.Type == kind && ctx.ID == id
}

func renderExercise(e domain.TrackedExercise, ctx *domain.ChatContext, opts RenderOptions, s styles) string {
	marker := "  "
	title := s.exercise.Render(e.DisplayTitle())
	if isSelected(ctx, domain.ContextExercise, int64(e.ID)) {
		marker = s.selected.Render("> ")
		title = s.selected.Render(e.DisplayTitle())
	}

	parts := []string{marker, title}
	if e.IsWorkspace() {
		parts = append(parts, " ", s.workspace.Render("[workspace]"))
	}
	if !opts.Now.IsZero() {
		parts = append(parts, " ", s.score.Render(fmt.Sprintf("priority %.2f", domain.ExercisePriority(e, opts.Now))))
	}

	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, parts...)}
	if e.DueDate != nil {
		lines = append(lines, "    "+dueLine(*e.DueDate, opts.Now, s))
	}
	if e.CompletionScore != nil {
		lines = append(lines, "    "+s.detail.Render(fmt.Sprintf("score: %.0f%%", *e.CompletionScore)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderCourse(c domain.TrackedCourse, ctx *domain.ChatContext, workspaceTracked bool, opts RenderOptions, s styles) string {
	marker := "  "
	title := s.course.Render(c.Title)
	if isSelected(ctx, domain.ContextCourse, int64(c.ID)) {
		marker = s.selected.Render("> ")
		title = s.selected.Render(c.Title)
	}

	parts := []string{marker, title}
	if !opts.Now.IsZero() {
		parts = append(parts, " ", s.score.Render(fmt.Sprintf("priority %.2f", domain.CoursePriority(c, workspaceTracked, opts.Now))))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func dueLine(due, now time.Time, s styles) string {
	if now.IsZero() {
		return s.detail.Render("due " + formatDueAt(due, now))
	}

	remaining := due.Sub(now)
	color := dueColor(remaining)
	label := lipgloss.NewStyle().Foreground(color).Render(formatDueRelative(due, now))

	return lipgloss.JoinHorizontal(lipgloss.Top, renderCountdownBar(remaining, 14, s), " ", label)
}

// renderCountdownBar fills in proportion to the time left in the final week.
func renderCountdownBar(remaining time.Duration, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	fraction := remaining.Seconds() / dueWindow.Seconds()
	filled := int(math.Round(float64(width) * math.Max(0, math.Min(1, fraction))))
	empty := width - filled

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", empty)),
		s.barBracket.Render("]"),
	)
}

func formatDueAt(due, now time.Time) string {
	if now.IsZero() {
		return due.Format(time.RFC3339)
	}

	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := due.Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return due.Format("15:04")
	}

	return due.Format("15:04 on 02 Jan")
}

func formatDueRelative(due, now time.Time) string {
	if !due.After(now) {
		return "overdue since " + formatDueAt(due, now)
	}

	remaining := due.Sub(now)
	if remaining < 24*time.Hour {
		hours := max(int(math.Ceil(remaining.Hours())), 1)
		suffix := "hours"
		if hours == 1 {
			suffix = "hour"
		}
		return fmt.Sprintf("due in %d %s (%s)", hours, suffix, due.Format("15:04"))
	}

	days := max(int(math.Ceil(remaining.Hours()/24)), 1)
	suffix := "days"
	if days == 1 {
		suffix = "day"
	}

	return fmt.Sprintf("due in %d %s (%s)", days, suffix, due.Format("15:04 on 02 Jan"))
}

// dueColor goes from grey a week out to red at the deadline.
func dueColor(remaining time.Duration) lipgloss.Color {
	switch {
	case remaining <= 0:
		return lipgloss.Color("203")
	case remaining < 24*time.Hour:
		return lipgloss.Color("209")
	case remaining < 3*24*time.Hour:
		return lipgloss.Color("221")
	case remaining < dueWindow:
		return lipgloss.Color("252")
	default:
		return lipgloss.Color("245")
	}
}
