package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	statusadapter "github.com/bnema/artemis-companion-cli/internal/adapters/render/status"
	"github.com/bnema/artemis-companion-cli/internal/application"
	"github.com/bnema/artemis-companion-cli/internal/domain"
)

func newContextCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Inspect and change the chat context",
	}

	cmd.AddCommand(
		newContextShowCmd(app),
		newContextSelectCmd(app),
		newContextTrackCmd(app),
		newContextModeCmd(app),
		newContextClearCmd(app),
		newContextClearHistoryCmd(app),
	)

	return cmd
}

type contextView struct {
	Mode      domain.SelectionMode  `json:"mode"`
	Context   *contextJSON          `json:"context,omitempty"`
	Exercises []trackedExerciseJSON `json:"exercises"`
	Courses   []trackedCourseJSON   `json:"courses"`
}

type contextJSON struct {
	Type      domain.ContextType `json:"type"`
	ID        int64              `json:"id"`
	Title     string             `json:"title"`
	Reason    string             `json:"reason"`
	Timestamp time.Time          `json:"timestamp"`
}

type trackedExerciseJSON struct {
	ID              domain.ExerciseID `json:"id"`
	Title           string            `json:"title"`
	ShortName       string            `json:"shortName,omitempty"`
	DueDate         *time.Time        `json:"dueDate,omitempty"`
	LastViewed      *time.Time        `json:"lastViewed,omitempty"`
	CompletionScore *float64          `json:"completionScore,omitempty"`
	Workspace       bool              `json:"workspace"`
	Priority        float64           `json:"priority"`
}

type trackedCourseJSON struct {
	ID         domain.CourseID `json:"id"`
	Title      string          `json:"title"`
	ShortName  string          `json:"shortName,omitempty"`
	LastViewed *time.Time      `json:"lastViewed,omitempty"`
	Priority   float64         `json:"priority"`
}

func newContextShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the context and the tracked exercises and courses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			workbench, err := app.openWorkbench(cmd.Context())
			if err != nil {
				return err
			}
			return writeOverview(cmd, app, overviewOf(workbench.Tracker(), nil), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON output")

	return cmd
}

func overviewOf(tracker *application.Tracker, connection *domain.ConnectionStatus) statusadapter.Overview {
	overview := statusadapter.Overview{
		Mode:       tracker.Mode(),
		Exercises:  tracker.Exercises(),
		Courses:    tracker.Courses(),
		Connection: connection,
	}
	if selected, ok := tracker.Context(); ok {
		overview.Context = &selected
	}
	for _, exercise := range overview.Exercises {
		if exercise.IsWorkspace() {
			overview.WorkspaceTracked = true
			break
		}
	}
	return overview
}

func writeOverview(cmd *cobra.Command, app *app, overview statusadapter.Overview, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(contextViewOf(overview, app.now()))
	}

	rendered, err := app.statusRenderer(overview, statusadapter.RenderOptions{Now: app.now()})
	if err != nil {
		return fmt.Errorf("render context: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func contextViewOf(overview statusadapter.Overview, now time.Time) contextView {
	view := contextView{
		Mode:      overview.Mode,
		Exercises: make([]trackedExerciseJSON, 0, len(overview.Exercises)),
		Courses:   make([]trackedCourseJSON, 0, len(overview.Courses)),
	}
	if overview.Context != nil {
		view.Context = &contextJSON{
			Type:      overview.Context.Type,
			ID:        overview.Context.ID,
			Title:     overview.Context.Title,
			Reason:    overview.Context.Reason,
			Timestamp: overview.Context.Timestamp,
		}
	}
	for _, e := range overview.Exercises {
		view.Exercises = append(view.Exercises, trackedExerciseJSON{
			ID:              e.ID,
			Title:           e.DisplayTitle(),
			ShortName:       e.ShortName,
			DueDate:         e.DueDate,
			LastViewed:      e.LastViewed,
			CompletionScore: e.CompletionScore,
			Workspace:       e.IsWorkspace(),
			Priority:        domain.ExercisePriority(e, now),
		})
	}
	for _, c := range overview.Courses {
		view.Courses = append(view.Courses, trackedCourseJSON{
			ID:         c.ID,
			Title:      c.Title,
			ShortName:  c.ShortName,
			LastViewed: c.LastViewed,
			Priority:   domain.CoursePriority(c, overview.WorkspaceTracked, now),
		})
	}
	return view
}

func newContextSelectCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "select <exercise|course|tutor> [id]",
		Short: "Select the chat context explicitly",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseContextType(args[0])
			if err != nil {
				return err
			}

			var id int64
			if kind != domain.ContextTutor {
				if len(args) != 2 {
					return fmt.Errorf("select %s: id is required", kind)
				}
				id, err = parseID(args[1])
				if err != nil {
					return err
				}
			}

			var selected domain.ChatContext
			if err := app.withWorkbench(cmd.Context(), func(workbench *application.Workbench) error {
				selected, err = workbench.Select(cmd.Context(), kind, id)
				return err
			}); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "context: %s %q\n", selected.Type, selected.Title)
			return err
		},
	}
}

func newContextTrackCmd(app *app) *cobra.Command {
	var (
		title     string
		shortName string
		due       string
		score     float64
	)

	cmd := &cobra.Command{
		Use:   "track <exercise|course> <id>",
		Short: "Record that an exercise or course was viewed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseContextType(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}

			return app.withWorkbench(cmd.Context(), func(workbench *application.Workbench) error {
				switch kind {
				case domain.ContextExercise:
					exercise := domain.TrackedExercise{ID: domain.ExerciseID(id), Title: title, ShortName: shortName}
					if identity, ok := workbench.Registry().FindByID(exercise.ID); ok && exercise.Title == "" {
						exercise.Title = identity.Title
					}
					if due != "" {
						dueDate, err := time.Parse(time.RFC3339, due)
						if err != nil {
							return fmt.Errorf("parse --due: %w", err)
						}
						exercise.DueDate = &dueDate
					}
					if cmd.Flags().Changed("score") {
						exercise.CompletionScore = &score
					}
					return workbench.TrackExercise(cmd.Context(), exercise)
				case domain.ContextCourse:
					return workbench.TrackCourse(cmd.Context(), domain.TrackedCourse{ID: domain.CourseID(id), Title: title, ShortName: shortName})
				default:
					return fmt.Errorf("track: unsupported type %q", kind)
				}
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title to record")
	cmd.Flags().StringVar(&shortName, "short-name", "", "Short name to record")
	cmd.Flags().StringVar(&due, "due", "", "Due date (RFC 3339)")
	cmd.Flags().Float64Var(&score, "score", 0, "Completion score in percent")

	return cmd
}

func newContextModeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mode <auto|manual>",
		Short: "Switch between automatic and manual context selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := domain.ParseSelectionMode(args[0])
			if err != nil {
				return err
			}
			if err := app.withWorkbench(cmd.Context(), func(workbench *application.Workbench) error {
				return workbench.SetSelectionMode(cmd.Context(), mode)
			}); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "selection mode: %s\n", mode)
			return err
		},
	}
}

func newContextClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the chat context",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.withWorkbench(cmd.Context(), func(workbench *application.Workbench) error {
				return workbench.ClearContext(cmd.Context())
			})
		},
	}
}

func newContextClearHistoryCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-history",
		Short: "Forget tracked exercises, courses and the context",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.withWorkbench(cmd.Context(), func(workbench *application.Workbench) error {
				return workbench.ClearHistory(cmd.Context())
			})
		},
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
