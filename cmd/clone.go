package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/artemis-companion-cli/internal/application"
	"github.com/bnema/artemis-companion-cli/internal/domain"
	"github.com/bnema/artemis-companion-cli/internal/ports"
)

func newCloneCmd(app *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "clone <exercise-id>",
		Short: "Clone the repository of an exercise participation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			directory, err := app.cloneDirectory(dir)
			if err != nil {
				return err
			}

			platform, err := app.platformClient()
			if err != nil {
				return err
			}
			exercise, err := findParticipatedExercise(cmd.Context(), platform, domain.ExerciseID(id))
			if err != nil {
				return err
			}

			cloner, err := app.cloneService()
			if err != nil {
				return err
			}
			repo, err := cloner.Clone(cmd.Context(), application.CloneRequest{
				ParticipationID: exercise.Participations[0].ID,
				RepositoryURI:   exercise.Participations[0].RepositoryURI,
				ExerciseID:      exercise.ID,
				ExerciseTitle:   exercise.Title,
				Directory:       directory,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "cloned %q into %s\n", repo.Title, repo.Path)
			return err
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Parent folder for the clone (defaults to clone.directory or the working directory)")

	return cmd
}

func findParticipatedExercise(ctx context.Context, platform ports.PlatformClient, id domain.ExerciseID) (domain.CourseExercise, error) {
	courses, err := platform.Courses(ctx)
	if err != nil {
		return domain.CourseExercise{}, fmt.Errorf("load courses: %w", err)
	}

	for _, course := range courses {
		for _, exercise := range course.Exercises {
			if exercise.ID != id {
				continue
			}
			if exercise.FirstRepositoryURI() == "" {
				return domain.CourseExercise{}, fmt.Errorf("exercise %d has no repository; start the exercise on the server first", id)
			}
			return exercise, nil
		}
	}

	return domain.CourseExercise{}, fmt.Errorf("clone exercise %d: %w", id, domain.ErrExerciseNotFound)
}
