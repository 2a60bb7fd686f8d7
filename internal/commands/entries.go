package commands

import (
	"github.com/spf13/cobra"

	"gtd/internal/models"
)

func addEntries(topLevel *cobra.Command) {
	var (
		taskRef    string
		projectRef string
		limit      int
	)

	cmd := &cobra.Command{
		Use:     "log",
		Aliases: []string{"entries"},
		Short:   "Show recorded time entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}

			entries := s.TimeEntries()
			if taskRef != "" {
				task, err := resolveTask(s, taskRef)
				if err != nil {
					return err
				}
				entries = filterEntries(entries, func(e models.TimeEntry) bool {
					return e.TaskID != nil && *e.TaskID == task.ID
				})
			}
			if projectRef != "" {
				p, err := resolveProject(s, projectRef)
				if err != nil {
					return err
				}
				entries = filterEntries(entries, func(e models.TimeEntry) bool {
					return e.ProjectID != nil && *e.ProjectID == p.ID
				})
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}

			printTitle("Time log")
			printTimeEntries(s, entries)
			return nil
		},
	}

	cmd.Flags().StringVarP(&taskRef, "task", "t", "", "only entries for this task")
	cmd.Flags().StringVarP(&projectRef, "project", "p", "", "only entries for this project")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "max entries shown, 0 for all")

	topLevel.AddCommand(cmd)
}

func filterEntries(entries []models.TimeEntry, keep func(models.TimeEntry) bool) []models.TimeEntry {
	out := entries[:0:0]
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
