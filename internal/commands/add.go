package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gtd/internal/store"
)

func addAdd(topLevel *cobra.Command) {
	var (
		projectRef string
		column     string
		due        string
		scheduled  string
		energy     string
		estimate   int
		tags       []string
		today      bool
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Capture a task, into a project column or the inbox",
		Example: `
gtd add "call the bank"
gtd add "write report" --project Work --column "To Do" --due 2026-09-01 --today
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a task title")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}

			draft := store.TaskDraft{
				Title:       strings.Join(args, " "),
				ContextTags: tags,
				InToday:     today,
			}
			if due != "" {
				draft.DueDate = &due
			}
			if scheduled != "" {
				draft.ScheduledDate = &scheduled
			}
			if energy != "" {
				draft.EnergyLevel = &energy
			}
			if estimate > 0 {
				draft.TimeEstimate = &estimate
			}

			if projectRef != "" {
				p, err := resolveProject(s, projectRef)
				if err != nil {
					return err
				}
				draft.ProjectID = &p.ID
				if column != "" {
					found := false
					for _, c := range p.Columns {
						if c.Name == column || c.ID == column {
							id := c.ID
							draft.ColumnID = &id
							found = true
							break
						}
					}
					if !found {
						return fmt.Errorf("project %s has no column %q", p.Name, column)
					}
				} else if len(p.Columns) > 0 {
					id := p.Columns[0].ID
					draft.ColumnID = &id
				}
			}

			task, err := s.AddTask(draft)
			if err != nil {
				return err
			}
			fmt.Printf("added %s (%s)\n", task.Title, shortID(task.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectRef, "project", "p", "", "project name or id (default: inbox)")
	cmd.Flags().StringVarP(&column, "column", "c", "", "column name or id (default: first column)")
	cmd.Flags().StringVar(&due, "due", "", "due date, YYYY-MM-DD")
	cmd.Flags().StringVar(&scheduled, "scheduled", "", "scheduled date, YYYY-MM-DD")
	cmd.Flags().StringVar(&energy, "energy", "", "energy level: low, medium or high")
	cmd.Flags().IntVar(&estimate, "estimate", 0, "time estimate in minutes")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "context tag, repeatable")
	cmd.Flags().BoolVar(&today, "today", false, "pin the task into today")

	topLevel.AddCommand(cmd)
}
