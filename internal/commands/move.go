package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func addMove(topLevel *cobra.Command) {
	var (
		projectRef string
		column     string
		inbox      bool
	)

	cmd := &cobra.Command{
		Use:   "move <task>",
		Short: "Move a task to another column, project or the inbox",
		Example: `
gtd move 3f2a --column "In Progress"
gtd move 3f2a --project Work --column "To Do"
gtd move 3f2a --inbox
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}
			task, err := resolveTask(s, args[0])
			if err != nil {
				return err
			}

			if inbox {
				if _, err := s.MoveTask(task.ID, nil, nil); err != nil {
					return err
				}
				fmt.Printf("moved %s to the inbox\n", task.Title)
				return nil
			}

			projectID := task.ProjectID
			if projectRef != "" {
				p, err := resolveProject(s, projectRef)
				if err != nil {
					return err
				}
				projectID = &p.ID
			}
			if projectID == nil {
				return errors.New("task is in the inbox, pick a project with --project")
			}
			p, ok := s.Project(*projectID)
			if !ok {
				return fmt.Errorf("no project %q", *projectID)
			}

			if column == "" {
				return errors.New("pick a destination with --column or --inbox")
			}
			var columnID *string
			for _, c := range p.Columns {
				if c.Name == column || c.ID == column {
					id := c.ID
					columnID = &id
					break
				}
			}
			if columnID == nil {
				return fmt.Errorf("project %s has no column %q", p.Name, column)
			}

			if _, err := s.MoveTask(task.ID, projectID, columnID); err != nil {
				return err
			}
			fmt.Printf("moved %s to %s / %s\n", task.Title, p.Name, column)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectRef, "project", "p", "", "destination project (default: current)")
	cmd.Flags().StringVarP(&column, "column", "c", "", "destination column name or id")
	cmd.Flags().BoolVar(&inbox, "inbox", false, "move the task to the inbox")

	topLevel.AddCommand(cmd)
}
