package commands

import (
	"github.com/spf13/cobra"

	"gtd/internal/gtd"
	"gtd/internal/models"
	"gtd/internal/store"
)

func addList(topLevel *cobra.Command) {
	var (
		projectRef string
		inbox      bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks, all of them or one project's board",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}

			if inbox {
				printTitle("Inbox")
				printTasks(s, s.Bucket(gtd.Bucket{}))
				return nil
			}

			if projectRef != "" {
				p, err := resolveProject(s, projectRef)
				if err != nil {
					return err
				}
				printBoard(s, p)
				return nil
			}

			printTitle("Tasks")
			printTasks(s, s.Tasks())
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectRef, "project", "p", "", "show one project's board")
	cmd.Flags().BoolVar(&inbox, "inbox", false, "show only inbox tasks")

	topLevel.AddCommand(cmd)
}

// printBoard renders a project column by column, in column order.
func printBoard(s *store.Store, p *models.Project) {
	printTitle(p.Name)
	for _, c := range p.Columns {
		id := c.ID
		printTitle("  " + c.Name)
		printTasks(s, s.Bucket(gtd.Bucket{ProjectID: &p.ID, ColumnID: &id}))
	}
	loose := s.Bucket(gtd.Bucket{ProjectID: &p.ID})
	if len(loose) > 0 {
		printTitle("  (no column)")
		printTasks(s, loose)
	}
}
