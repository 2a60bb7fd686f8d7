package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gtd/internal/models"
	"gtd/internal/store"
)

func addProjects(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage projects and their columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}
			printTitle("Projects")
			printProjects(s, s.Projects(false))
			return nil
		},
	}

	addProjectAdd(cmd)
	addProjectRm(cmd)
	addProjectArchive(cmd)

	topLevel.AddCommand(cmd)
}

func addProjectAdd(parent *cobra.Command) {
	var description, projectColor string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project with the default kanban columns",
		Example: `
gtd projects add "Side Hustle" --color "#3b82f6"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a project name")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}
			draft := store.ProjectDraft{
				Name:  strings.Join(args, " "),
				Color: projectColor,
			}
			if description != "" {
				draft.Description = &description
			}
			p := s.AddProject(draft)
			fmt.Printf("created project %s (%s)\n", p.Name, shortID(p.ID))
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "project description")
	cmd.Flags().StringVar(&projectColor, "color", "", "accent color, e.g. #6366f1")

	parent.AddCommand(cmd)
}

func addProjectRm(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "rm <project>",
		Short: "Delete a project, moving its tasks to the inbox",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}
			p, err := resolveProject(s, args[0])
			if err != nil {
				return err
			}
			if err := s.DeleteProject(p.ID); err != nil {
				return err
			}
			fmt.Printf("deleted project %s, its tasks moved to the inbox\n", p.Name)
			return nil
		},
	}
	parent.AddCommand(cmd)
}

func addProjectArchive(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "archive <project>",
		Short: "Archive a project without touching its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}
			p, err := resolveProject(s, args[0])
			if err != nil {
				return err
			}
			archived := true
			if _, err := s.UpdateProject(p.ID, models.ProjectPatch{Archived: &archived}); err != nil {
				return err
			}
			fmt.Printf("archived project %s\n", p.Name)
			return nil
		},
	}
	parent.AddCommand(cmd)
}
