package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func addDone(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "done <task>",
		Short: "Complete a task, moving it to its board's done column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}
			task, err := resolveTask(s, args[0])
			if err != nil {
				return err
			}
			completed, err := s.CompleteTask(task.ID)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", color.GreenString("✔"), completed.Title)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addRm(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "rm <task>",
		Short: "Delete a task outright",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}
			task, err := resolveTask(s, args[0])
			if err != nil {
				return err
			}
			if err := s.DeleteTask(task.ID); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", task.Title)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}
