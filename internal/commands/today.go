package commands

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func addToday(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's working set",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}

			today := s.Today(time.Now())
			printTitle("Today")
			printTasks(s, today.Visible)

			if len(today.Overflow) > 0 {
				faint := color.New(color.Faint)
				_, _ = faint.Fprintf(color.Output, "and %d more over the daily limit of %d\n",
					len(today.Overflow), s.Settings().TodayTaskLimit)
			}
			return nil
		},
	}

	addTodayPin(cmd)
	addTodayUnpin(cmd)

	topLevel.AddCommand(cmd)
}

func addTodayPin(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add <task>",
		Short: "Pin a task into today",
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
			if _, err := s.AddToToday(task.ID); err != nil {
				return err
			}
			fmt.Printf("pinned %s into today\n", task.Title)
			return nil
		},
	}
	parent.AddCommand(cmd)
}

func addTodayUnpin(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "rm <task>",
		Short: "Unpin a task from today",
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
			if _, err := s.RemoveFromToday(task.ID); err != nil {
				return err
			}
			fmt.Printf("unpinned %s from today\n", task.Title)
			return nil
		},
	}
	parent.AddCommand(cmd)
}
