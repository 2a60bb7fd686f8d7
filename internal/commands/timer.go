package commands

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func addTimer(topLevel *cobra.Command) {
	addStart(topLevel)
	addStop(topLevel)
	addTimerStatus(topLevel)
}

func addStart(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "start <task>",
		Short: "Start tracking time on a task",
		Long:  "Start tracking time on a task. A timer already running on another task is stopped and recorded first; only one timer runs at a time.",
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
			if _, err := s.StartTimer(task.ID); err != nil {
				return err
			}
			fmt.Printf("%s timing %s\n", color.YellowString("▶"), task.Title)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addStop(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer and record the interval",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}
			entry, err := s.StopTimer()
			if err != nil {
				return err
			}
			elapsed := int64(0)
			if entry.Duration != nil {
				elapsed = *entry.Duration
			}
			fmt.Printf("%s recorded %s\n", color.YellowString("■"), formatDuration(elapsed))
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addTimerStatus(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Show the running timer, if any",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}
			active := s.ActiveTimer()
			if active == nil {
				printNone("running timer")
				return nil
			}
			title := ""
			if active.TaskID != nil {
				if task, ok := s.Task(*active.TaskID); ok {
					title = task.Title
				}
			}
			elapsed := time.Since(active.StartTime).Milliseconds()
			fmt.Printf("%s %s for %s\n", color.YellowString("▶"), title, formatDuration(elapsed))
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}
