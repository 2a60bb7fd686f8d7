// Package commands wires the gtd command line interface: every subcommand
// loads the local store, applies one mutation or query, and prints the
// result. State lives under the user's data directory, independent from
// any gtdd server.
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"gtd/internal/models"
	"gtd/internal/store"
)

var dataDir string

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gtd",
		Short:         "Getting-things-done task tracking on the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default ~/.local/share/gtd/local)")

	addProjects(cmd)
	addAdd(cmd)
	addList(cmd)
	addToday(cmd)
	addMove(cmd)
	addDone(cmd)
	addRm(cmd)
	addTimer(cmd)
	addEntries(cmd)
	addSettings(cmd)

	return cmd
}

func loadStore() (*store.Store, error) {
	p, err := store.OpenDiskv(dataDir)
	if err != nil {
		return nil, err
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Logger()
	return store.Load(logger, p)
}

// resolveTask accepts a full task id, a unique id prefix, or an exact
// title match.
func resolveTask(s *store.Store, ref string) (*models.Task, error) {
	if t, ok := s.Task(ref); ok {
		return t, nil
	}

	var matches []models.Task
	for _, t := range s.Tasks() {
		if strings.HasPrefix(t.ID, ref) || t.Title == ref {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no task matches %q", ref)
	case 1:
		t := matches[0]
		return &t, nil
	default:
		return nil, fmt.Errorf("%q is ambiguous, %d tasks match", ref, len(matches))
	}
}

// resolveProject accepts a full project id, a unique id prefix, or an
// exact name match.
func resolveProject(s *store.Store, ref string) (*models.Project, error) {
	if p, ok := s.Project(ref); ok {
		return p, nil
	}

	var matches []models.Project
	for _, p := range s.Projects(true) {
		if strings.HasPrefix(p.ID, ref) || p.Name == ref {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no project matches %q", ref)
	case 1:
		p := matches[0]
		return &p, nil
	default:
		return nil, fmt.Errorf("%q is ambiguous, %d projects match", ref, len(matches))
	}
}

func columnName(p *models.Project, columnID *string) string {
	if p == nil || columnID == nil {
		return ""
	}
	for _, c := range p.Columns {
		if c.ID == *columnID {
			return c.Name
		}
	}
	return ""
}
