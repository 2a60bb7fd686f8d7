package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"gtd/internal/models"
	"gtd/internal/store"
)

func printTitle(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(color.Output, title)
}

func printNone(what string) {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintf(color.Output, " no %s\n", what)
}

func taskGlyph(t models.Task) string {
	switch {
	case t.Completed():
		return color.GreenString("✔")
	case t.InToday:
		return color.YellowString("★")
	default:
		return "·"
	}
}

func printTasks(s *store.Store, tasks []models.Task) {
	if len(tasks) == 0 {
		printNone("tasks")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 50

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	tbl.AddRow("", faint.Sprint("id"), bold.Sprint("title"), bold.Sprint("project"), bold.Sprint("column"), bold.Sprint("due"), bold.Sprint("est"))

	for _, t := range tasks {
		var projectName, colName string
		if t.ProjectID != nil {
			if p, ok := s.Project(*t.ProjectID); ok {
				projectName = p.Name
				colName = columnName(p, t.ColumnID)
			}
		}
		est := ""
		if t.TimeEstimate != nil {
			est = formatEstimate(*t.TimeEstimate)
		}
		tbl.AddRow(taskGlyph(t), faint.Sprint(shortID(t.ID)), t.Title, projectName, colName, formatDay(t.DueDate), est)
	}

	_, _ = fmt.Fprintln(color.Output, tbl)
}

func printProjects(s *store.Store, projects []models.Project) {
	if len(projects) == 0 {
		printNone("projects")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	tbl.AddRow(faint.Sprint("id"), bold.Sprint("name"), bold.Sprint("columns"), bold.Sprint("open tasks"))

	for _, p := range projects {
		open := 0
		for _, t := range s.Tasks() {
			if t.ProjectID != nil && *t.ProjectID == p.ID && !t.Completed() {
				open++
			}
		}
		names := make([]string, 0, len(p.Columns))
		for _, c := range p.Columns {
			names = append(names, c.Name)
		}
		name := p.Name
		if p.Archived {
			name = faint.Sprintf("%s (archived)", p.Name)
		}
		tbl.AddRow(faint.Sprint(shortID(p.ID)), name, strings.Join(names, " | "), open)
	}

	_, _ = fmt.Fprintln(color.Output, tbl)
}

func printTimeEntries(s *store.Store, entries []models.TimeEntry) {
	if len(entries) == 0 {
		printNone("time entries")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	tbl.AddRow(bold.Sprint("started"), bold.Sprint("duration"), bold.Sprint("task"), bold.Sprint("notes"))

	for _, e := range entries {
		taskTitle := ""
		if e.TaskID != nil {
			if t, ok := s.Task(*e.TaskID); ok {
				taskTitle = t.Title
			} else {
				taskTitle = faint.Sprint(shortID(*e.TaskID))
			}
		}
		duration := color.YellowString("running")
		if e.Duration != nil {
			duration = formatDuration(*e.Duration)
		}
		notes := ""
		if e.Notes != nil {
			notes = *e.Notes
		}
		tbl.AddRow(e.StartTime.Local().Format("2006-01-02 15:04"), duration, taskTitle, notes)
	}

	_, _ = fmt.Fprintln(color.Output, tbl)
}
