package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"gtd/internal/models"
)

const (
	colProjects    = "projects"
	colTasks       = "tasks"
	colTimeEntries = "timeentries"
	colSettings    = "settings"

	settingsKey = colSettings + "-default"
	timerKey    = "timer-active"
)

// diskvPersistence keeps one JSON file per entity under
// <base>/<collection>/<id>.
type diskvPersistence struct {
	d *diskv.Diskv
}

// OpenDiskv creates a Persistence rooted at basePath; an empty basePath
// falls back to the default location under the user data dir.
func OpenDiskv(basePath string) (Persistence, error) {
	if basePath == "" {
		var err error
		basePath, err = defaultBasePath()
		if err != nil {
			return nil, err
		}
	}

	return &diskvPersistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	})}, nil
}

func defaultBasePath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "gtd", "local"), nil
}

// Keys are `collection-id`; ids may themselves contain dashes, so only the
// first dash separates the collection directory from the file name.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return &diskv.PathKey{Path: []string{}, FileName: s}
	}
	return &diskv.PathKey{Path: []string{parts[0]}, FileName: parts[1]}
}

func pathToKeyTransform(pk *diskv.PathKey) string {
	if len(pk.Path) == 0 {
		return pk.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pk.Path, "-"), pk.FileName)
}

func (p *diskvPersistence) Projects() ([]models.Project, error) {
	return loadAll[models.Project](p, colProjects)
}

func (p *diskvPersistence) Tasks() ([]models.Task, error) {
	return loadAll[models.Task](p, colTasks)
}

func (p *diskvPersistence) TimeEntries() ([]models.TimeEntry, error) {
	return loadAll[models.TimeEntry](p, colTimeEntries)
}

func (p *diskvPersistence) Settings() (*models.Settings, error) {
	if !p.d.Has(settingsKey) {
		return nil, nil
	}
	data, err := p.d.Read(settingsKey)
	if err != nil {
		return nil, err
	}
	settings := &models.Settings{}
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (p *diskvPersistence) ActiveTimer() (*models.ActiveTimer, error) {
	if !p.d.Has(timerKey) {
		return nil, nil
	}
	data, err := p.d.Read(timerKey)
	if err != nil {
		return nil, err
	}
	timer := &models.ActiveTimer{}
	if err := json.Unmarshal(data, timer); err != nil {
		return nil, err
	}
	return timer, nil
}

func (p *diskvPersistence) SaveActiveTimer(timer models.ActiveTimer) error {
	return p.write(timerKey, timer)
}

func (p *diskvPersistence) ClearActiveTimer() error {
	if !p.d.Has(timerKey) {
		return nil
	}
	return p.d.Erase(timerKey)
}

func (p *diskvPersistence) SaveProject(project models.Project) error {
	return p.write(colProjects+"-"+project.ID, project)
}

func (p *diskvPersistence) DeleteProject(id string) error {
	return p.d.Erase(colProjects + "-" + id)
}

func (p *diskvPersistence) SaveTask(task models.Task) error {
	return p.write(colTasks+"-"+task.ID, task)
}

func (p *diskvPersistence) DeleteTask(id string) error {
	return p.d.Erase(colTasks + "-" + id)
}

func (p *diskvPersistence) SaveTimeEntry(entry models.TimeEntry) error {
	return p.write(colTimeEntries+"-"+entry.ID, entry)
}

func (p *diskvPersistence) SaveSettings(settings models.Settings) error {
	return p.write(settingsKey, settings)
}

func (p *diskvPersistence) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.d.Write(key, data)
}

func loadAll[T any](p *diskvPersistence, collection string) ([]T, error) {
	// Closing cancel releases the keys goroutine if a read fails mid-walk.
	cancel := make(chan struct{})
	defer close(cancel)

	out := make([]T, 0)
	for key := range p.d.Keys(cancel) {
		if !strings.HasPrefix(key, collection+"-") {
			continue
		}
		data, err := p.d.Read(key)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		out = append(out, v)
	}
	return out, nil
}
