package proc

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ConsoleKit/internal/logging"
	"github.com/GriffinCanCode/ConsoleKit/internal/shared/id"
)

// TaskInfo is the public representation of a task
type TaskInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	State     string    `json:"state"`
	StartedAt time.Time `json:"started_at"`
}

// Table tracks all live tasks
type Table struct {
	tasks sync.Map // map[id.TaskID]*Task
	log   *logging.Logger
}

// NewTable creates an empty task table
func NewTable(log *logging.Logger) *Table {
	if log == nil {
		log = logging.NewNop()
	}
	return &Table{log: log}
}

// Register adds a task to the table
func (tb *Table) Register(t *Task) {
	tb.tasks.Store(t.ID, t)
}

// Unregister removes a task from the table
func (tb *Table) Unregister(taskID id.TaskID) {
	tb.tasks.Delete(taskID)
}

// Get retrieves a task by ID
func (tb *Table) Get(taskID id.TaskID) (*Task, bool) {
	value, ok := tb.tasks.Load(taskID)
	if !ok {
		return nil, false
	}
	return value.(*Task), true
}

// Snapshot returns all tracked tasks, oldest first
func (tb *Table) Snapshot() []TaskInfo {
	var infos []TaskInfo

	tb.tasks.Range(func(key, value interface{}) bool {
		t := value.(*Task)
		infos = append(infos, TaskInfo{
			ID:        t.ID.String(),
			Name:      t.Name,
			State:     t.State(),
			StartedAt: t.StartedAt,
		})
		return true
	})

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].StartedAt.Before(infos[j].StartedAt)
	})

	return infos
}

// Dump writes the process listing to the structured log. Wired to the
// console's Ctrl-P hook, so it must not block.
func (tb *Table) Dump() {
	infos := tb.Snapshot()
	tb.log.Info("task dump", zap.Int("tasks", len(infos)))
	for _, info := range infos {
		tb.log.Info("task",
			zap.String("id", info.ID),
			zap.String("name", info.Name),
			zap.String("state", info.State),
			zap.Time("started_at", info.StartedAt),
		)
	}
}
