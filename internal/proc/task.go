package proc

import (
	"context"
	"time"

	"github.com/GriffinCanCode/ConsoleKit/internal/shared/id"
)

// Task is a cancellable unit of console work, typically one session's
// reader loop.
type Task struct {
	ID        id.TaskID
	Name      string
	StartedAt time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

// NewTask creates a task whose context derives from parent.
func NewTask(parent context.Context, name string) *Task {
	ctx, cancel := context.WithCancel(parent)
	return &Task{
		ID:        id.NewTaskID(),
		Name:      name,
		StartedAt: time.Now(),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Context returns the task's context. Blocking reads take it so a kill
// wakes them.
func (t *Task) Context() context.Context {
	return t.ctx
}

// Kill marks the task cancelled. Safe to call more than once.
func (t *Task) Kill() {
	t.cancel()
}

// Killed reports whether the task has been cancelled.
func (t *Task) Killed() bool {
	return t.ctx.Err() != nil
}

// State returns a human-readable task state.
func (t *Task) State() string {
	if t.Killed() {
		return "killed"
	}
	return "running"
}
