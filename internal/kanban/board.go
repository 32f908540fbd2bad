// Package kanban coordinates drag gestures over swimlanes into status
// change intents. One gesture is active at a time; a drop onto the
// task's current lane is a deliberate no-op.
package kanban

import (
	"context"
	"errors"
	"sync"

	"github.com/sprintdeck/sprintdeck/internal/domain/task"
)

var (
	// ErrDragInProgress indicates a gesture is already active.
	ErrDragInProgress = errors.New("drag already in progress")
	// ErrNoDrag indicates a drop or cancel with no active gesture.
	ErrNoDrag = errors.New("no drag in progress")
	// ErrInvalidLane indicates a drop target outside the known statuses.
	ErrInvalidLane = errors.New("invalid target lane")
)

// StatusMover issues the status-change mutation behind a drop.
// Satisfied by queries.Tasks.
type StatusMover interface {
	UpdateStatus(ctx context.Context, projectID, taskID string, status task.Status) error
}

// Board runs the per-gesture state machine: Idle, Dragging, then back
// to Idle through a drop or a cancel.
type Board struct {
	projectID string
	mover     StatusMover

	mu           sync.Mutex
	dragging     bool
	taskID       string
	sourceStatus task.Status
}

// NewBoard creates a board for one project's swimlane view.
func NewBoard(projectID string, mover StatusMover) *Board {
	return &Board{projectID: projectID, mover: mover}
}

// BeginDrag picks up a task card, capturing its status at pickup time.
func (b *Board) BeginDrag(taskID string, status task.Status) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.dragging {
		return ErrDragInProgress
	}
	b.dragging = true
	b.taskID = taskID
	b.sourceStatus = status
	return nil
}

// Drop releases the card over a lane. Dropping onto the source lane
// issues no mutation. The gesture ends regardless of the mutation's
// outcome; a failed mutation surfaces its error but the board is
// already idle, and the cache rollback handles the visual state.
func (b *Board) Drop(ctx context.Context, target task.Status) error {
	b.mu.Lock()
	if !b.dragging {
		b.mu.Unlock()
		return ErrNoDrag
	}
	taskID := b.taskID
	source := b.sourceStatus
	b.reset()
	b.mu.Unlock()

	if !target.Valid() {
		return ErrInvalidLane
	}
	if target == source {
		return nil
	}

	return b.mover.UpdateStatus(ctx, b.projectID, taskID, target)
}

// Cancel releases the card outside any lane. No mutation is issued.
func (b *Board) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset()
}

// Dragging reports the active gesture, if any.
func (b *Board) Dragging() (taskID string, source task.Status, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.taskID, b.sourceStatus, b.dragging
}

func (b *Board) reset() {
	b.dragging = false
	b.taskID = ""
	b.sourceStatus = ""
}

// GroupByStatus buckets tasks into swimlanes, preserving input order
// within each lane. Every known status gets a bucket even when empty.
func GroupByStatus(tasks []task.Task) map[task.Status][]task.Task {
	lanes := make(map[task.Status][]task.Task, len(task.Statuses))
	for _, status := range task.Statuses {
		lanes[status] = []task.Task{}
	}
	for _, t := range tasks {
		lanes[t.Status] = append(lanes[t.Status], t)
	}
	return lanes
}
