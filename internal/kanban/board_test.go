package kanban_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sprintdeck/sprintdeck/internal/domain/task"
	"github.com/sprintdeck/sprintdeck/internal/kanban"
)

type moverStub struct {
	calls  int
	last   task.Status
	lastID string
	err    error
}

func (m *moverStub) UpdateStatus(ctx context.Context, projectID, taskID string, status task.Status) error {
	m.calls++
	m.lastID = taskID
	m.last = status
	return m.err
}

func TestBoard_DropOntoNewLaneMovesTask(t *testing.T) {
	mover := &moverStub{}
	board := kanban.NewBoard("p1", mover)

	require.NoError(t, board.BeginDrag("t1", task.StatusTodo))
	require.NoError(t, board.Drop(context.Background(), task.StatusInProgress))

	require.Equal(t, 1, mover.calls)
	require.Equal(t, "t1", mover.lastID)
	require.Equal(t, task.StatusInProgress, mover.last)
}

func TestBoard_DropOntoSourceLaneIsNoOp(t *testing.T) {
	mover := &moverStub{}
	board := kanban.NewBoard("p1", mover)

	require.NoError(t, board.BeginDrag("t1", task.StatusTodo))
	require.NoError(t, board.Drop(context.Background(), task.StatusTodo))

	require.Zero(t, mover.calls, "dropping a card where it came from must not mutate")

	_, _, dragging := board.Dragging()
	require.False(t, dragging)
}

func TestBoard_DropOntoUnknownLaneFails(t *testing.T) {
	mover := &moverStub{}
	board := kanban.NewBoard("p1", mover)

	require.NoError(t, board.BeginDrag("t1", task.StatusTodo))
	err := board.Drop(context.Background(), task.Status("LIMBO"))
	require.ErrorIs(t, err, kanban.ErrInvalidLane)
	require.Zero(t, mover.calls)
}

func TestBoard_SecondPickupWhileDraggingFails(t *testing.T) {
	board := kanban.NewBoard("p1", &moverStub{})

	require.NoError(t, board.BeginDrag("t1", task.StatusTodo))
	require.ErrorIs(t, board.BeginDrag("t2", task.StatusReview), kanban.ErrDragInProgress)

	// The original gesture is still the active one.
	taskID, source, dragging := board.Dragging()
	require.True(t, dragging)
	require.Equal(t, "t1", taskID)
	require.Equal(t, task.StatusTodo, source)
}

func TestBoard_DropWithoutDragFails(t *testing.T) {
	board := kanban.NewBoard("p1", &moverStub{})
	require.ErrorIs(t, board.Drop(context.Background(), task.StatusDone), kanban.ErrNoDrag)
}

func TestBoard_CancelEndsGestureWithoutMutation(t *testing.T) {
	mover := &moverStub{}
	board := kanban.NewBoard("p1", mover)

	require.NoError(t, board.BeginDrag("t1", task.StatusTodo))
	board.Cancel()

	require.Zero(t, mover.calls)
	_, _, dragging := board.Dragging()
	require.False(t, dragging)

	// The board accepts a fresh gesture after a cancel.
	require.NoError(t, board.BeginDrag("t2", task.StatusReview))
}

func TestBoard_FailedDropStillEndsGesture(t *testing.T) {
	mover := &moverStub{err: errors.New("server said no")}
	board := kanban.NewBoard("p1", mover)

	require.NoError(t, board.BeginDrag("t1", task.StatusTodo))
	err := board.Drop(context.Background(), task.StatusDone)
	require.EqualError(t, err, "server said no")

	_, _, dragging := board.Dragging()
	require.False(t, dragging, "a failed mutation must not leave the board stuck mid-drag")
}

func TestGroupByStatus(t *testing.T) {
	tasks := []task.Task{
		{ID: "t1", Status: task.StatusTodo},
		{ID: "t2", Status: task.StatusDone},
		{ID: "t3", Status: task.StatusTodo},
	}

	lanes := kanban.GroupByStatus(tasks)

	require.Len(t, lanes, len(task.Statuses))
	require.Equal(t, []string{"t1", "t3"}, laneIDs(lanes[task.StatusTodo]))
	require.Equal(t, []string{"t2"}, laneIDs(lanes[task.StatusDone]))
	require.Empty(t, lanes[task.StatusInProgress])
	require.Empty(t, lanes[task.StatusReview])
}

func laneIDs(tasks []task.Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}
