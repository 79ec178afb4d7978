package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doabli/internal/models"
)

func int64p(v int64) *int64 { return &v }
func strp(v string) *string { return &v }

func TestTaskListByProjectOnlyReturnsThatProject(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM tasks WHERE project_id = \$1 ORDER BY position ASC`).
		WithArgs(int64(7)).
		WillReturnRows(addTask(addTask(taskRows(), 1, "a", "todo", int64(7), 0), 2, "b", "done", int64(7), 1))

	tasks, err := repo.List(context.Background(), models.TaskFilter{ProjectID: int64p(7), AssigneeID: strp("u2")})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		require.NotNil(t, task.ProjectID)
		assert.Equal(t, int64(7), *task.ProjectID)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskListByAssignee(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM tasks WHERE assignee_id = \$1 ORDER BY position ASC`).
		WithArgs("u2").
		WillReturnRows(taskRows())

	tasks, err := repo.List(context.Background(), models.TaskFilter{AssigneeID: strp("u2")})
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.NotNil(t, tasks)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskListUnfiltered(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM tasks ORDER BY position ASC`).
		WillReturnRows(addTask(taskRows(), 1, "a", "todo", nil, 0))

	tasks, err := repo.List(context.Background(), models.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Nil(t, tasks[0].ProjectID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskGetByIDMissingReturnsNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM tasks WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnRows(taskRows())

	task, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, task)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskCreateReturnsServerID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery(`INSERT INTO tasks (.+) VALUES (.+) RETURNING id, title`).
		WithArgs("Write docs", nil, "review", "high", nil, nil, int64(3), "u1", 4).
		WillReturnRows(taskRows().AddRow(int64(99), "Write docs", nil, "review", "high", nil, nil, int64(3), "u1", int64(4), fixedNow, fixedNow))

	task := &models.Task{
		Title:       "Write docs",
		Status:      models.StatusReview,
		Priority:    models.PriorityHigh,
		ProjectID:   int64p(3),
		CreatedByID: "u1",
		Position:    4,
	}
	require.NoError(t, repo.Create(context.Background(), task))
	assert.Equal(t, int64(99), task.ID)
	assert.Equal(t, models.StatusReview, task.Status)
	assert.Equal(t, models.PriorityHigh, task.Priority)
	assert.Equal(t, "Write docs", task.Title)
	assert.Equal(t, 4, task.Position)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskUpdateSetsOnlyProvidedFields(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery(`UPDATE tasks SET title = \$1, status = \$2, updated_at = NOW\(\) WHERE id = \$3 RETURNING`).
		WithArgs("renamed", "done", int64(5)).
		WillReturnRows(addTask(taskRows(), 5, "renamed", "done", nil, 2))

	task, err := repo.Update(context.Background(), 5, models.TaskUpdate{Title: strp("renamed"), Status: strp("done")})
	require.NoError(t, err)
	assert.Equal(t, "renamed", task.Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskUpdateClearsAssignee(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery(`UPDATE tasks SET assignee_id = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(nil, int64(5)).
		WillReturnRows(addTask(taskRows(), 5, "t", "todo", nil, 0))

	_, err := repo.Update(context.Background(), 5, models.TaskUpdate{AssigneeID: strp("")})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskUpdateMissingReturnsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery(`UPDATE tasks SET`).WillReturnRows(taskRows())

	_, err := repo.Update(context.Background(), 5, models.TaskUpdate{Title: strp("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskUpdatePositionTouchesOnlyPositionAndStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery(`^UPDATE tasks SET position = \$1, status = \$2, updated_at = NOW\(\) WHERE id = \$3 RETURNING`).
		WithArgs(0, "done", int64(2)).
		WillReturnRows(addTask(taskRows(), 2, "T2", "done", int64(1), 0))

	task, err := repo.UpdatePosition(context.Background(), 2, 0, models.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, 0, task.Position)
	assert.Equal(t, models.StatusDone, task.Status)
	assert.Equal(t, "T2", task.Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskUpdatePositionMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery(`UPDATE tasks SET position`).WillReturnRows(taskRows())

	_, err := repo.UpdatePosition(context.Background(), 2, 0, models.StatusDone)
	assert.ErrorIs(t, err, ErrNotFound)
}

// T1 todo/0 and T2 todo/1; T2 is dragged to done at slot 0.
func TestLaunchScenario(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO tasks`).
		WithArgs("T1", nil, "todo", "medium", nil, nil, int64(1), "u1", 0).
		WillReturnRows(addTask(taskRows(), 1, "T1", "todo", int64(1), 0))
	mock.ExpectQuery(`INSERT INTO tasks`).
		WithArgs("T2", nil, "todo", "medium", nil, nil, int64(1), "u1", 1).
		WillReturnRows(addTask(taskRows(), 2, "T2", "todo", int64(1), 1))
	mock.ExpectQuery(`UPDATE tasks SET position = \$1, status = \$2`).
		WithArgs(0, "done", int64(2)).
		WillReturnRows(addTask(taskRows(), 2, "T2", "done", int64(1), 0))
	mock.ExpectQuery(`SELECT (.+) FROM tasks WHERE project_id = \$1 ORDER BY position ASC`).
		WithArgs(int64(1)).
		WillReturnRows(addTask(addTask(taskRows(), 1, "T1", "todo", int64(1), 0), 2, "T2", "done", int64(1), 0))

	for i, title := range []string{"T1", "T2"} {
		task := &models.Task{Title: title, Status: models.StatusTodo, Priority: models.PriorityMedium, ProjectID: int64p(1), CreatedByID: "u1", Position: i}
		require.NoError(t, repo.Create(ctx, task))
	}
	_, err := repo.UpdatePosition(ctx, 2, 0, models.StatusDone)
	require.NoError(t, err)

	tasks, err := repo.List(ctx, models.TaskFilter{ProjectID: int64p(1)})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	byTitle := map[string]models.Task{}
	for _, task := range tasks {
		byTitle[task.Title] = task
	}
	assert.Equal(t, models.StatusTodo, byTitle["T1"].Status)
	assert.Equal(t, 0, byTitle["T1"].Position)
	assert.Equal(t, models.StatusDone, byTitle["T2"].Status)
	assert.Equal(t, 0, byTitle["T2"].Position)
	require.NoError(t, mock.ExpectationsWereMet())
}

// The plain position path issues one unguarded UPDATE per call, so two
// writers targeting the same slot both win.
func TestUpdatePositionAllowsDuplicateSlots(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`UPDATE tasks SET position`).
		WithArgs(0, "review", int64(10)).
		WillReturnRows(addTask(taskRows(), 10, "a", "review", int64(1), 0))
	mock.ExpectQuery(`UPDATE tasks SET position`).
		WithArgs(0, "review", int64(11)).
		WillReturnRows(addTask(taskRows(), 11, "b", "review", int64(1), 0))

	a, err := repo.UpdatePosition(ctx, 10, 0, models.StatusReview)
	require.NoError(t, err)
	b, err := repo.UpdatePosition(ctx, 11, 0, models.StatusReview)
	require.NoError(t, err)

	assert.Equal(t, a.Status, b.Status)
	assert.Equal(t, a.Position, b.Position)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMoveInColumnRenumbersBothColumns(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM tasks WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(3)).
		WillReturnRows(addTask(taskRows(), 3, "mover", "todo", int64(1), 0))
	mock.ExpectQuery(`SELECT id, position FROM tasks WHERE project_id IS NOT DISTINCT FROM \$1 AND status = \$2 AND id <> \$3 ORDER BY position ASC, id ASC FOR UPDATE`).
		WithArgs(int64(1), "done", int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "position"}).AddRow(int64(1), int64(0)).AddRow(int64(2), int64(1)))

	positions := map[int64]int{}
	mock.ExpectExec(`UPDATE tasks SET position = \$1 WHERE id = \$2`).WithArgs(1, int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	positions[1] = 1
	mock.ExpectExec(`UPDATE tasks SET position = \$1 WHERE id = \$2`).WithArgs(2, int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))
	positions[2] = 2

	mock.ExpectQuery(`UPDATE tasks SET position = \$1, status = \$2, updated_at = NOW\(\) WHERE id = \$3 RETURNING`).
		WithArgs(0, "done", int64(3)).
		WillReturnRows(addTask(taskRows(), 3, "mover", "done", int64(1), 0))

	mock.ExpectQuery(`SELECT id, position FROM tasks WHERE project_id IS NOT DISTINCT FROM \$1 AND status = \$2 AND id <> \$3`).
		WithArgs(int64(1), "todo", int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "position"}).AddRow(int64(4), int64(1)))
	mock.ExpectExec(`UPDATE tasks SET position = \$1 WHERE id = \$2`).WithArgs(0, int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	moved, err := repo.MoveInColumn(context.Background(), 3, models.StatusDone, 0)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, moved.Status)
	positions[moved.ID] = moved.Position

	seen := map[int]bool{}
	for _, p := range positions {
		assert.False(t, seen[p], "position %d assigned twice", p)
		seen[p] = true
	}
	assert.Len(t, seen, 3)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMoveInColumnClampsIndexSameColumn(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM tasks WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(1)).
		WillReturnRows(addTask(taskRows(), 1, "first", "todo", nil, 0))
	mock.ExpectQuery(`SELECT id, position FROM tasks`).
		WithArgs(nil, "todo", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "position"}).AddRow(int64(2), int64(1)))
	mock.ExpectExec(`UPDATE tasks SET position = \$1 WHERE id = \$2`).WithArgs(0, int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`UPDATE tasks SET position = \$1, status = \$2`).
		WithArgs(1, "todo", int64(1)).
		WillReturnRows(addTask(taskRows(), 1, "first", "todo", nil, 1))
	mock.ExpectCommit()

	moved, err := repo.MoveInColumn(context.Background(), 1, models.StatusTodo, 50)
	require.NoError(t, err)
	assert.Equal(t, 1, moved.Position)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMoveInColumnMissingTaskRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM tasks WHERE id = \$1 FOR UPDATE`).WithArgs(int64(9)).WillReturnRows(taskRows())
	mock.ExpectRollback()

	_, err := repo.MoveInColumn(context.Background(), 9, models.StatusDone, 0)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMoveInColumnRenumberFailureRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(int64(3)).WillReturnRows(addTask(taskRows(), 3, "m", "todo", int64(1), 0))
	mock.ExpectQuery(`SELECT id, position FROM tasks`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "position"}).AddRow(int64(1), int64(0)))
	mock.ExpectExec(`UPDATE tasks SET position = \$1 WHERE id = \$2`).WillReturnError(errors.New("deadlock"))
	mock.ExpectRollback()

	_, err := repo.MoveInColumn(context.Background(), 3, models.StatusDone, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "renumber task 1")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRebalanceCompactsColumn(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, position FROM tasks WHERE project_id IS NOT DISTINCT FROM \$1 AND status = \$2 ORDER BY position ASC, id ASC FOR UPDATE`).
		WithArgs(int64(1), "review").
		WillReturnRows(sqlmock.NewRows([]string{"id", "position"}).
			AddRow(int64(5), int64(0)).AddRow(int64(6), int64(0)).AddRow(int64(7), int64(4)))
	mock.ExpectExec(`UPDATE tasks SET position = \$1 WHERE id = \$2`).WithArgs(1, int64(6)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE tasks SET position = \$1 WHERE id = \$2`).WithArgs(2, int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Rebalance(context.Background(), int64p(1), models.StatusReview))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskDeleteIsIdempotent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectExec(`DELETE FROM tasks WHERE id = \$1`).WithArgs(int64(8)).WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, repo.Delete(context.Background(), 8))
	require.NoError(t, mock.ExpectationsWereMet())
}
