package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return sqlx.NewDb(raw, "postgres"), mock
}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func taskRows() *sqlmock.Rows {
	return sqlmock.NewRows(taskColumns)
}

func addTask(rows *sqlmock.Rows, id int64, title, status string, projectID any, position int64) *sqlmock.Rows {
	return rows.AddRow(id, title, nil, status, "medium", nil, nil, projectID, "u1", position, fixedNow, fixedNow)
}
