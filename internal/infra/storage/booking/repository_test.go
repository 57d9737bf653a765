package booking

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResult struct {
	rows int64
}

func (f fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (f fakeResult) RowsAffected() (int64, error) { return f.rows, nil }

type capturingExecutor struct {
	query string
	args  []interface{}
	rows  int64
}

func (c *capturingExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	c.query = query
	c.args = args
	return fakeResult{rows: c.rows}, nil
}

func (c *capturingExecutor) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (c *capturingExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func TestCancelUpdatesOnlyActiveStatuses(t *testing.T) {
	exec := &capturingExecutor{rows: 1}
	repo := NewRepository(exec)

	err := repo.Cancel(context.Background(), "booking-1")
	require.NoError(t, err)

	assert.Contains(t, exec.query, "status IN")
	assert.Contains(t, exec.args, "pending")
	assert.Contains(t, exec.args, "confirmed")
	assert.NotContains(t, exec.args, "completed")
	assert.NotContains(t, exec.args, "no_show")
}

func TestCancelNoRowsAffected(t *testing.T) {
	exec := &capturingExecutor{rows: 0}
	repo := NewRepository(exec)

	err := repo.Cancel(context.Background(), "booking-1")

	assert.ErrorIs(t, err, ErrBookingNotFound)
}
