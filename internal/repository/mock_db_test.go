package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type recordedCall struct {
	sql  string
	args []any
}

// mockDB records statements and answers them with the configured functions.
type mockDB struct {
	calls []recordedCall

	ExecFunc     func(sql string, args []any) (pgconn.CommandTag, error)
	QueryFunc    func(sql string, args []any) (pgx.Rows, error)
	QueryRowFunc func(sql string, args []any) pgx.Row
}

var _ DBTX = (*mockDB)(nil)

func (m *mockDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.calls = append(m.calls, recordedCall{sql: sql, args: args})
	if m.ExecFunc != nil {
		return m.ExecFunc(sql, args)
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (m *mockDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	m.calls = append(m.calls, recordedCall{sql: sql, args: args})
	if m.QueryFunc != nil {
		return m.QueryFunc(sql, args)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	m.calls = append(m.calls, recordedCall{sql: sql, args: args})
	if m.QueryRowFunc != nil {
		return m.QueryRowFunc(sql, args)
	}
	return mockRow{err: pgx.ErrNoRows}
}

// mockRow implements pgx.Row.
type mockRow struct {
	err  error
	scan func(dest ...any) error
}

func (r mockRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if r.scan != nil {
		return r.scan(dest...)
	}
	return nil
}
