package scoredb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

// captureConn records the isolation level requested for each transaction.
type captureConn struct {
	isolation driver.IsolationLevel
}

func (c *captureConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("not supported")
}

func (c *captureConn) Close() error { return nil }

func (c *captureConn) Begin() (driver.Tx, error) { return captureTx{}, nil }

func (c *captureConn) BeginTx(_ context.Context, opts driver.TxOptions) (driver.Tx, error) {
	c.isolation = opts.Isolation
	return captureTx{}, nil
}

type captureTx struct{}

func (captureTx) Commit() error   { return nil }
func (captureTx) Rollback() error { return nil }

type captureDriver struct{}

func (captureDriver) Open(string) (driver.Conn, error) { return &captureConn{}, nil }

type captureConnector struct {
	conn *captureConn
}

func (c *captureConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }
func (c *captureConnector) Driver() driver.Driver                        { return captureDriver{} }

func newCaptureDB(conn *captureConn) *bun.DB {
	return bun.NewDB(sql.OpenDB(&captureConnector{conn: conn}), pgdialect.New())
}

func TestAtomic_RunsSerializable(t *testing.T) {
	conn := &captureConn{}
	repo := New(newCaptureDB(conn))

	err := repo.Atomic(context.Background(), func(tx Repository) error {
		if _, ok := tx.(*ScoreDBImpl).DB.(bun.Tx); !ok {
			t.Fatal("fn should receive a transaction-bound repository")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, driver.IsolationLevel(sql.LevelSerializable), conn.isolation,
		"verify must run at the same isolation level as the ranking rebuild")
}

func TestAtomic_ReusesSurroundingTransaction(t *testing.T) {
	conn := &captureConn{}
	db := newCaptureDB(conn)

	tx, err := db.BeginTx(context.Background(), &sql.TxOptions{Isolation: sql.LevelSerializable})
	require.NoError(t, err)

	repo := New(tx)
	calls := 0
	err = repo.Atomic(context.Background(), func(inner Repository) error {
		calls++
		assert.Same(t, repo, inner)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
