package leaderboarddb

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

func TestAtomic_RunsSerializable(t *testing.T) {
	conn := &captureConn{}
	db := bun.NewDB(sql.OpenDB(&captureConnector{conn: conn}), pgdialect.New())
	store := New(db)

	err := store.Atomic(context.Background(), func(tx Store) error {
		if _, ok := tx.(*StoreImpl).DB.(bun.Tx); !ok {
			t.Fatal("fn should receive a transaction-bound store")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, driver.IsolationLevel(sql.LevelSerializable), conn.isolation)
}
