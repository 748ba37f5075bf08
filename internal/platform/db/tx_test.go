package db

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
)

type fakeBeginner struct {
	tx       *fakeTx
	beginErr error
}

func (f *fakeBeginner) BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return f.tx, nil
}

// fakeTx overrides only the lifecycle methods; anything else panics.
type fakeTx struct {
	pgx.Tx
	commits   int
	rollbacks int
	commitErr error
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.commits++
	return t.commitErr
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rollbacks++
	return nil
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	tx := &fakeTx{}
	ran := false
	err := WithTx(context.Background(), &fakeBeginner{tx: tx}, func(pgx.Tx) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("WithTx: %v", err)
	}
	if !ran {
		t.Fatal("fn was not invoked")
	}
	if tx.commits != 1 {
		t.Errorf("commits = %d, want 1", tx.commits)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	tx := &fakeTx{}
	sentinel := errors.New("insert failed")
	err := WithTx(context.Background(), &fakeBeginner{tx: tx}, func(pgx.Tx) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("WithTx = %v, want fn error unchanged", err)
	}
	if tx.commits != 0 {
		t.Errorf("commits = %d, want 0", tx.commits)
	}
	if tx.rollbacks == 0 {
		t.Error("transaction was not rolled back")
	}
}

func TestWithTxBeginFailure(t *testing.T) {
	beginErr := errors.New("pool exhausted")
	err := WithTx(context.Background(), &fakeBeginner{beginErr: beginErr}, func(pgx.Tx) error {
		t.Fatal("fn must not run when begin fails")
		return nil
	})
	if !errors.Is(err, beginErr) {
		t.Fatalf("WithTx = %v, want wrapped begin error", err)
	}
	if !strings.Contains(err.Error(), "begin tx") {
		t.Errorf("error %q lacks begin context", err)
	}
}

func TestWithTxCommitFailure(t *testing.T) {
	commitErr := errors.New("connection lost")
	tx := &fakeTx{commitErr: commitErr}
	err := WithTx(context.Background(), &fakeBeginner{tx: tx}, func(pgx.Tx) error {
		return nil
	})
	if !errors.Is(err, commitErr) {
		t.Fatalf("WithTx = %v, want wrapped commit error", err)
	}
	if !strings.Contains(err.Error(), "commit tx") {
		t.Errorf("error %q lacks commit context", err)
	}
}
