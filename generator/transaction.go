package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Transaction is a set of file writes that succeed or fail together.
type Transaction struct {
	staged []stagedWrite
	undo   []priorState
	done   bool
}

type stagedWrite struct {
	path string
	data []byte
	perm fs.FileMode
}

// priorState is what a path held before the transaction touched it.
type priorState struct {
	path    string
	existed bool
	data    []byte
	perm    fs.FileMode
}

// NewTransaction creates an empty transaction.
func NewTransaction() *Transaction {
	return &Transaction{}
}

// AddFile stages a write. Nothing touches the disk until Commit.
func (t *Transaction) AddFile(path string, content []byte, mode os.FileMode) {
	t.staged = append(t.staged, stagedWrite{path: path, data: content, perm: mode})
}

// Len returns the number of staged writes.
func (t *Transaction) Len() int {
	return len(t.staged)
}

// Commit writes every staged file in order. When a write fails the files
// written so far get their previous content back, and files that did not
// exist before are removed.
func (t *Transaction) Commit() error {
	if t.done {
		return errors.New("transaction already committed")
	}

	t.undo = t.undo[:0]
	for _, w := range t.staged {
		prior, err := capturePrior(w.path)
		if err == nil {
			err = writeFileAtomic(w.path, w.data, w.perm)
		}
		if err != nil {
			t.restore()
			return err
		}
		t.undo = append(t.undo, prior)
	}

	t.done = true
	return nil
}

// Rollback undoes a transaction that has not committed. Safe to defer.
func (t *Transaction) Rollback() {
	if t.done {
		return
	}
	t.restore()
}

func capturePrior(path string) (priorState, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return priorState{path: path}, nil
	case err != nil:
		return priorState{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return priorState{}, fmt.Errorf("failed to back up %s: %w", path, err)
	}
	return priorState{path: path, existed: true, data: data, perm: info.Mode().Perm()}, nil
}

// restore walks the undo log newest first. Failures are ignored: the
// original error is what the caller needs to see.
func (t *Transaction) restore() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		p := t.undo[i]
		if p.existed {
			_ = writeFileAtomic(p.path, p.data, p.perm)
		} else {
			_ = os.Remove(p.path)
		}
	}
	t.undo = t.undo[:0]
}
