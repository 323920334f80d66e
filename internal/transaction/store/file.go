package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// FileStore keeps every transaction in a single JSON array on disk.
//
// Each mutation reads the whole file, modifies it and writes it back.
// mu serialises that cycle within the process; separate processes sharing
// the file still race and the last writer wins.
type FileStore struct {
	path string

	mu     sync.Mutex
	nextID int64
}

// NewFile opens the store at path, creating an empty one if it does not exist.
// Initialisation problems are logged and the store starts out empty.
func NewFile(path string) *FileStore {
	s := &FileStore{path: path, nextID: 1}
	s.init()

	return s
}

func (s *FileStore) init() {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		slog.Error("failed to create data directory", "path", s.path, "error", err)
		return
	}

	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		if err := s.write(nil); err != nil {
			slog.Error("failed to create transactions file", "path", s.path, "error", err)
		}

		return
	}

	s.nextID = nextID(s.read(), 1)
}

// nextID returns the id following the largest one in txs, never lower than floor.
func nextID(txs []*transaction.Transaction, floor int64) int64 {
	next := floor
	for _, tx := range txs {
		if tx.ID >= next {
			next = tx.ID + 1
		}
	}

	return next
}

// read loads the persisted set. Unreadable or corrupt data yields an empty set.
func (s *FileStore) read() []*transaction.Transaction {
	data, err := os.ReadFile(s.path)
	if err != nil {
		slog.Warn("failed to read transactions file", "path", s.path, "error", err)
		return nil
	}

	if len(data) == 0 {
		return nil
	}

	var txs []*transaction.Transaction
	if err := json.Unmarshal(data, &txs); err != nil {
		slog.Warn("failed to decode transactions file", "path", s.path, "error", err)
		return nil
	}

	return txs
}

func (s *FileStore) write(txs []*transaction.Transaction) error {
	if txs == nil {
		txs = []*transaction.Transaction{}
	}

	data, err := json.MarshalIndent(txs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding transactions: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing transactions: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting file mode: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing transactions file: %w", err)
	}

	return nil
}

func (s *FileStore) ListTransactions(_ context.Context) ([]*transaction.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs := s.read()
	if txs == nil {
		txs = []*transaction.Transaction{}
	}

	return txs, nil
}

func (s *FileStore) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	if err := s.CreateTransactions(ctx, []*transaction.Transaction{tx}); err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

// CreateTransactions assigns ids to txs in order and persists them in one write.
func (s *FileStore) CreateTransactions(_ context.Context, txs []*transaction.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.read()
	s.nextID = nextID(existing, s.nextID)

	for _, tx := range txs {
		tx.ID = s.nextID
		s.nextID++

		stored := *tx
		existing = append(existing, &stored)
	}

	return s.write(existing)
}

func (s *FileStore) DeleteTransaction(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs := s.read()
	kept := txs[:0]

	for _, tx := range txs {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}

	if len(kept) == len(txs) {
		return nil
	}

	if err := s.write(kept); err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return nil
}
