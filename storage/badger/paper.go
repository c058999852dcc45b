// Copyright 2026 Constellar Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/constellar/paperflow/core"
	"github.com/constellar/paperflow/storage"
)

// PaperRepository implements storage.PaperRepository for BadgerDB.
type PaperRepository struct {
	backend *Backend
}

var _ storage.PaperRepository = (*PaperRepository)(nil)

// NewPaperRepository creates a new PaperRepository backed by the given backend.
func NewPaperRepository(backend *Backend) (storage.PaperRepository, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &PaperRepository{backend: backend}, nil
}

// Close is a no-op; the caller owns the backend lifecycle.
func (r *PaperRepository) Close() error {
	return nil
}

// GetPaper retrieves the record for the given arXiv identifier.
func (r *PaperRepository) GetPaper(ctx context.Context, arxivID string) (*core.PaperRecord, error) {
	var record *core.PaperRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		record, err = r.readPaper(tx, arxivID)
		if err != nil {
			return err
		}
		if record == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// CreatePaper stores a new record, setting creation timestamps.
func (r *PaperRepository) CreatePaper(ctx context.Context, record *core.PaperRecord) error {
	if err := core.ValidatePaperRecord(record); err != nil {
		return err
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		existing, err := r.readPaper(tx, record.ArxivID)
		if err != nil {
			return err
		}
		if existing != nil {
			return storage.ErrDuplicateKey
		}

		record.CreatedAt = time.Now().UTC()
		record.UpdatedAt = record.CreatedAt

		if err := tx.Set(makePaperKey(record.ArxivID), storage.MarshalPaperRecord(record)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// UpdatePaper replaces an existing record.
func (r *PaperRepository) UpdatePaper(ctx context.Context, record *core.PaperRecord) error {
	if err := core.ValidatePaperRecord(record); err != nil {
		return err
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		old, err := r.readPaper(tx, record.ArxivID)
		if err != nil {
			return err
		}
		if old == nil {
			return storage.ErrNotFound
		}

		record.CreatedAt = old.CreatedAt
		record.UpdatedAt = time.Now().UTC()

		if err := tx.Set(makePaperKey(record.ArxivID), storage.MarshalPaperRecord(record)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// SetStatus updates the status and error message of an existing record.
func (r *PaperRepository) SetStatus(ctx context.Context, arxivID string, status core.Status, errorMessage string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		record, err := r.readPaper(tx, arxivID)
		if err != nil {
			return err
		}
		if record == nil {
			return storage.ErrNotFound
		}

		record.Status = status
		record.ErrorMessage = errorMessage
		record.UpdatedAt = time.Now().UTC()

		if err := tx.Set(makePaperKey(arxivID), storage.MarshalPaperRecord(record)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// ListPapers returns all records ordered by arXiv identifier.
func (r *PaperRepository) ListPapers(ctx context.Context) ([]*core.PaperRecord, error) {
	var records []*core.PaperRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := []byte(paperRecordPrefix + ":")
		opts.Prefix = prefix

		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				record, err := storage.UnmarshalPaperRecord(val)
				if err != nil {
					return err
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// readPaper reads a record within a transaction. Returns nil if missing.
func (r *PaperRepository) readPaper(tx *badger.Txn, arxivID string) (*core.PaperRecord, error) {
	item, err := tx.Get(makePaperKey(arxivID))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var record *core.PaperRecord
	err = item.Value(func(val []byte) error {
		record, err = storage.UnmarshalPaperRecord(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}
