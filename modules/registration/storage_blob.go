package registration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"github.com/google/uuid"

	"github.com/dmitrymomot/regform/pkg/blob"
)

// BlobStorage writes each record as a JSON object into a blob.Store. It
// backs both the "file" and the "s3" drivers.
type BlobStorage struct {
	store  blob.Store
	prefix string
}

func NewBlobStorage(store blob.Store, prefix string) *BlobStorage {
	return &BlobStorage{store: store, prefix: prefix}
}

func (s *BlobStorage) key(id uuid.UUID) string {
	return path.Join(s.prefix, "registrations", id.String()+".json")
}

func (s *BlobStorage) Save(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Join(ErrFailedToSave, err)
	}
	if err := s.store.Put(ctx, s.key(rec.ID), data, "application/json"); err != nil {
		return errors.Join(ErrFailedToSave, err)
	}
	return nil
}

func (s *BlobStorage) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	data, err := s.store.Get(ctx, s.key(id))
	if errors.Is(err, blob.ErrNotFound) {
		return Record{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	if err != nil {
		return Record{}, errors.Join(ErrStorageUnavailable, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decode registration %s: %w", id, err)
	}
	return rec, nil
}

func (s *BlobStorage) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	return nil
}
