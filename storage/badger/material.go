package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/studyreel/studyreel/core"
	"github.com/studyreel/studyreel/storage"
)

// MaterialRepository implements storage.MaterialRepository for BadgerDB.
type MaterialRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.MaterialRepository = (*MaterialRepository)(nil)

// NewMaterialRepository creates a new MaterialRepository.
func NewMaterialRepository(backend *Backend) (*MaterialRepository, error) {
	idSeq, err := backend.GetSequence(materialIDSeq)
	if err != nil {
		return nil, err
	}

	return &MaterialRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *MaterialRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *MaterialRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddMaterial stores a new material.
func (r *MaterialRepository) AddMaterial(ctx context.Context, material *core.Material) (*core.Material, error) {
	if material.Status == 0 {
		material.Status = core.StatusPending
	}
	if err := core.ValidateMaterial(material); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if material.Id == 0 {
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			material.Id = core.ID(nextID)
		}

		material.InsertedAt = time.Now().UTC()
		material.UpdatedAt = material.InsertedAt

		key := makeMaterialKey(material.Id)
		value := storage.MarshalMaterial(material)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	return material, err
}

// GetMaterial retrieves a material by ID.
func (r *MaterialRepository) GetMaterial(ctx context.Context, id core.ID) (*core.Material, error) {
	var result *core.Material
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeMaterialKey(id)
		var err error
		result, err = readMaterial(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// UpdateMaterialStatus transitions a material's processing status.
func (r *MaterialRepository) UpdateMaterialStatus(ctx context.Context, id core.ID, status core.ProcessingStatus) (*core.Material, error) {
	if err := core.ValidateProcessingStatus(status); err != nil {
		return nil, err
	}

	var result *core.Material
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeMaterialKey(id)
		material, err := readMaterial(tx, key)
		if err != nil {
			return err
		}
		if material == nil {
			return storage.ErrNotFound
		}

		material.Status = status
		material.UpdatedAt = time.Now().UTC()

		value := storage.MarshalMaterial(material)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		result = material
		return tx.Commit()
	}, true)

	return result, err
}

// ListMaterials retrieves all materials ordered by ID ascending.
func (r *MaterialRepository) ListMaterials(ctx context.Context) ([]*core.Material, error) {
	var results []*core.Material
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(materialRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var material *core.Material
			err := iter.Item().Value(func(val []byte) error {
				var err error
				material, err = storage.UnmarshalMaterial(val)
				return err
			})
			if err != nil {
				return err
			}
			if material != nil {
				results = append(results, material)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Record keys encode IDs in decimal, so iteration order is
	// lexicographic rather than numeric.
	slices.SortFunc(results, func(a, b *core.Material) int {
		if a.Id < b.Id {
			return -1
		}
		if a.Id > b.Id {
			return 1
		}
		return 0
	})
	return results, nil
}

// readMaterial reads a material from the transaction.
func readMaterial(tx *badger.Txn, key []byte) (*core.Material, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var material *core.Material
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		material, unmarshalErr = storage.UnmarshalMaterial(val)
		return unmarshalErr
	})
	return material, err
}
