package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/studyreel/studyreel/core"
	"github.com/studyreel/studyreel/storage"
)

// VideoRepository implements storage.VideoRepository for BadgerDB.
// Videos and chunks use content-based IDs, so no sequence is needed and
// re-storing the same entity overwrites rather than duplicates.
type VideoRepository struct {
	backend *Backend
}

var _ storage.VideoRepository = (*VideoRepository)(nil)

// NewVideoRepository creates a new VideoRepository.
func NewVideoRepository(backend *Backend) (*VideoRepository, error) {
	return &VideoRepository{
		backend: backend,
	}, nil
}

// Close releases resources. VideoRepository has no resources to release.
func (r *VideoRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *VideoRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// FindSimilarChunks delegates to the backend.
func (r *VideoRepository) FindSimilarChunks(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]core.ChunkMatch, error) {
	return r.backend.FindSimilarChunks(ctx, vector, minSimilarity, limit)
}

// GetOrCreateVideo finds a video by its external identifier or stores
// the given one.
func (r *VideoRepository) GetOrCreateVideo(ctx context.Context, video *core.Video) (*core.Video, error) {
	if err := core.ValidateVideo(video); err != nil {
		return nil, err
	}
	if video.Id == 0 {
		video.Id = core.IDFromContent(video.VideoID)
	}

	var result *core.Video
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeVideoKey(video.Id)
		existing, err := readVideo(tx, key)
		if err != nil {
			return err
		}
		if existing != nil {
			result = existing
			return nil
		}

		video.InsertedAt = time.Now().UTC()
		video.UpdatedAt = video.InsertedAt

		value := storage.MarshalVideo(video)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		result = video
		return tx.Commit()
	}, true)

	return result, err
}

// GetVideo retrieves a video by internal ID.
func (r *VideoRepository) GetVideo(ctx context.Context, id core.ID) (*core.Video, error) {
	var result *core.Video
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeVideoKey(id)
		var err error
		result, err = readVideo(tx, key)
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

// ListVideos retrieves all stored videos.
func (r *VideoRepository) ListVideos(ctx context.Context) ([]*core.Video, error) {
	var results []*core.Video
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(videoRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var video *core.Video
			err := iter.Item().Value(func(val []byte) error {
				var err error
				video, err = storage.UnmarshalVideo(val)
				return err
			})
			if err != nil {
				return err
			}
			if video != nil {
				results = append(results, video)
			}
		}
		return nil
	}, false)
	return results, err
}

// AddChunks stores transcript chunks with content-based IDs.
func (r *VideoRepository) AddChunks(ctx context.Context, chunks ...*core.TranscriptChunk) ([]*core.TranscriptChunk, error) {
	for _, chunk := range chunks {
		if err := core.ValidateChunk(chunk); err != nil {
			return nil, err
		}
		// Chunk IDs come from the window identity; callers must set them.
		if chunk.Id == 0 {
			return nil, core.ErrInvalidChunk
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			chunk.InsertedAt = time.Now().UTC()
			chunk.UpdatedAt = chunk.InsertedAt

			// Store primary record
			key := makeChunkKey(chunk.Id)
			value := storage.MarshalChunk(chunk)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update video index
			indexKey := makeChunkVideoKey(chunk.VideoId, chunk.Id)
			if err := tx.Set(indexKey, storage.MarshalID(chunk.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return chunks, err
}

// UpdateChunks updates existing chunks.
func (r *VideoRepository) UpdateChunks(ctx context.Context, chunks ...*core.TranscriptChunk) ([]*core.TranscriptChunk, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			key := makeChunkKey(chunk.Id)

			old, err := readChunk(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			chunk.InsertedAt = old.InsertedAt
			chunk.UpdatedAt = time.Now().UTC()

			value := storage.MarshalChunk(chunk)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return chunks, err
}

// GetChunk retrieves the chunk for a specific window of a video. The
// chunk ID is derived from the window identity, so this is a direct
// key lookup.
func (r *VideoRepository) GetChunk(ctx context.Context, videoID string, start, end float64) (*core.TranscriptChunk, error) {
	id := core.IDFromContent(core.ChunkIdentity(videoID, start, end))

	var result *core.TranscriptChunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeChunkKey(id)
		var err error
		result, err = readChunk(tx, key)
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

// GetChunksByVideo retrieves all chunks of a video ordered by start time.
func (r *VideoRepository) GetChunksByVideo(ctx context.Context, videoID core.ID) ([]*core.TranscriptChunk, error) {
	var results []*core.TranscriptChunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialChunkVideoKey(videoID)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			// Check if key still has our videoID prefix
			if len(key) < len(startKey) {
				break
			}
			if slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			var chunkID core.ID
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunkID, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}

			chunkKey := makeChunkKey(chunkID)
			chunk, err := readChunk(tx, chunkKey)
			if err != nil {
				return err
			}
			if chunk != nil {
				results = append(results, chunk)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Index order follows chunk IDs which are content hashes, so sort
	// by start time here.
	slices.SortFunc(results, func(a, b *core.TranscriptChunk) int {
		if a.StartSeconds < b.StartSeconds {
			return -1
		}
		if a.StartSeconds > b.StartSeconds {
			return 1
		}
		return 0
	})
	return results, nil
}

// UpsertMatch stores or refreshes the match between a concept and a
// chunk. An existing match keeps its InsertedAt timestamp.
func (r *VideoRepository) UpsertMatch(ctx context.Context, match *core.ConceptMatch) (*core.ConceptMatch, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeMatchKey(match.ConceptId, match.ChunkId)

		existing, err := readMatch(tx, key)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if existing != nil {
			match.InsertedAt = existing.InsertedAt
		} else {
			match.InsertedAt = now
		}
		match.UpdatedAt = now

		value := storage.MarshalMatch(match)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	return match, err
}

// GetMatchesByConcept retrieves all matches for a concept ordered by
// similarity descending.
func (r *VideoRepository) GetMatchesByConcept(ctx context.Context, conceptID core.ID) ([]*core.ConceptMatch, error) {
	var results []*core.ConceptMatch
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialMatchKey(conceptID)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			// Check if key still has our conceptID prefix
			if len(key) < len(startKey) {
				break
			}
			if slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			var match *core.ConceptMatch
			err := iter.Item().Value(func(val []byte) error {
				var err error
				match, err = storage.UnmarshalMatch(val)
				return err
			})
			if err != nil {
				return err
			}
			if match != nil {
				results = append(results, match)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.ConceptMatch) int {
		if a.Similarity > b.Similarity {
			return -1
		}
		if a.Similarity < b.Similarity {
			return 1
		}
		return 0
	})
	return results, nil
}

// Helper methods

// readVideo reads a video from the transaction.
func readVideo(tx *badger.Txn, key []byte) (*core.Video, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var video *core.Video
	err = item.Value(func(val []byte) error {
		var err error
		video, err = storage.UnmarshalVideo(val)
		return err
	})
	return video, err
}

// readChunk reads a transcript chunk from the transaction.
func readChunk(tx *badger.Txn, key []byte) (*core.TranscriptChunk, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var chunk *core.TranscriptChunk
	err = item.Value(func(val []byte) error {
		var err error
		chunk, err = storage.UnmarshalChunk(val)
		return err
	})
	return chunk, err
}

// readMatch reads a concept match from the transaction.
func readMatch(tx *badger.Txn, key []byte) (*core.ConceptMatch, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var match *core.ConceptMatch
	err = item.Value(func(val []byte) error {
		var err error
		match, err = storage.UnmarshalMatch(val)
		return err
	})
	return match, err
}
