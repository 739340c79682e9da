package storage

import (
	"context"

	"github.com/studyreel/studyreel/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// MaterialRepository provides operations for managing learning materials.
type MaterialRepository interface {
	Repository
	// AddMaterial stores a new material. Generates an ID from sequence
	// for materials with ID=0 and sets timestamps. The material starts
	// in StatusPending unless a status is already set.
	AddMaterial(ctx context.Context, material *core.Material) (*core.Material, error)

	// GetMaterial retrieves a material by ID.
	// Returns ErrNotFound if the material doesn't exist.
	GetMaterial(ctx context.Context, id core.ID) (*core.Material, error)

	// UpdateMaterialStatus transitions a material's processing status.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if the material doesn't exist.
	UpdateMaterialStatus(ctx context.Context, id core.ID, status core.ProcessingStatus) (*core.Material, error)

	// ListMaterials retrieves all materials ordered by ID ascending.
	ListMaterials(ctx context.Context) ([]*core.Material, error)
}

// ConceptRepository provides operations for managing extracted concepts.
type ConceptRepository interface {
	Repository
	// AddConcepts stores one or more concepts. Generates IDs from
	// sequence for concepts with ID=0 and sets timestamps. Returns the
	// concepts with IDs and timestamps populated.
	AddConcepts(ctx context.Context, concepts ...*core.Concept) ([]*core.Concept, error)

	// UpdateConcepts updates existing concepts.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any concept doesn't exist.
	UpdateConcepts(ctx context.Context, concepts ...*core.Concept) ([]*core.Concept, error)

	// GetConcept retrieves a single concept by ID.
	// Returns ErrNotFound if the concept doesn't exist.
	GetConcept(ctx context.Context, id core.ID) (*core.Concept, error)

	// GetConceptsByMaterial retrieves all concepts extracted from a
	// material, ordered by ID ascending.
	GetConceptsByMaterial(ctx context.Context, materialID core.ID) ([]*core.Concept, error)
}

// VideoRepository provides operations for videos, their transcript
// chunks, and concept-to-chunk matches.
type VideoRepository interface {
	Repository
	// GetOrCreateVideo finds a video by its external identifier or
	// stores the given one. Returns the stored video; reruns never
	// create duplicates for the same external identifier.
	GetOrCreateVideo(ctx context.Context, video *core.Video) (*core.Video, error)

	// GetVideo retrieves a video by internal ID.
	// Returns ErrNotFound if the video doesn't exist.
	GetVideo(ctx context.Context, id core.ID) (*core.Video, error)

	// ListVideos retrieves all stored videos.
	ListVideos(ctx context.Context) ([]*core.Video, error)

	// AddChunks stores transcript chunks. Chunk IDs are content-based
	// on (video, start, end), so re-storing the same window overwrites
	// rather than duplicates.
	AddChunks(ctx context.Context, chunks ...*core.TranscriptChunk) ([]*core.TranscriptChunk, error)

	// UpdateChunks updates existing chunks.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any chunk doesn't exist.
	UpdateChunks(ctx context.Context, chunks ...*core.TranscriptChunk) ([]*core.TranscriptChunk, error)

	// GetChunk retrieves the chunk for a specific window of a video.
	// Returns ErrNotFound if no chunk covers that window.
	GetChunk(ctx context.Context, videoID string, start, end float64) (*core.TranscriptChunk, error)

	// GetChunksByVideo retrieves all chunks of a video ordered by
	// start time.
	GetChunksByVideo(ctx context.Context, videoID core.ID) ([]*core.TranscriptChunk, error)

	// UpsertMatch stores or refreshes the match between a concept and a
	// chunk. The (concept, chunk) pair is unique; an existing match
	// keeps its InsertedAt and gets the new similarity and rationale.
	UpsertMatch(ctx context.Context, match *core.ConceptMatch) (*core.ConceptMatch, error)

	// GetMatchesByConcept retrieves all matches for a concept ordered
	// by similarity descending.
	GetMatchesByConcept(ctx context.Context, conceptID core.ID) ([]*core.ConceptMatch, error)

	// FindSimilarChunks scans all stored chunk vectors and returns
	// those with similarity >= minSimilarity to the given vector, up to
	// limit results, ordered by similarity descending.
	FindSimilarChunks(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]core.ChunkMatch, error)
}
