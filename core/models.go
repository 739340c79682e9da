package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ChunkIdentity builds the canonical identity string for a transcript chunk.
// Chunks are unique per (video, start, end); hashing this string yields a
// stable ID so re-ingesting the same transcript never duplicates chunks.
func ChunkIdentity(videoID string, startSeconds, endSeconds float64) string {
	return fmt.Sprintf("%s@%.3f-%.3f", videoID, startSeconds, endSeconds)
}

// ProcessingStatus tracks a material through the matching pipeline.
type ProcessingStatus int

const (
	// StatusPending means the material is stored but processing has not started.
	StatusPending ProcessingStatus = iota + 1
	// StatusExtracting means the pipeline is currently running.
	StatusExtracting
	// StatusReady means processing finished and matches are available.
	StatusReady
	// StatusFailed means the material record itself could not be processed.
	StatusFailed
)

// String returns the lowercase name of the status.
func (s ProcessingStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusExtracting:
		return "extracting"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Material represents an uploaded or ingested study source.
// Status is the only field the pipeline mutates after creation.
type Material struct {
	Id          ID
	Title       string
	TextContent string
	Status      ProcessingStatus
	Metadata    map[string]string // Optional metadata (e.g., "source", "filename")
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// Concept is a short extracted idea from a material's text.
// Priority is the zero-based insertion order from extraction.
type Concept struct {
	Id         ID
	MaterialId ID
	Title      string
	Summary    string
	Priority   int
	Vector     []float32 // Embedding vector (filled in by the pipeline when the extractor returns none)
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// Video holds metadata for an external video referenced by the pipeline.
// VideoID is the opaque external key; the internal Id is derived from it
// so lookups by external key are plain key reads.
type Video struct {
	Id              ID
	VideoID         string
	Title           string
	ChannelTitle    string
	Description     string
	ThumbnailURL    string
	DurationSeconds int
	InsertedAt      time.Time
	UpdatedAt       time.Time
}

// TranscriptChunk is a fixed-duration window of a video transcript,
// embeddable and matchable like a concept.
type TranscriptChunk struct {
	Id           ID
	VideoId      ID
	StartSeconds float64
	EndSeconds   float64
	Text         string
	Vector       []float32 // Embedding vector, computed once and reused across concepts
	InsertedAt   time.Time
	UpdatedAt    time.Time
}

// ConceptMatch links one concept to one transcript chunk.
// The (ConceptId, ChunkId) pair is unique; re-running the matcher
// overwrites Similarity and Rationale rather than duplicating.
type ConceptMatch struct {
	ConceptId  ID
	ChunkId    ID
	Similarity float32
	Rationale  string
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// ChunkMatch is a scored chunk produced by the matcher before persistence.
type ChunkMatch struct {
	Chunk *TranscriptChunk
	Score float32
}

// MomentResult is a search hit pairing a transcript chunk with its video.
type MomentResult struct {
	Chunk *TranscriptChunk
	Video *Video
	Score float32
}
