package pipeline

import "errors"

var (
	// ErrMaterialRepositoryRequired is returned when a material repository is not provided.
	ErrMaterialRepositoryRequired = errors.New("material repository required")

	// ErrConceptRepositoryRequired is returned when a concept repository is not provided.
	ErrConceptRepositoryRequired = errors.New("concept repository required")

	// ErrVideoRepositoryRequired is returned when a video repository is not provided.
	ErrVideoRepositoryRequired = errors.New("video repository required")

	// ErrExtractorRequired is returned when a concept extractor is not provided.
	ErrExtractorRequired = errors.New("concept extractor required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrSearcherRequired is returned when a video searcher is not provided.
	ErrSearcherRequired = errors.New("video searcher required")

	// ErrFetcherRequired is returned when a transcript fetcher is not provided.
	ErrFetcherRequired = errors.New("transcript fetcher required")
)
