// Package search provides ad-hoc semantic search over transcript chunks.
//
// The Searcher type embeds a free-text query and scores it against every
// stored chunk vector, returning the best moments along with their video
// metadata. It works over whatever the pipeline has already ingested and
// never calls external video or transcript services.
package search
