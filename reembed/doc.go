// Package reembed provides functionality for reembedding stored vectors
// with a new or updated embedding model.
//
// After a model change, stored chunk and concept vectors no longer live
// in the same space as freshly embedded queries. The Reembedder walks
// every transcript chunk and concept, regenerates its vector in batches,
// and writes the result back, with progress reporting and retry logic
// with exponential backoff.
package reembed
