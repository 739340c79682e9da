// Package pipeline provides orchestration for processing learning materials.
//
// The Pipeline type manages the matching workflow for a material, including:
//   - Extracting concepts from the material text
//   - Discovering candidate videos per concept
//   - Fetching, chunking, and embedding video transcripts
//   - Scoring chunks against concepts and persisting matches
//
// The Trigger type dispatches materials onto a worker pool so callers
// return immediately. Errors during async processing are logged and
// reflected in the material's status.
package pipeline
