// Copyright 2026 StudyReel Authors
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


package core

import "fmt"

// ValidateMaterial validates a Material according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Status must be a known ProcessingStatus
//
// NOT validated:
//   - TextContent (empty text is legal; extraction simply yields no concepts)
//   - ID (0 is valid before the database sequence assigns one)
func ValidateMaterial(material *Material) error {
	if material == nil {
		return fmt.Errorf("%w: material is nil", ErrInvalidMaterial)
	}

	if material.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMaterial, ErrEmptyTitle)
	}

	if err := ValidateProcessingStatus(material.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMaterial, err)
	}

	return nil
}

// ValidateConcept validates a Concept according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Priority must not be negative
//
// NOT validated (populated by the pipeline):
//   - Vector (can be empty until embedded)
//   - ID (0 is valid before the database sequence assigns one)
func ValidateConcept(concept *Concept) error {
	if concept == nil {
		return fmt.Errorf("%w: concept is nil", ErrInvalidConcept)
	}

	if concept.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConcept, ErrEmptyTitle)
	}

	if concept.Priority < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConcept, ErrNegativePriority)
	}

	return nil
}

// ValidateVideo validates a Video according to domain rules.
func ValidateVideo(video *Video) error {
	if video == nil {
		return fmt.Errorf("%w: video is nil", ErrInvalidVideo)
	}

	if video.VideoID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidVideo, ErrEmptyVideoID)
	}

	return nil
}

// ValidateChunk validates a TranscriptChunk according to domain rules.
//
// Validation rules:
//   - StartSeconds must be strictly before EndSeconds
//
// NOT validated:
//   - Vector (can be empty until embedded)
func ValidateChunk(chunk *TranscriptChunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.StartSeconds >= chunk.EndSeconds {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrInvalidChunkWindow)
	}

	return nil
}

// ValidateProcessingStatus validates that a ProcessingStatus has a known value.
func ValidateProcessingStatus(status ProcessingStatus) error {
	switch status {
	case StatusPending, StatusExtracting, StatusReady, StatusFailed:
		return nil
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidStatus, status)
	}
}
