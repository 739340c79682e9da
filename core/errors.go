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

import "errors"

// Domain validation errors
var (
	// ErrInvalidMaterial indicates a Material failed validation.
	ErrInvalidMaterial = errors.New("invalid material")

	// ErrInvalidConcept indicates a Concept failed validation.
	ErrInvalidConcept = errors.New("invalid concept")

	// ErrInvalidVideo indicates a Video failed validation.
	ErrInvalidVideo = errors.New("invalid video")

	// ErrInvalidChunk indicates a TranscriptChunk failed validation.
	ErrInvalidChunk = errors.New("invalid transcript chunk")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrInvalidStatus indicates an invalid ProcessingStatus value.
	ErrInvalidStatus = errors.New("invalid processing status")

	// ErrEmptyVideoID indicates the external video ID is empty.
	ErrEmptyVideoID = errors.New("video id cannot be empty")

	// ErrInvalidChunkWindow indicates a chunk window with start >= end.
	ErrInvalidChunkWindow = errors.New("chunk start must be before end")

	// ErrNegativePriority indicates a concept priority below zero.
	ErrNegativePriority = errors.New("priority cannot be negative")
)
