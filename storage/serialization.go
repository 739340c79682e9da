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

package storage

import (
	"github.com/studyreel/studyreel/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	var id core.ID
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalMaterial serializes a Material to bytes.
func MarshalMaterial(material *core.Material) []byte {
	buf := make([]byte, core.MaterialMUS.Size(*material))
	core.MaterialMUS.Marshal(*material, buf)
	return buf
}

// UnmarshalMaterial deserializes a Material from bytes.
func UnmarshalMaterial(data []byte) (*core.Material, error) {
	material, _, err := core.MaterialMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &material, nil
}

// MarshalConcept serializes a Concept to bytes.
func MarshalConcept(concept *core.Concept) []byte {
	buf := make([]byte, core.ConceptMUS.Size(*concept))
	core.ConceptMUS.Marshal(*concept, buf)
	return buf
}

// UnmarshalConcept deserializes a Concept from bytes.
func UnmarshalConcept(data []byte) (*core.Concept, error) {
	concept, _, err := core.ConceptMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &concept, nil
}

// MarshalVideo serializes a Video to bytes.
func MarshalVideo(video *core.Video) []byte {
	buf := make([]byte, core.VideoMUS.Size(*video))
	core.VideoMUS.Marshal(*video, buf)
	return buf
}

// UnmarshalVideo deserializes a Video from bytes.
func UnmarshalVideo(data []byte) (*core.Video, error) {
	video, _, err := core.VideoMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// MarshalChunk serializes a TranscriptChunk to bytes.
func MarshalChunk(chunk *core.TranscriptChunk) []byte {
	buf := make([]byte, core.TranscriptChunkMUS.Size(*chunk))
	core.TranscriptChunkMUS.Marshal(*chunk, buf)
	return buf
}

// UnmarshalChunk deserializes a TranscriptChunk from bytes.
func UnmarshalChunk(data []byte) (*core.TranscriptChunk, error) {
	chunk, _, err := core.TranscriptChunkMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &chunk, nil
}

// MarshalMatch serializes a ConceptMatch to bytes.
func MarshalMatch(match *core.ConceptMatch) []byte {
	buf := make([]byte, core.ConceptMatchMUS.Size(*match))
	core.ConceptMatchMUS.Marshal(*match, buf)
	return buf
}

// UnmarshalMatch deserializes a ConceptMatch from bytes.
func UnmarshalMatch(data []byte) (*core.ConceptMatch, error) {
	match, _, err := core.ConceptMatchMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &match, nil
}
