package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/studyreel/studyreel/core"
)

// Key prefixes for different data types
const (
	materialRecordPrefix  = "matrec"
	materialIDSeq         = "matrecseq"
	conceptRecordPrefix   = "conrec"
	conceptMaterialPrefix = "conmat"
	conceptIDSeq          = "conrecseq"
	videoRecordPrefix     = "vidrec"
	chunkRecordPrefix     = "chkrec"
	chunkVideoPrefix      = "chkvid"
	matchRecordPrefix     = "mtcrec"
)

// makeMaterialKey generates a key for a material by ID.
func makeMaterialKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", materialRecordPrefix, id))
}

// makeConceptKey generates a key for a concept by ID.
func makeConceptKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", conceptRecordPrefix, id))
}

// makeConceptMaterialKey generates a composite key for the material index.
// Format: prefix:materialID:conceptID
func makeConceptMaterialKey(materialID, conceptID core.ID) []byte {
	prefix := conceptMaterialPrefix + ":"
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, []byte(prefix))
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(materialID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(conceptID))
	return buf
}

// makePartialConceptMaterialKey generates a partial key for material queries.
// Format: prefix:materialID
func makePartialConceptMaterialKey(materialID core.ID) []byte {
	prefix := conceptMaterialPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, []byte(prefix))
	binary.BigEndian.PutUint64(buf[offset:], uint64(materialID))
	return buf
}

// makeVideoKey generates a key for a video by internal ID.
func makeVideoKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", videoRecordPrefix, id))
}

// makeChunkKey generates a key for a transcript chunk by ID.
func makeChunkKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", chunkRecordPrefix, id))
}

// makeChunkVideoKey generates a composite key for the video index.
// Format: prefix:videoID:chunkID
func makeChunkVideoKey(videoID, chunkID core.ID) []byte {
	prefix := chunkVideoPrefix + ":"
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, []byte(prefix))
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(videoID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(chunkID))
	return buf
}

// makePartialChunkVideoKey generates a partial key for video queries.
// Format: prefix:videoID
func makePartialChunkVideoKey(videoID core.ID) []byte {
	prefix := chunkVideoPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, []byte(prefix))
	binary.BigEndian.PutUint64(buf[offset:], uint64(videoID))
	return buf
}

// makeMatchKey generates a composite key for a concept-chunk match.
// Format: prefix:conceptID:chunkID
func makeMatchKey(conceptID, chunkID core.ID) []byte {
	prefix := matchRecordPrefix + ":"
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, []byte(prefix))
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(conceptID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(chunkID))
	return buf
}

// makePartialMatchKey generates a partial key for concept queries.
// Format: prefix:conceptID
func makePartialMatchKey(conceptID core.ID) []byte {
	prefix := matchRecordPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, []byte(prefix))
	binary.BigEndian.PutUint64(buf[offset:], uint64(conceptID))
	return buf
}
