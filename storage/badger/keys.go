package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/recall/core"
)

// Key prefixes for different data types
const (
	noteRecordPrefix = "notrec"
	noteOwnerPrefix  = "notown"
	noteIDSeq        = "notrecseq"
)

// makeNoteKey generates a key for a note by ID.
func makeNoteKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", noteRecordPrefix, id))
}

// makeNoteOwnerKey generates a composite key for the owner index.
// Format: prefix:owner:updatedAt:id
func makeNoteOwnerKey(owner string, updatedAt time.Time, id core.ID) []byte {
	prefixBytes := makePartialNoteOwnerKey(owner)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(updatedAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialNoteOwnerKey generates the owner-scoped prefix of the owner index.
// Format: prefix:owner:
func makePartialNoteOwnerKey(owner string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", noteOwnerPrefix, owner))
}

// makeNoteOwnerCeilingKey generates a key sorting after every owner index
// entry for the given owner. Used as the seek target for reverse scans.
func makeNoteOwnerCeilingKey(owner string) []byte {
	prefixBytes := makePartialNoteOwnerKey(owner)
	buf := make([]byte, len(prefixBytes)+16)
	offset := copy(buf, prefixBytes)
	for i := offset; i < len(buf); i++ {
		buf[i] = 0xFF
	}
	return buf
}
