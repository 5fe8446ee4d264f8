package allocate

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Run IDs are ULIDs: a 48-bit millisecond timestamp followed by 80 random
// bits, rendered as 26 Crockford Base32 characters. Plans and cache entries
// tagged with a run ID therefore sort chronologically, and log lines from
// concurrent runs stay distinguishable.

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

func newRunID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], ts<<16)
	rand.Read(b[6:])
	// A counter in the top random bytes keeps IDs from the same
	// millisecond unique and ordered.
	binary.BigEndian.PutUint16(b[6:8], lastSeq)

	return encode(b)
}

// encode renders 128 bits as 26 Base32 characters. 26 chars hold 130 bits,
// so the first character carries only the top 3 bits of the timestamp.
func encode(b [16]byte) string {
	var out [26]byte
	for i := range out {
		start := i*5 - 2
		var v byte
		for bit := start; bit < start+5; bit++ {
			v <<= 1
			if bit >= 0 && b[bit/8]>>(7-bit%8)&1 == 1 {
				v |= 1
			}
		}
		out[i] = crockford[v]
	}
	return string(out[:])
}
