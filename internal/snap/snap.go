// Package snap frames an ordered set of key/value records into a single
// binary snapshot blob. Record order is significant: the persistence layer
// writes oldest-first, and load replays the same order as the initial
// recency order.
package snap

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const version byte = 1

var (
	ErrCorrupt = errors.New("snap: corrupt snapshot")
	magic4     = [...]byte{'L', 'R', 'U', 'D'}
)

const (
	// HeaderLen is the fixed framing cost of any snapshot:
	// magic(4) | ver(1) | n(u32 be).
	HeaderLen = 4 + 1 + 4

	// RecordOverhead is the framing cost of one record beyond its key and
	// payload bytes: klen(u32 be) | vlen(u32 be).
	RecordOverhead = 4 + 4
)

// Record is one encoded cache entry. Key and Value hold codec output, not
// the caller's in-memory representations.
type Record struct {
	Key   []byte
	Value []byte
}

// Len returns the encoded size of the record including framing.
func (r Record) Len() int64 {
	return RecordOverhead + int64(len(r.Key)) + int64(len(r.Value))
}

// EncodedLen returns the exact byte length Encode would produce for recs.
// Snapshot size is additive over records, which lets the trimmer subtract
// per-record sizes instead of re-encoding after each eviction.
func EncodedLen(recs []Record) int64 {
	total := int64(HeaderLen)
	for _, r := range recs {
		total += r.Len()
	}
	return total
}

// Encode frames recs in order:
//
//	magic(4) | ver(1) | n(u32 be)
//	klen(u32 be) | key(klen) | vlen(u32 be) | payload(vlen)  * n
func Encode(recs []Record) []byte {
	var buf bytes.Buffer
	buf.Grow(int(EncodedLen(recs)))

	buf.Write(magic4[:])
	buf.WriteByte(version)

	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(len(recs)))
	buf.Write(u4[:])

	for _, r := range recs {
		binary.BigEndian.PutUint32(u4[:], uint32(len(r.Key)))
		buf.Write(u4[:])
		buf.Write(r.Key)

		binary.BigEndian.PutUint32(u4[:], uint32(len(r.Value)))
		buf.Write(u4[:])
		buf.Write(r.Value)
	}

	return buf.Bytes()
}

// Decode parses a snapshot produced by Encode, preserving record order.
// Key and Value subslices alias b. Trailing bytes after the last record
// mean the blob was not written by Encode and are rejected.
func Decode(b []byte) ([]Record, error) {
	if len(b) < HeaderLen || !bytes.Equal(b[:4], magic4[:]) || b[4] != version {
		return nil, ErrCorrupt
	}

	n := int(binary.BigEndian.Uint32(b[5:9]))
	off := HeaderLen

	// cap pre-allocation; a corrupt n must not drive a giant alloc
	recs := make([]Record, 0, min(n, 1024))
	for i := 0; i < n; i++ {
		if off+4 > len(b) {
			return nil, ErrCorrupt
		}
		klen := int(binary.BigEndian.Uint32(b[off : off+4]))
		off += 4
		if klen < 0 || klen > len(b)-off {
			return nil, ErrCorrupt
		}
		key := b[off : off+klen]
		off += klen

		if off+4 > len(b) {
			return nil, ErrCorrupt
		}
		vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
		off += 4
		if vlen < 0 || vlen > len(b)-off {
			return nil, ErrCorrupt
		}
		val := b[off : off+vlen]
		off += vlen

		recs = append(recs, Record{Key: key, Value: val})
	}

	if off != len(b) {
		return nil, ErrCorrupt
	}
	return recs, nil
}
