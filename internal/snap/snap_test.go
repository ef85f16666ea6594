package snap

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func mustDecode(t *testing.T, b []byte) []Record {
	t.Helper()
	recs, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	return recs
}

func TestRoundTripPreservesOrder(t *testing.T) {
	cases := [][]Record{
		nil, // n=0
		{{Key: []byte("a"), Value: []byte("x")}},
		{
			{Key: []byte("old"), Value: []byte("1")},
			{Key: []byte("mid"), Value: nil}, // empty payload
			{Key: nil, Value: []byte("2")},   // empty key bytes
			{Key: []byte("new"), Value: []byte{9, 8, 7}},
		},
	}
	for _, recs := range cases {
		enc := Encode(recs)
		got := mustDecode(t, enc)
		if len(got) != len(recs) {
			t.Fatalf("len mismatch: got %d want %d", len(got), len(recs))
		}
		for i := range recs {
			if !bytes.Equal(got[i].Key, recs[i].Key) || !bytes.Equal(got[i].Value, recs[i].Value) {
				t.Fatalf("record %d mismatch: got=%+v want=%+v", i, got[i], recs[i])
			}
		}
	}
}

func TestEncodedLenMatchesEncode(t *testing.T) {
	cases := [][]Record{
		nil,
		{{Key: []byte("k"), Value: []byte("value")}},
		{
			{Key: []byte("aa"), Value: bytes.Repeat([]byte("v"), 300)},
			{Key: []byte("bb"), Value: nil},
		},
	}
	for _, recs := range cases {
		if got, want := EncodedLen(recs), int64(len(Encode(recs))); got != want {
			t.Fatalf("EncodedLen=%d but len(Encode)=%d", got, want)
		}
	}
}

func TestDecodeRejectsCorruptHeaders(t *testing.T) {
	enc := Encode([]Record{{Key: []byte("k"), Value: []byte("abc")}})

	// bad magic
	badMagic := append([]byte(nil), enc...)
	badMagic[0] = 'X'
	if _, err := Decode(badMagic); err == nil {
		t.Fatalf("expected error on bad magic")
	}

	// wrong version
	badVer := append([]byte(nil), enc...)
	badVer[4] = version + 1
	if _, err := Decode(badVer); err == nil {
		t.Fatalf("expected error on bad version")
	}

	// too short to carry a header
	if _, err := Decode(enc[:HeaderLen-1]); err == nil {
		t.Fatalf("expected error on short buffer")
	}
}

func TestDecodeRejectsBadLengths(t *testing.T) {
	enc := Encode([]Record{{Key: []byte("k"), Value: []byte("abc")}})

	// klen beyond buffer: klen at offset 9
	badKlen := append([]byte(nil), enc...)
	binary.BigEndian.PutUint32(badKlen[9:13], uint32(len(enc)))
	if _, err := Decode(badKlen); err == nil {
		t.Fatalf("expected error on klen beyond buffer")
	}

	// vlen beyond buffer: vlen at offset 9 + 4 + 1
	badVlen := append([]byte(nil), enc...)
	binary.BigEndian.PutUint32(badVlen[14:18], uint32(len("abc")+1))
	if _, err := Decode(badVlen); err == nil {
		t.Fatalf("expected error on vlen beyond buffer")
	}

	// truncated record body
	if _, err := Decode(enc[:len(enc)-1]); err == nil {
		t.Fatalf("expected error on truncated record")
	}
}

func TestDecodeRejectsTrailingBytes(t *testing.T) {
	enc := Encode([]Record{{Key: []byte("k"), Value: []byte("v")}})
	enc = append(enc, 0xDE, 0xAD)
	if _, err := Decode(enc); err == nil {
		t.Fatalf("expected error on trailing bytes")
	}
}

func TestDecodeBogusCountNoPanic(t *testing.T) {
	// header announcing 2^32-1 records with no bodies must error cleanly
	var buf bytes.Buffer
	buf.Write([]byte{'L', 'R', 'U', 'D'})
	buf.WriteByte(version)
	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], ^uint32(0))
	buf.Write(u4[:])
	if _, err := Decode(buf.Bytes()); err == nil {
		t.Fatalf("expected error on bogus record count")
	}
}

func TestDecodeZeroCopySlices(t *testing.T) {
	enc := Encode([]Record{{Key: []byte("k"), Value: []byte("Z")}})
	recs := mustDecode(t, enc)
	recs[0].Value[0] = 'Q'
	recs2 := mustDecode(t, enc)
	if recs2[0].Value[0] != 'Q' {
		t.Fatalf("expected decoded slices to alias the input buffer")
	}
}
