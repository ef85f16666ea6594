package codec

import (
	"bytes"
	"testing"
)

func TestDeterministicCBORStableBytes(t *testing.T) {
	c := MustCBOR[map[string]int](true)
	m := map[string]int{"zz": 1, "aa": 2, "mm": 3}

	first, err := c.Encode(m)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for i := 0; i < 10; i++ {
		b, err := c.Encode(m)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		if !bytes.Equal(first, b) {
			t.Fatalf("canonical encoding produced unstable bytes")
		}
	}
}

func TestLimitRejectsOversizedPayload(t *testing.T) {
	c := Limit[string]{Inner: String{}, MaxDecode: 4}

	if _, err := c.Decode([]byte("okay")); err != nil {
		t.Fatalf("payload at the limit should pass: %v", err)
	}
	if _, err := c.Decode([]byte("too big")); err == nil {
		t.Fatalf("expected error above MaxDecode")
	}

	// Encode is never limited
	if b, err := c.Encode("well over the decode limit"); err != nil || len(b) <= 4 {
		t.Fatalf("Encode should pass through: b=%q err=%v", b, err)
	}
}
