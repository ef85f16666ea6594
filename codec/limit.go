package codec

import "fmt"

// Limit wraps another codec and rejects Decode payloads larger than
// MaxDecode bytes before the inner codec sees them. Encode passes through
// unchanged. MaxDecode <= 0 disables the check.
//
// Typical use: a backing file shared with older runs where a single
// oversized entry should fail loudly instead of ballooning memory.
type Limit[V any] struct {
	// Inner is the wrapped codec. It must be set.
	Inner Codec[V]
	// MaxDecode is the maximum permitted payload length for Decode.
	MaxDecode int
}

func (c Limit[V]) Encode(v V) ([]byte, error) { return c.Inner.Encode(v) }

func (c Limit[V]) Decode(b []byte) (V, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		var zero V
		return zero, fmt.Errorf("codec: payload too large: %d > %d", len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
