package codec

// Bytes is an identity codec for []byte values: Encode/Decode return the
// input unchanged. Use it when values are already serialized and only the
// snapshot framing is wanted.
type Bytes struct{}

func (Bytes) Encode(b []byte) ([]byte, error) { return b, nil }
func (Bytes) Decode(b []byte) ([]byte, error) { return b, nil }

// String converts string values to/from raw bytes. Assumes UTF-8 by
// convention; no validation is performed. Byte-stable per value, so it is
// safe as a key codec.
type String struct{}

func (String) Encode(s string) ([]byte, error) { return []byte(s), nil }
func (String) Decode(b []byte) (string, error) { return string(b), nil }
