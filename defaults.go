package lrudisk

// DefaultMaxBytes bounds the encoded snapshot when Options.MaxBytes is 0.
const DefaultMaxBytes int64 = 1 << 30 // 1 GiB

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
