// Package memo wraps plain functions so their results are cached in a
// lrudisk cache keyed on the arguments. It is a thin client of
// Cache.GetOrLoad: a hit returns the stored result without calling the
// function; a miss calls it once and stores the result; an error from the
// function propagates and nothing is cached.
package memo

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/unkn0wn-root/lrudisk"
	"github.com/unkn0wn-root/lrudisk/codec"
)

// canonical CBOR: equal argument tuples must hash identically across runs
var argEnc = codec.MustCBOR[[]any](true)

// Key builds a deterministic cache key for a named function applied to
// args. Arguments must be CBOR-encodable.
func Key(name string, args ...any) (string, error) {
	b, err := argEnc.Encode(args)
	if err != nil {
		return "", fmt.Errorf("memo: encode args for %s: %w", name, err)
	}
	return fmt.Sprintf("%s:%016x", name, xxhash.Sum64(b)), nil
}

// Func1 memoizes a one-argument function. name must be unique per function
// within the cache (package-qualified names work well).
//
// Arguments that cannot be encoded bypass the cache and call fn directly.
func Func1[A, R any](c lrudisk.Cache[string, R], name string, fn func(A) (R, error)) func(A) (R, error) {
	return func(a A) (R, error) {
		key, err := Key(name, a)
		if err != nil {
			return fn(a)
		}
		return c.GetOrLoad(key, func() (R, error) { return fn(a) })
	}
}

// Func2 memoizes a two-argument function.
func Func2[A, B, R any](c lrudisk.Cache[string, R], name string, fn func(A, B) (R, error)) func(A, B) (R, error) {
	return func(a A, b B) (R, error) {
		key, err := Key(name, a, b)
		if err != nil {
			return fn(a, b)
		}
		return c.GetOrLoad(key, func() (R, error) { return fn(a, b) })
	}
}
