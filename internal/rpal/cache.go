package rpal

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dekarrin/rezi"
)

// A compiled ControlStore is deterministic in its source text, so rather
// than recompile on every run it is cached next to the source as a .rpalc
// sidecar, keyed by a content hash. This mirrors the teacher's own
// binary-marshal-then-sidecar-file idiom in internal/tunascript/binary.go,
// adapted from that package's token/tokenClass encoding to ControlStore.

// CacheKey is the content hash used both to name and to validate a .rpalc
// sidecar; two source files differing by a single byte never share a cache.
func CacheKey(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

func sidecarPath(sourcePath string) string {
	return sourcePath + ".rpalc"
}

// encBinaryString length-prefixes a string with its byte count, following
// tunascript/binary.go's encBinaryString (that function counts runes; this
// one counts bytes on both the encoding and the decoding side, so a label
// holding a non-ASCII string literal round-trips unchanged).
func encBinaryString(s string) []byte {
	out := make([]byte, 8, 8+len(s))
	binary.BigEndian.PutUint64(out, uint64(len(s)))
	return append(out, s...)
}

func decBinaryString(data []byte) (string, int, error) {
	if len(data) < 8 {
		return "", 0, internalErrorf("cache: truncated string length")
	}
	n := int(binary.BigEndian.Uint64(data))
	if len(data) < 8+n {
		return "", 0, internalErrorf("cache: truncated string data")
	}
	return string(data[8 : 8+n]), 8 + n, nil
}

func encBinaryInt(i int) []byte {
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, uint64(i))
	return out
}

func decBinaryInt(data []byte) (int, int, error) {
	if len(data) < 8 {
		return 0, 0, internalErrorf("cache: truncated int")
	}
	return int(binary.BigEndian.Uint64(data)), 8, nil
}

// MarshalBinary encodes a single ControlItem as Kind, Index, N (each a fixed
// 8 bytes) followed by the length-prefixed Label and Vars strings, in that
// order -- the same sequential field-at-a-time layout binary.go uses for
// token.MarshalBinary.
func (c ControlItem) MarshalBinary() ([]byte, error) {
	var out []byte
	out = append(out, encBinaryInt(int(c.Kind))...)
	out = append(out, encBinaryInt(c.Index)...)
	out = append(out, encBinaryInt(c.N)...)
	out = append(out, encBinaryString(c.Label)...)
	out = append(out, encBinaryString(c.Vars)...)
	return out, nil
}

func (c *ControlItem) UnmarshalBinary(data []byte) error {
	kind, n, err := decBinaryInt(data)
	if err != nil {
		return err
	}
	data = data[n:]

	index, n, err := decBinaryInt(data)
	if err != nil {
		return err
	}
	data = data[n:]

	count, n, err := decBinaryInt(data)
	if err != nil {
		return err
	}
	data = data[n:]

	label, n, err := decBinaryString(data)
	if err != nil {
		return err
	}
	data = data[n:]

	vars, _, err := decBinaryString(data)
	if err != nil {
		return err
	}

	c.Kind = ControlKind(kind)
	c.Index = index
	c.N = count
	c.Label = label
	c.Vars = vars
	return nil
}

// MarshalBinary encodes the whole ControlStore as its list count followed by
// each []ControlItem slot's own count-prefixed items.
func (cs ControlStore) MarshalBinary() ([]byte, error) {
	var out []byte
	out = append(out, encBinaryInt(len(cs))...)
	for _, slot := range cs {
		out = append(out, encBinaryInt(len(slot))...)
		for _, item := range slot {
			enc, err := item.MarshalBinary()
			if err != nil {
				return nil, err
			}
			out = append(out, encBinaryInt(len(enc))...)
			out = append(out, enc...)
		}
	}
	return out, nil
}

func (cs *ControlStore) UnmarshalBinary(data []byte) error {
	slotCount, n, err := decBinaryInt(data)
	if err != nil {
		return err
	}
	data = data[n:]

	store := make(ControlStore, slotCount)
	for i := 0; i < slotCount; i++ {
		itemCount, n, err := decBinaryInt(data)
		if err != nil {
			return err
		}
		data = data[n:]

		items := make([]ControlItem, itemCount)
		for j := 0; j < itemCount; j++ {
			itemLen, n, err := decBinaryInt(data)
			if err != nil {
				return err
			}
			data = data[n:]
			if len(data) < itemLen {
				return internalErrorf("cache: truncated control item")
			}
			if err := items[j].UnmarshalBinary(data[:itemLen]); err != nil {
				return err
			}
			data = data[itemLen:]
		}
		store[i] = items
	}
	*cs = store
	return nil
}

// EncodeControlStore serializes cs for on-disk storage, wrapping the
// hand-rolled ControlStore binary layout with rezi's own length-prefixed
// envelope the way sqlite.go's session rows wrap a game.State.
func EncodeControlStore(cs ControlStore) ([]byte, error) {
	return rezi.EncBinary(cs), nil
}

// DecodeControlStore is the inverse of EncodeControlStore.
func DecodeControlStore(data []byte) (ControlStore, error) {
	var cs ControlStore
	if _, err := rezi.DecBinary(data, &cs); err != nil {
		return nil, internalErrorf("cache: decoding control store: %s", err.Error())
	}
	return cs, nil
}

// LoadCached reads sourcePath's .rpalc sidecar and returns its compiled
// ControlStore if, and only if, the sidecar's recorded key matches key (the
// source's current content hash). A missing or stale sidecar is not an
// error: callers fall back to recompiling.
func LoadCached(sourcePath, key string) (ControlStore, bool) {
	data, err := os.ReadFile(sidecarPath(sourcePath))
	if err != nil {
		return nil, false
	}
	if len(data) < len(key) || string(data[:len(key)]) != key {
		return nil, false
	}
	cs, err := DecodeControlStore(data[len(key):])
	if err != nil {
		return nil, false
	}
	return cs, true
}

// StoreCached writes cs to sourcePath's .rpalc sidecar, prefixed with key so
// a later run can cheaply tell whether the cache still matches the source.
// Write failures are non-fatal: caching is an optimization, not a
// correctness requirement, so the error is reported only for diagnostics.
func StoreCached(sourcePath, key string, cs ControlStore) error {
	enc, err := EncodeControlStore(cs)
	if err != nil {
		return err
	}
	payload := append([]byte(key), enc...)
	path := sidecarPath(sourcePath)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
