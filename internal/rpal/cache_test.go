package rpal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ControlStore_binaryRoundTrip(t *testing.T) {
	tree := parseSource(t, "let x = 5 in Print x")
	store := Compile(Standardize(tree))

	enc, err := EncodeControlStore(store)
	require.NoError(t, err)

	decoded, err := DecodeControlStore(enc)
	require.NoError(t, err)

	assert.Equal(t, store, decoded)
}

func Test_CacheKey_sensitiveToContent(t *testing.T) {
	a := CacheKey([]byte("let x = 5 in Print x"))
	b := CacheKey([]byte("let x = 6 in Print x"))
	assert.NotEqual(t, a, b)

	same := CacheKey([]byte("let x = 5 in Print x"))
	assert.Equal(t, a, same)
}

func Test_StoreCached_thenLoadCached(t *testing.T) {
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "prog.rpal")

	tree := parseSource(t, "Print (1,2,3)")
	store := Compile(Standardize(tree))
	key := CacheKey([]byte("Print (1,2,3)"))

	require.NoError(t, StoreCached(sourcePath, key, store))

	loaded, ok := LoadCached(sourcePath, key)
	require.True(t, ok)
	assert.Equal(t, store, loaded)
}

func Test_LoadCached_missingSidecarMisses(t *testing.T) {
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "prog.rpal")

	_, ok := LoadCached(sourcePath, "anykey")
	assert.False(t, ok)
}

func Test_LoadCached_keyMismatchMisses(t *testing.T) {
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "prog.rpal")

	tree := parseSource(t, "Print 1")
	store := Compile(Standardize(tree))
	require.NoError(t, StoreCached(sourcePath, "key-one", store))

	_, ok := LoadCached(sourcePath, "key-two")
	assert.False(t, ok)
}
