package lpmcore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gizzahub/lpmcore"
	"github.com/gizzahub/lpmcore/httpfetch"
)

func TestNewRegistryPopulatesGlobals(t *testing.T) {
	reg := lpmcore.New([]string{"lpm", "sync"}, nil)
	require.NotNil(t, reg.Globals)
	assert.Equal(t, []string{"lpm", "sync"}, reg.Globals.Argv)
}

func TestRegistryHashStringMatchesKnownVector(t *testing.T) {
	reg := lpmcore.New(nil, nil)
	digest, err := reg.Hash("abc", "string")
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", digest)
}

func TestRegistryHashFileMatchesHashString(t *testing.T) {
	reg := lpmcore.New(nil, nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	fileDigest, err := reg.Hash(path, "file")
	require.NoError(t, err)
	stringDigest, err := reg.Hash("abc", "string")
	require.NoError(t, err)
	assert.Equal(t, stringDigest, fileDigest)
}

func TestRegistryLsExcludesDotEntries(t *testing.T) {
	reg := lpmcore.New(nil, nil)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))

	names, err := reg.Ls(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, names)
}

func TestRegistryMkdirRmdirRoundTrip(t *testing.T) {
	reg := lpmcore.New(nil, nil)
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, reg.Mkdir(dir))
	info, err := reg.Stat(dir)
	require.NoError(t, err)
	require.NotNil(t, info)

	require.NoError(t, reg.Rmdir(filepath.Dir(dir)))
	info, err = reg.Stat(dir)
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestRegistryFlockRunsBody(t *testing.T) {
	reg := lpmcore.New(nil, nil)
	dir := t.TempDir()

	var ran bool
	err := reg.Flock(dir, func(path string) error {
		ran = true
		return nil
	}, nil, nil)
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestRegistryTimeIsMonotonicAcrossCalls(t *testing.T) {
	reg := lpmcore.New(nil, nil)
	first := reg.Time()
	second := reg.Time()
	assert.GreaterOrEqual(t, second, first)
}

func TestRegistryCertsAndTraceDoNotError(t *testing.T) {
	reg := lpmcore.New(nil, nil)
	require.NoError(t, reg.Certs(httpfetch.CertNoVerify, ""))
	reg.Trace(true)
	defer reg.Trace(false)
}

func TestRegistryRevparseMissingRepoFails(t *testing.T) {
	reg := lpmcore.New(nil, nil)
	_, err := reg.Revparse(context.Background(), filepath.Join(t.TempDir(), "does-not-exist"), "")
	assert.Error(t, err)
}
