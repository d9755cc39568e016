package testutil

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeIOExistsOnlyForRegisteredFiles(t *testing.T) {
	fio := NewFakeIO().WithTextFile("a.obj", "v 0 0 0\n")

	assert.True(t, fio.Exists("a.obj"))
	assert.False(t, fio.Exists("b.obj"))
}

func TestFakeIOOpenReadsFullContent(t *testing.T) {
	fio := NewFakeIO().WithTextFile("a.obj", "v 0 0 0\n")

	stream, err := fio.Open("a.obj")
	require.NoError(t, err)
	defer stream.Close()

	data, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, "v 0 0 0\n", string(data))
}

func TestFakeIOOpenUnknownPathErrors(t *testing.T) {
	fio := NewFakeIO()

	_, err := fio.Open("missing.obj")
	require.Error(t, err)
}

func TestFakeIOStreamSeekAndTell(t *testing.T) {
	fio := NewFakeIO().WithTextFile("a.obj", "0123456789")

	stream, err := fio.Open("a.obj")
	require.NoError(t, err)
	defer stream.Close()

	pos, err := stream.Seek(5, io.SeekStart)
	require.NoError(t, err)
	assert.EqualValues(t, 5, pos)

	tell, err := stream.Tell()
	require.NoError(t, err)
	assert.EqualValues(t, 5, tell)

	size, err := stream.Size()
	require.NoError(t, err)
	assert.EqualValues(t, 10, size)
}
