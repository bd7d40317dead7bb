package fileenc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := []byte("%PDF-1.4 fake resume content \x00\x01\x02")

	enc, err := EncodeBytes("resume.pdf", "application/pdf", original)
	require.NoError(t, err)
	require.Equal(t, "resume.pdf", enc.FileName)
	require.Equal(t, "application/pdf", enc.ContentType)
	require.NotContains(t, enc.Data, ",", "data must carry no format prefix")

	decoded, err := Decode(enc)
	require.NoError(t, err)
	require.Equal(t, original, decoded)
}

func TestEncodeBytesRejectsEmpty(t *testing.T) {
	_, err := EncodeBytes("empty.pdf", "application/pdf", nil)
	require.ErrorIs(t, err, ErrEmptyFile)
}

func TestEncodeFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	content := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
	require.NoError(t, os.WriteFile(path, content, 0o600))

	enc, err := Encode(path)
	require.NoError(t, err)
	require.Equal(t, "photo.png", enc.FileName)
	require.Contains(t, enc.ContentType, "image/png")

	decoded, err := Decode(enc)
	require.NoError(t, err)
	require.Equal(t, content, decoded)
}

func TestEncodeMissingFile(t *testing.T) {
	_, err := Encode(filepath.Join(t.TempDir(), "nope.pdf"))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestEncodeEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zero.pdf")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := Encode(path)
	require.ErrorIs(t, err, ErrEmptyFile)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(Encoded{FileName: "x", Data: "not base64!!!"})
	require.Error(t, err)
}

func TestDetectContentTypeFallsBackToSniffing(t *testing.T) {
	// No extension at all; content sniffing should identify the PNG.
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
	ct := detectContentType("upload", png)
	require.Equal(t, "image/png", ct)
}
