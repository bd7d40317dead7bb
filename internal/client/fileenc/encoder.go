// Package fileenc converts binary files into the transport-safe attachment
// form the registration endpoint accepts: standard base64 content with the
// original filename and declared content type alongside. It is purely
// functional and knows nothing about registration state.
package fileenc

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
)

// ErrEmptyFile rejects zero-byte attachments.
var ErrEmptyFile = errors.New("file is empty")

// Encoded is a transport-safe attachment: Data is the raw content as
// standard base64 with no format prefix, ContentType carries the type
// explicitly.
type Encoded struct {
	FileName    string
	ContentType string
	Data        string
}

// Encode reads the file at path and encodes its full content. I/O failures
// are surfaced wrapped; a zero-byte file yields ErrEmptyFile.
func Encode(path string) (Encoded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Encoded{}, fmt.Errorf("read %s: %w", path, err)
	}
	name := filepath.Base(path)
	return EncodeBytes(name, detectContentType(name, data), data)
}

// EncodeBytes encodes an in-memory buffer under the given name and type.
func EncodeBytes(name, contentType string, data []byte) (Encoded, error) {
	if len(data) == 0 {
		return Encoded{}, fmt.Errorf("%s: %w", name, ErrEmptyFile)
	}
	return Encoded{
		FileName:    name,
		ContentType: contentType,
		Data:        base64.StdEncoding.EncodeToString(data),
	}, nil
}

// Decode recovers the original bytes from an encoded attachment.
func Decode(e Encoded) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(e.Data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", e.FileName, err)
	}
	return data, nil
}

// detectContentType prefers the filename extension and falls back to
// content sniffing.
func detectContentType(name string, data []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}
