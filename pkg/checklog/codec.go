package checklog

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"fmt"
	"io"
)

// Encode gzips raw and base64 encodes the result, the archive format.
func Encode(raw []byte) ([]byte, error) {
	var zipped bytes.Buffer

	zw := gzip.NewWriter(&zipped)
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}

	out := make([]byte, base64.StdEncoding.EncodedLen(zipped.Len()))
	base64.StdEncoding.Encode(out, zipped.Bytes())
	return out, nil
}

// Decode reverses Encode.
func Decode(archived []byte) ([]byte, error) {
	zipped := make([]byte, base64.StdEncoding.DecodedLen(len(archived)))
	n, err := base64.StdEncoding.Decode(zipped, bytes.TrimSpace(archived))
	if err != nil {
		return nil, fmt.Errorf("base64: %w", err)
	}

	zr, err := gzip.NewReader(bytes.NewReader(zipped[:n]))
	if err != nil {
		return nil, fmt.Errorf("gunzip: %w", err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("gunzip: %w", err)
	}
	return raw, nil
}
