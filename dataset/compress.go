package dataset

import (
	"bytes"
	"io"
	"path"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies a supported input encoding.
type Compression string

const (
	CompressionNone Compression = ""
	CompressionZstd Compression = "zstd"
	CompressionGzip Compression = "gzip"
	CompressionLZ4  Compression = "lz4"
)

// CompressionFor infers the compression of a blob from its extension.
func CompressionFor(name string) Compression {
	switch path.Ext(name) {
	case ".zst", ".zstd":
		return CompressionZstd
	case ".gz":
		return CompressionGzip
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// Decompress wraps r with the decoder matching name's extension.
// Unknown extensions pass r through unchanged.
func Decompress(name string, r io.Reader) (io.ReadCloser, error) {
	switch CompressionFor(name) {
	case CompressionZstd:
		dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case CompressionGzip:
		return gzip.NewReader(r)
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}

// Compress encodes data with c. It is the inverse of Decompress.
func Compress(c Compression, data []byte) ([]byte, error) {
	switch c {
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	case CompressionGzip:
		return writeAll(func(w io.Writer) io.WriteCloser { return gzip.NewWriter(w) }, data)
	case CompressionLZ4:
		return writeAll(func(w io.Writer) io.WriteCloser { return lz4.NewWriter(w) }, data)
	default:
		return data, nil
	}
}

func writeAll(wrap func(io.Writer) io.WriteCloser, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := wrap(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
