package pipeline

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/ajitpratap0/strtemporal/pkg/errors"
)

// Compression identifies a stream codec by file extension.
type Compression string

const (
	None Compression = "none"
	Gzip Compression = "gzip"
	Zstd Compression = "zstd"
	LZ4  Compression = "lz4"
)

// CompressionFor infers the codec from the extension of path.
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

type multiCloser struct {
	io.Reader
	closers []func() error
}

func (m *multiCloser) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openInput opens path and decompresses it according to its extension.
func openInput(path string) (io.ReadCloser, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is supplied by the operator
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open input").WithDetail("path", path)
	}
	r, err := decompress(f, CompressionFor(path))
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open decompressor").WithDetail("path", path)
	}
	return r, nil
}

func decompress(rc io.ReadCloser, c Compression) (io.ReadCloser, error) {
	switch c {
	case Gzip:
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
		return &multiCloser{Reader: gz, closers: []func() error{gz.Close, rc.Close}}, nil
	case Zstd:
		dec, err := zstd.NewReader(rc)
		if err != nil {
			return nil, err
		}
		return &multiCloser{Reader: dec, closers: []func() error{
			func() error { dec.Close(); return nil },
			rc.Close,
		}}, nil
	case LZ4:
		return &multiCloser{Reader: lz4.NewReader(rc), closers: []func() error{rc.Close}}, nil
	default:
		return rc, nil
	}
}

type writeCloser struct {
	io.Writer
	closers []func() error
}

func (w *writeCloser) Close() error {
	var first error
	for _, c := range w.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// compress wraps w with the encoder for c. Closing the result flushes the
// encoder and then closes w.
func compress(w io.WriteCloser, c Compression) (io.WriteCloser, error) {
	switch c {
	case Gzip:
		gz := gzip.NewWriter(w)
		return &writeCloser{Writer: gz, closers: []func() error{gz.Close, w.Close}}, nil
	case Zstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, err
		}
		return &writeCloser{Writer: enc, closers: []func() error{enc.Close, w.Close}}, nil
	case LZ4:
		lw := lz4.NewWriter(w)
		return &writeCloser{Writer: lw, closers: []func() error{lw.Close, w.Close}}, nil
	default:
		return w, nil
	}
}
