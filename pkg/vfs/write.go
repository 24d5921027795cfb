package vfs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/marmos91/kvfs/internal/logger"
	vfserrors "github.com/marmos91/kvfs/pkg/vfs/errors"
	"github.com/marmos91/kvfs/pkg/vfs/kv"
)

// maxEmptyPulls bounds how many consecutive empty chunks a source may yield
// before Write treats it as exhausted. Lazily-buffering producers may
// legitimately yield nothing while refilling; this tolerance accommodates
// them without promising eventual data.
const maxEmptyPulls = 5

// ByteSource produces the bytes for one Write. Next returns the next chunk,
// io.EOF when the source is exhausted, or any other error to abort the
// write. Sources are finite and not restartable. A returned chunk is only
// valid until the next call to Next.
//
// An empty chunk with a nil error is a legitimate yield; Write tolerates a
// bounded run of them (see maxEmptyPulls).
type ByteSource interface {
	Next(ctx context.Context) ([]byte, error)
}

// Write aggregates the whole source into one buffer and persists it as a
// single file record in one read-write transaction. It returns the number of
// payload bytes written.
//
// There are no partial writes: an existing record at path is fully replaced,
// and a source error before completion leaves the store untouched.
func (fs *Filesystem) Write(ctx context.Context, path string, src ByteSource) (n int64, err error) {
	start := time.Now()
	defer func() { fs.observe("write", start, err) }()

	if path == "" {
		return 0, vfserrors.NewInvalidArgumentError("write path is required")
	}
	if src == nil {
		return 0, vfserrors.NewInvalidArgumentError("byte source is required")
	}

	sess, err := fs.session(ctx)
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	emptyPulls := 0
	for {
		chunk, srcErr := src.Next(ctx)
		if srcErr == io.EOF {
			break
		}
		if srcErr != nil {
			return 0, fmt.Errorf("byte source failed: %w", srcErr)
		}
		if len(chunk) == 0 {
			emptyPulls++
			if emptyPulls >= maxEmptyPulls {
				break
			}
			continue
		}
		emptyPulls = 0
		buf.Write(chunk)
	}

	rec := &kv.Record{
		Name:       path,
		Kind:       kv.KindFile,
		Payload:    buf.Bytes(),
		Size:       int64(buf.Len()),
		ModifiedAt: time.Now().UTC(),
	}

	err = sess.Update(ctx, func(tx kv.Txn) error {
		return tx.Put(rec)
	})
	if err != nil {
		return 0, asStoreError("failed to write record", err)
	}

	if fs.metrics != nil {
		fs.metrics.AddBytesWritten(rec.Size)
	}
	logger.Debug("wrote file",
		"fs", fs.name,
		"path", path,
		"bytes", rec.Size,
		"duration_ms", logger.Duration(start))

	return rec.Size, nil
}

// ============================================================================
// Byte Sources
// ============================================================================

// FromReader adapts a pull-style io.Reader into a ByteSource.
func FromReader(r io.Reader) ByteSource {
	return &readerSource{r: r, buf: make([]byte, 32*1024)}
}

type readerSource struct {
	r   io.Reader
	buf []byte
}

func (s *readerSource) Next(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n, err := s.r.Read(s.buf)
	if n > 0 {
		return s.buf[:n], nil
	}
	if err != nil {
		return nil, err
	}
	return nil, nil
}

// FromBytes yields the given bytes as a single chunk.
func FromBytes(b []byte) ByteSource {
	return FromChunks([][]byte{b})
}

// FromChunks yields the given chunks in order, empty ones included.
func FromChunks(chunks [][]byte) ByteSource {
	return &chunkSource{chunks: chunks}
}

type chunkSource struct {
	chunks [][]byte
	pos    int
}

func (s *chunkSource) Next(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.pos >= len(s.chunks) {
		return nil, io.EOF
	}
	chunk := s.chunks[s.pos]
	s.pos++
	return chunk, nil
}

// FromChannels adapts a push-style producer into a ByteSource. Chunks arrive
// on data in emission order; closing data signals the end. A value on errc
// aborts the source immediately.
//
// A pushed producer owes no data until it closes the channel, so empty
// chunks are dropped here rather than surfaced as empty pulls; the source
// ends only on close or error.
func FromChannels(data <-chan []byte, errc <-chan error) ByteSource {
	return &channelSource{data: data, errc: errc}
}

type channelSource struct {
	data <-chan []byte
	errc <-chan error
	err  error
}

func (s *channelSource) Next(ctx context.Context) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case err := <-s.errc:
			if err == nil {
				err = io.ErrUnexpectedEOF
			}
			s.err = err
			return nil, err
		case chunk, ok := <-s.data:
			if !ok {
				s.err = io.EOF
				return nil, io.EOF
			}
			if len(chunk) == 0 {
				continue
			}
			return chunk, nil
		}
	}
}
