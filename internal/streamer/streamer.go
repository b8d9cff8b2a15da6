// Package streamer moves a file's bytes through the block codec one
// chunk at a time.
package streamer

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/GabeHardgrave/dircrypt/internal/crypto"
)

// StreamFile reads src in mode.ReadSize()-byte chunks, transforms each,
// and writes the results to dst in strict chunk order. The destination
// must already exist. The stream stops at the first chunk that fails to
// transform; whatever was written before the failure is deliberately
// left in place for relabeling and inspection.
func StreamFile(src, dst string, mode crypto.Mode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open destination %s: %w", dst, err)
	}

	if err := streamChunks(in, out, mode); err != nil {
		_ = out.Close()
		return err
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("close destination %s: %w", dst, err)
	}
	return nil
}

// streamChunks holds at most one source chunk and one transformed chunk
// in memory at a time.
func streamChunks(in io.Reader, out io.Writer, mode crypto.Mode) error {
	buf := make([]byte, mode.ReadSize())

	for {
		n, err := io.ReadFull(in, buf)
		if errors.Is(err, io.EOF) {
			return nil
		}
		last := errors.Is(err, io.ErrUnexpectedEOF)
		if err != nil && !last {
			return fmt.Errorf("read chunk: %w", err)
		}

		transformed, err := mode.TransformChunk(buf[:n])
		if err != nil {
			return err
		}

		if _, err := out.Write(transformed); err != nil {
			return fmt.Errorf("write chunk: %w", err)
		}

		if last {
			return nil
		}
	}
}
