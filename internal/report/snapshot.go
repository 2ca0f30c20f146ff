package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/pable/go-skill-ratings/internal/model"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// WriteSnapshot writes snap as indented JSON, zstd-compressed if compress is set.
func WriteSnapshot(w io.Writer, snap *model.Snapshot, compress bool) error {
	if !compress {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	if err := json.NewEncoder(zw).Encode(snap); err != nil {
		zw.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return zw.Close()
}

// ReadSnapshot reads a snapshot written by WriteSnapshot, detecting zstd
// frames by their magic number.
func ReadSnapshot(r io.Reader) (*model.Snapshot, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var src io.Reader = br
	if bytes.Equal(head, zstdMagic) {
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer zr.Close()
		src = zr
	}

	var snap model.Snapshot
	if err := json.NewDecoder(src).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}
