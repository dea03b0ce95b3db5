package container

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"io"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// Container is an open handle on one container file. A read-only
// Container is backed by an mmap region (no OS file lock is taken,
// per spec.md §5's "file locking disabled on read"); a writable
// Container is backed by a regular buffered file handle.
type Container struct {
	path     string
	file     *os.File
	mmap     mmap.MMap // nil unless opened read-only
	root     *groupNode
	writable bool

	// write-session state
	writeEnd int64 // current end-of-data offset while writing
}

// Path returns the underlying file path.
func (c *Container) Path() string { return c.path }

// OpenRead opens path read-only via mmap and parses its trailer. It
// never takes an OS file lock.
func OpenRead(path string) (*Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioError(path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ioError(path, err)
	}
	if info.Size() < int64(headerLen+footerLen) {
		f.Close()
		return nil, &Error{Kind: KindIOError, Path: path, Err: ErrTruncated}
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, ioError(path, err)
	}

	c := &Container{path: path, file: f, mmap: m}
	if err := c.parseHeader(); err != nil {
		m.Unmap()
		f.Close()
		return nil, err
	}
	if err := c.parseTrailer(); err != nil {
		m.Unmap()
		f.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) parseHeader() error {
	data := []byte(c.mmap)
	for i := 0; i < 8; i++ {
		if data[i] != magic[i] {
			return &Error{Kind: KindIOError, Path: c.path, Err: ErrInvalidFormat}
		}
	}
	major := data[8]
	if major != FormatMajor {
		return &Error{Kind: KindIOError, Path: c.path, Err: ErrVersionMismatch}
	}
	return nil
}

func (c *Container) parseTrailer() error {
	data := []byte(c.mmap)
	n := len(data)
	offBytes := data[n-footerLen:]
	trailerOffset := int64(be.Uint64(offBytes))
	if trailerOffset < int64(headerLen) || trailerOffset > int64(n-footerLen) {
		return &Error{Kind: KindIOError, Path: c.path, Err: ErrTruncated}
	}

	dec := gob.NewDecoder(bytes.NewReader(data[trailerOffset : n-footerLen]))
	var tr trailer
	if err := dec.Decode(&tr); err != nil {
		return ioError(c.path, err)
	}
	c.root = tr.Root
	if c.root == nil {
		c.root = newGroupNode("/")
	}
	return nil
}

// readDataset returns the decompressed bytes for a dataset's stored
// metadata, reading straight out of the mmap region when open
// read-only, or from the live file handle while writing.
func (c *Container) readDataset(path string, meta datasetMeta) ([]byte, error) {
	var raw []byte
	if c.mmap != nil {
		data := []byte(c.mmap)
		if meta.Offset < 0 || meta.Offset+meta.Length > int64(len(data)) {
			return nil, ioError(path, ErrTruncated)
		}
		raw = data[meta.Offset : meta.Offset+meta.Length]
	} else {
		buf := make([]byte, meta.Length)
		if _, err := c.file.ReadAt(buf, meta.Offset); err != nil {
			return nil, ioError(path, err)
		}
		raw = buf
	}

	if !meta.Compressed {
		out := make([]byte, len(raw))
		copy(out, raw)
		return out, nil
	}

	gr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, ioError(path, err)
	}
	defer gr.Close()
	out, err := io.ReadAll(gr)
	if err != nil {
		return nil, ioError(path, err)
	}
	return out, nil
}
