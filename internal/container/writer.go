package container

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"os"
)

// CreateWrite creates a brand new container file at path, truncating
// any existing content. Use OpenWrite to append to an existing one.
func CreateWrite(path string) (*Container, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, ioError(path, err)
	}
	c := &Container{path: path, file: f, writable: true, root: newGroupNode("/")}
	if err := c.writeHeader(); err != nil {
		f.Close()
		return nil, err
	}
	return c, nil
}

// OpenWrite opens an existing container for appending new datasets,
// groups and attributes. The existing directory is loaded first (via
// a transient read-only pass) so the write session sees everything
// already on disk; new data is appended starting at the old trailer's
// offset, and a fresh trailer is written on Close. This is the
// append-safe semantics spec.md §1 requires of the on-disk schema.
func OpenWrite(path string) (*Container, error) {
	existing, err := OpenRead(path)
	if err != nil {
		return nil, err
	}
	root := existing.root
	existing.Close()

	f, err := os.OpenFile(path, os.O_RDWR, 0644)
	if err != nil {
		return nil, ioError(path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ioError(path, err)
	}

	data := make([]byte, footerLen)
	if _, err := f.ReadAt(data, info.Size()-footerLen); err != nil {
		f.Close()
		return nil, ioError(path, err)
	}
	trailerOffset := int64(be.Uint64(data))

	c := &Container{path: path, file: f, writable: true, root: root, writeEnd: trailerOffset}
	return c, nil
}

func (c *Container) writeHeader() error {
	buf := make([]byte, headerLen)
	copy(buf[:8], magic[:])
	buf[8] = FormatMajor
	buf[9] = FormatMinor
	if _, err := c.file.WriteAt(buf, 0); err != nil {
		return ioError(c.path, err)
	}
	c.writeEnd = int64(headerLen)
	return nil
}

// WriteDataset compresses data and appends it to the container,
// recording its location under path (e.g. "/Families/DF/DF000000001/hmm").
// Overwriting an existing dataset path simply appends new bytes and
// repoints the directory entry; the old bytes become unreferenced
// (container files are append-mostly, not compacting).
func (c *Container) WriteDataset(path string, data []byte, compress bool) error {
	if !c.writable {
		return &Error{Kind: KindLocked, Path: path}
	}

	var payload []byte
	if compress {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			return ioError(path, err)
		}
		if err := gw.Close(); err != nil {
			return ioError(path, err)
		}
		payload = buf.Bytes()
	} else {
		payload = data
	}

	offset := c.writeEnd
	if _, err := c.file.WriteAt(payload, offset); err != nil {
		return ioError(path, err)
	}
	c.writeEnd = offset + int64(len(payload))

	group, name := c.ensurePathGroup(path)
	group.Datasets[name] = datasetMeta{
		Offset:     offset,
		Length:     int64(len(payload)),
		RawLength:  int64(len(data)),
		Compressed: compress,
	}
	return nil
}

// Close finalizes the container: writes the gob-encoded trailer and
// the 8-byte footer pointing at it. Callers must call Close to make
// writes durable; a Container that dies before Close leaves the file
// without a valid trailer, which OpenRead reports as ErrTruncated —
// the same "corrupt until committed" semantics spec.md's change
// history ledger relies on at the schema layer.
func (c *Container) Close() error {
	if !c.writable {
		return c.closeReadOnly()
	}

	trailerOffset := c.writeEnd
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(trailer{Root: c.root}); err != nil {
		return ioError(c.path, err)
	}
	if _, err := c.file.WriteAt(buf.Bytes(), trailerOffset); err != nil {
		return ioError(c.path, err)
	}

	footer := make([]byte, footerLen)
	be.PutUint64(footer, uint64(trailerOffset))
	if _, err := c.file.WriteAt(footer, trailerOffset+int64(buf.Len())); err != nil {
		return ioError(c.path, err)
	}

	if err := c.file.Sync(); err != nil {
		return ioError(c.path, err)
	}
	return c.file.Close()
}

func (c *Container) closeReadOnly() error {
	var err error
	if c.mmap != nil {
		err = c.mmap.Unmap()
	}
	if c.file != nil {
		if cerr := c.file.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
