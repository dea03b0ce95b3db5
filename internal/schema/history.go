package schema

import (
	"fmt"
	"sort"
	"time"

	"github.com/Dfam-consortium/famdb-go/internal/container"
	"github.com/Dfam-consortium/famdb-go/internal/famerr"
)

// HistoryEntry is one row of a file's append-only change-history
// ledger (spec.md §3 "Change history").
type HistoryEntry struct {
	Timestamp time.Time
	Operation string
	Completed bool
}

// historyEntryPath returns the container path for one ledger entry's
// completed flag.
func historyEntryPath(ts time.Time, op string) string {
	return fmt.Sprintf("%s/%s/%s", GroupFileHistory, ts.UTC().Format(time.RFC3339Nano), op)
}

// ReadIdentity loads the file-identity attributes from an open
// container.
func ReadIdentity(c *container.Container) (Identity, error) {
	var id Identity
	if v, ok, _ := c.GetAttr(AttrExportName); ok {
		id.ExportName, _ = v.(string)
	}
	if v, ok, _ := c.GetAttr(AttrExportDate); ok {
		id.ExportDate, _ = v.(string)
	}
	if v, ok, _ := c.GetAttr(AttrSchemaVersionMajor); ok {
		id.SchemaVersionMajor, _ = v.(int)
	}
	if v, ok, _ := c.GetAttr(AttrSchemaVersionMinor); ok {
		id.SchemaVersionMinor, _ = v.(int)
	}
	if v, ok, _ := c.GetAttr(AttrPartitionNumber); ok {
		id.PartitionNumber, _ = v.(int)
	}
	if v, ok, _ := c.GetAttr(AttrPartitionRootTaxonID); ok {
		id.PartitionRootTaxonID, _ = v.(uint32)
	}
	if v, ok, _ := c.GetAttr(AttrFullPartitionTable); ok {
		id.FullPartitionTable, _ = v.([]int)
	}
	if v, ok, _ := c.GetAttr(AttrCreatorFingerprint); ok {
		id.CreatorFingerprint, _ = v.(string)
	}
	return id, nil
}

// WriteIdentity stores the file-identity attributes on an open,
// writable container.
func WriteIdentity(c *container.Container, id Identity) error {
	attrs := map[string]interface{}{
		AttrExportName:           id.ExportName,
		AttrExportDate:           id.ExportDate,
		AttrSchemaVersionMajor:   id.SchemaVersionMajor,
		AttrSchemaVersionMinor:   id.SchemaVersionMinor,
		AttrPartitionNumber:      id.PartitionNumber,
		AttrPartitionRootTaxonID: id.PartitionRootTaxonID,
		AttrFullPartitionTable:   id.FullPartitionTable,
		AttrCreatorFingerprint:   id.CreatorFingerprint,
	}
	for path, v := range attrs {
		if err := c.SetAttr(path, v); err != nil {
			return err
		}
	}
	return nil
}

// hasOpenHistoryEntry scans /FileHistory for any entry whose
// completed flag is false — the schema's definition of "corrupt":
// a write that never committed.
func hasOpenHistoryEntry(c *container.Container) (bool, string, error) {
	timestamps, err := c.ChildNames(GroupFileHistory)
	if err != nil {
		return false, "", nil // no history group yet: fresh file, not corrupt
	}
	for _, ts := range timestamps {
		ops, err := c.ChildNames(GroupFileHistory + "/" + ts)
		if err != nil {
			continue
		}
		for _, op := range ops {
			v, ok, _ := c.GetAttr(fmt.Sprintf("%s/%s/%s/completed", GroupFileHistory, ts, op))
			if ok {
				if completed, _ := v.(bool); !completed {
					return true, fmt.Sprintf("%s/%s", ts, op), nil
				}
			}
		}
	}
	return false, "", nil
}

// ListHistory reads every ledger entry out of an open container,
// sorted by timestamp, for the `info --history` operation.
func ListHistory(c *container.Container) ([]HistoryEntry, error) {
	timestamps, err := c.ChildNames(GroupFileHistory)
	if err != nil {
		return nil, nil // no history group yet
	}
	var entries []HistoryEntry
	for _, ts := range timestamps {
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			continue
		}
		ops, err := c.ChildNames(GroupFileHistory + "/" + ts)
		if err != nil {
			continue
		}
		for _, op := range ops {
			v, ok, _ := c.GetAttr(fmt.Sprintf("%s/%s/%s/completed", GroupFileHistory, ts, op))
			completed, _ := v.(bool)
			entries = append(entries, HistoryEntry{Timestamp: t, Operation: op, Completed: ok && completed})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Timestamp.Before(entries[j].Timestamp) })
	return entries, nil
}

// OpenForRead validates a container's identity attributes and refuses
// to return one with an open (uncommitted) history entry, per
// spec.md §4.2's lifecycle and §7's "corrupt file" DataError.
func OpenForRead(path string) (*container.Container, Identity, error) {
	c, err := container.OpenRead(path)
	if err != nil {
		return nil, Identity{}, famerr.IO(err, "open famdb file %s", path)
	}

	open, entry, _ := hasOpenHistoryEntry(c)
	if open {
		c.Close()
		return nil, Identity{}, famerr.Data("file has an uncommitted write, refusing to read").
			WithHint("run the repair tool to clear the open history entry").
			WithTerm(fmt.Sprintf("%s (%s)", path, entry))
	}

	id, _ := ReadIdentity(c)
	if id.SchemaVersionMajor != 0 && id.SchemaVersionMajor != SchemaVersionMajor {
		c.Close()
		return nil, Identity{}, famerr.Data("schema version mismatch: file is v%d.%d, reader supports v%d.x",
			id.SchemaVersionMajor, id.SchemaVersionMinor, SchemaVersionMajor).WithTerm(path)
	}

	return c, id, nil
}

// WriteGuard commits or poisons a write session's history entry on
// Commit/Abort, per spec.md §4.2: "returns a guard that on successful
// drop flips completed=true, and on unsuccessful drop leaves it
// false."
type WriteGuard struct {
	c       *container.Container
	path    string
	opPath  string
	closed  bool
}

// OpenForWrite appends a new history entry with completed=false and
// returns the open container plus a guard. Callers must call
// guard.Commit() after a successful write, or guard.Abort() (or just
// let the process die) to leave it poisoned — there is no
// partial-commit recovery, per spec.md §4.2/§7.
func OpenForWrite(path string, create bool, operation string) (*container.Container, *WriteGuard, error) {
	var c *container.Container
	var err error
	if create {
		c, err = container.CreateWrite(path)
	} else {
		c, err = container.OpenWrite(path)
	}
	if err != nil {
		return nil, nil, famerr.IO(err, "open famdb file %s for write", path)
	}

	ts := time.Now()
	opPath := historyEntryPath(ts, operation) + "/completed"
	if err := c.SetAttr(opPath, false); err != nil {
		c.Close()
		return nil, nil, famerr.IO(err, "write history entry for %s", path)
	}

	return c, &WriteGuard{c: c, path: path, opPath: opPath}, nil
}

// Commit flips the history entry to completed and closes the
// container, finalizing the write.
func (g *WriteGuard) Commit() error {
	if g.closed {
		return nil
	}
	g.closed = true
	if err := g.c.SetAttr(g.opPath, true); err != nil {
		g.c.Close()
		return famerr.IO(err, "commit history entry for %s", g.path)
	}
	if err := g.c.Close(); err != nil {
		return famerr.IO(err, "close %s", g.path)
	}
	return nil
}

// Abort closes the container without marking the history entry
// complete, leaving the file refused on next OpenForRead until a
// repair tool clears it.
func (g *WriteGuard) Abort() error {
	if g.closed {
		return nil
	}
	g.closed = true
	return g.c.Close()
}
