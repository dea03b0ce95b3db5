package container

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.0.h5")

	w, err := CreateWrite(path)
	if err != nil {
		t.Fatalf("CreateWrite: %v", err)
	}
	if err := w.SetAttr("/export_name", "TestDB"); err != nil {
		t.Fatalf("SetAttr: %v", err)
	}
	if err := w.SetAttr("/Families/DF/DF000000001/version", 3); err != nil {
		t.Fatalf("SetAttr: %v", err)
	}
	consensus := []byte("ACGTACGTACGT")
	if err := w.WriteDataset("/Families/DF/DF000000001/consensus", consensus, true); err != nil {
		t.Fatalf("WriteDataset: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := OpenRead(path)
	if err != nil {
		t.Fatalf("OpenRead: %v", err)
	}
	defer r.Close()

	v, ok, err := r.GetAttr("/export_name")
	if err != nil || !ok {
		t.Fatalf("GetAttr export_name: v=%v ok=%v err=%v", v, ok, err)
	}
	if v.(string) != "TestDB" {
		t.Fatalf("export_name = %v, want TestDB", v)
	}

	v, ok, err = r.GetAttr("/Families/DF/DF000000001/version")
	if err != nil || !ok {
		t.Fatalf("GetAttr version: v=%v ok=%v err=%v", v, ok, err)
	}
	if v.(int) != 3 {
		t.Fatalf("version = %v, want 3", v)
	}

	got, err := r.GetDataset("/Families/DF/DF000000001/consensus")
	if err != nil {
		t.Fatalf("GetDataset: %v", err)
	}
	if !bytes.Equal(got, consensus) {
		t.Fatalf("consensus = %q, want %q", got, consensus)
	}

	if _, _, err := r.GetAttr("/no/such/attr"); err != nil {
		t.Fatalf("GetAttr missing should not error, got %v", err)
	}
	if _, ok, _ := r.GetAttr("/no/such/attr"); ok {
		t.Fatalf("GetAttr missing should report ok=false")
	}
}

func TestOpenWriteAppends(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.0.h5")

	w, err := CreateWrite(path)
	if err != nil {
		t.Fatalf("CreateWrite: %v", err)
	}
	if err := w.SetAttr("/export_name", "TestDB"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	w2, err := OpenWrite(path)
	if err != nil {
		t.Fatalf("OpenWrite: %v", err)
	}
	if err := w2.WriteDataset("/Families/DF/DF000000002/consensus", []byte("GGGG"), false); err != nil {
		t.Fatal(err)
	}
	if err := w2.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := OpenRead(path)
	if err != nil {
		t.Fatalf("OpenRead after append: %v", err)
	}
	defer r.Close()

	v, ok, err := r.GetAttr("/export_name")
	if err != nil || !ok || v.(string) != "TestDB" {
		t.Fatalf("original attribute lost after append: v=%v ok=%v err=%v", v, ok, err)
	}
	got, err := r.GetDataset("/Families/DF/DF000000002/consensus")
	if err != nil {
		t.Fatalf("GetDataset appended: %v", err)
	}
	if string(got) != "GGGG" {
		t.Fatalf("appended consensus = %q, want GGGG", got)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file missing: %v", err)
	}
}
