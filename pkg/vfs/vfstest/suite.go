// Package vfstest provides a conformance test suite for kv.Store backends.
//
// All backends (memory, badger, sqlite) should pass these tests. The suite
// drives each backend through the full vfs surface and verifies the
// filesystem semantics every store implementation must uphold.
//
// Usage:
//
//	func TestConformance(t *testing.T) {
//	    vfstest.RunConformanceSuite(t, func(t *testing.T) kv.Store {
//	        return memory.New()
//	    })
//	}
//
// The factory receives *testing.T so it can call t.TempDir() for stores that
// need filesystem paths and t.Cleanup for teardown.
package vfstest

import (
	"bytes"
	"context"
	"testing"

	"github.com/marmos91/kvfs/pkg/vfs"
	vfserrors "github.com/marmos91/kvfs/pkg/vfs/errors"
	"github.com/marmos91/kvfs/pkg/vfs/kv"
)

// StoreFactory creates a fresh kv.Store instance for each test.
type StoreFactory func(t *testing.T) kv.Store

// RunConformanceSuite runs the full conformance suite against the provided
// store factory. Each test gets a fresh store instance to ensure isolation.
func RunConformanceSuite(t *testing.T, factory StoreFactory) {
	t.Helper()

	t.Run("ListRecursiveReturnsAllFiles", func(t *testing.T) {
		testListRecursiveReturnsAllFiles(t, factory)
	})
	t.Run("ListCollapsesDirectories", func(t *testing.T) {
		testListCollapsesDirectories(t, factory)
	})
	t.Run("ExactMatchShortCircuit", func(t *testing.T) {
		testExactMatchShortCircuit(t, factory)
	})
	t.Run("WriteReadRoundTrip", func(t *testing.T) {
		testWriteReadRoundTrip(t, factory)
	})
	t.Run("WriteOverwriteReplaces", func(t *testing.T) {
		testWriteOverwriteReplaces(t, factory)
	})
	t.Run("MetadataStripsPayload", func(t *testing.T) {
		testMetadataStripsPayload(t, factory)
	})
	t.Run("ReadEmptyFile", func(t *testing.T) {
		testReadEmptyFile(t, factory)
	})
	t.Run("ReadMissingFile", func(t *testing.T) {
		testReadMissingFile(t, factory)
	})
	t.Run("RemoveMatchesListing", func(t *testing.T) {
		testRemoveMatchesListing(t, factory)
	})
	t.Run("RemoveMissingPath", func(t *testing.T) {
		testRemoveMissingPath(t, factory)
	})
}

// newFilesystem builds a filesystem over a fresh store from the factory.
func newFilesystem(t *testing.T, factory StoreFactory) *vfs.Filesystem {
	t.Helper()

	store := factory(t)
	fs, err := vfs.New("conformance", store)
	if err != nil {
		t.Fatalf("vfs.New() failed: %v", err)
	}
	t.Cleanup(func() {
		_ = fs.Close()
	})
	return fs
}

// writeFile stores content at path, failing the test on error.
func writeFile(t *testing.T, fs *vfs.Filesystem, path string, content []byte) {
	t.Helper()

	n, err := fs.Write(context.Background(), path, vfs.FromBytes(content))
	if err != nil {
		t.Fatalf("Write(%q) failed: %v", path, err)
	}
	if n != int64(len(content)) {
		t.Fatalf("Write(%q) = %d bytes, want %d", path, n, len(content))
	}
}

func testListRecursiveReturnsAllFiles(t *testing.T, factory StoreFactory) {
	fs := newFilesystem(t, factory)
	ctx := context.Background()

	paths := []string{"b.txt", "a/x.txt", "a/b/deep.txt", "a/y.txt"}
	for _, path := range paths {
		writeFile(t, fs, path, []byte(path))
	}

	entries, err := fs.List(ctx, "", true, nil)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}

	want := []string{"a/b/deep.txt", "a/x.txt", "a/y.txt", "b.txt"}
	if len(entries) != len(want) {
		t.Fatalf("List() returned %d entries, want %d", len(entries), len(want))
	}
	for i, entry := range entries {
		if entry.Name != want[i] {
			t.Errorf("entry %d = %q, want %q", i, entry.Name, want[i])
		}
		if entry.Kind != kv.KindFile {
			t.Errorf("entry %q kind = %q, want file", entry.Name, entry.Kind)
		}
	}
}

func testListCollapsesDirectories(t *testing.T, factory StoreFactory) {
	fs := newFilesystem(t, factory)
	ctx := context.Background()

	writeFile(t, fs, "a/x.txt", []byte("x"))
	writeFile(t, fs, "a/y.txt", []byte("y"))
	writeFile(t, fs, "b.txt", []byte("b"))

	// Top level: both a/* files collapse into one directory entry.
	entries, err := fs.List(ctx, "", false, nil)
	if err != nil {
		t.Fatalf("List(\"\") failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("List(\"\") returned %d entries, want 2", len(entries))
	}
	if entries[0].Name != "a/" || !entries[0].IsDir() {
		t.Errorf("entry 0 = %q (%s), want directory \"a/\"", entries[0].Name, entries[0].Kind)
	}
	if entries[1].Name != "b.txt" || entries[1].IsDir() {
		t.Errorf("entry 1 = %q (%s), want file \"b.txt\"", entries[1].Name, entries[1].Kind)
	}

	// One level down: both files are direct children.
	entries, err = fs.List(ctx, "a", false, nil)
	if err != nil {
		t.Fatalf("List(\"a\") failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("List(\"a\") returned %d entries, want 2", len(entries))
	}
	for i, want := range []string{"a/x.txt", "a/y.txt"} {
		if entries[i].Name != want || entries[i].IsDir() {
			t.Errorf("entry %d = %q (%s), want file %q", i, entries[i].Name, entries[i].Kind, want)
		}
	}

	// A trailing separator addresses the same boundary.
	withSep, err := fs.List(ctx, "a/", false, nil)
	if err != nil {
		t.Fatalf("List(\"a/\") failed: %v", err)
	}
	if len(withSep) != len(entries) {
		t.Fatalf("List(\"a/\") returned %d entries, want %d", len(withSep), len(entries))
	}
}

func testExactMatchShortCircuit(t *testing.T, factory StoreFactory) {
	fs := newFilesystem(t, factory)
	ctx := context.Background()

	writeFile(t, fs, "a", []byte("file a"))
	writeFile(t, fs, "a/x.txt", []byte("x"))
	writeFile(t, fs, "a/y.txt", []byte("y"))

	// Non-recursive: the exact match wins over everything under the prefix.
	entries, err := fs.List(ctx, "a", false, nil)
	if err != nil {
		t.Fatalf("List(\"a\") failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "a" || entries[0].IsDir() {
		t.Fatalf("List(\"a\") = %+v, want the single exact match", entries)
	}

	// Recursive: no short-circuit, everything is returned.
	entries, err = fs.List(ctx, "a", true, nil)
	if err != nil {
		t.Fatalf("List(\"a\", recursive) failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("List(\"a\", recursive) returned %d entries, want 3", len(entries))
	}
}

func testWriteReadRoundTrip(t *testing.T, factory StoreFactory) {
	fs := newFilesystem(t, factory)
	ctx := context.Background()

	content := []byte("the quick brown fox")
	writeFile(t, fs, "docs/fox.txt", content)

	var got []byte
	n, err := fs.Read(ctx, "docs/fox.txt", func(chunk []byte) error {
		got = append(got, chunk...)
		return nil
	})
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if n != int64(len(content)) {
		t.Errorf("Read() = %d bytes, want %d", n, len(content))
	}
	if !bytes.Equal(got, content) {
		t.Errorf("Read() delivered %q, want %q", got, content)
	}
}

func testWriteOverwriteReplaces(t *testing.T, factory StoreFactory) {
	fs := newFilesystem(t, factory)
	ctx := context.Background()

	writeFile(t, fs, "note.txt", []byte("a long first version"))
	writeFile(t, fs, "note.txt", []byte("v2"))

	var got []byte
	n, err := fs.Read(ctx, "note.txt", func(chunk []byte) error {
		got = append(got, chunk...)
		return nil
	})
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if n != 2 || !bytes.Equal(got, []byte("v2")) {
		t.Errorf("Read() = %q (%d bytes), want \"v2\"", got, n)
	}

	// The store holds exactly one record for the path.
	entries, err := fs.List(ctx, "", true, nil)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("List() returned %d entries after overwrite, want 1", len(entries))
	}
}

func testMetadataStripsPayload(t *testing.T, factory StoreFactory) {
	fs := newFilesystem(t, factory)
	ctx := context.Background()

	content := []byte("metadata target")
	writeFile(t, fs, "meta.bin", content)

	rec, err := fs.Metadata(ctx, "meta.bin")
	if err != nil {
		t.Fatalf("Metadata() failed: %v", err)
	}
	if rec.Size != int64(len(content)) {
		t.Errorf("Metadata().Size = %d, want %d", rec.Size, len(content))
	}
	if rec.Payload != nil {
		t.Errorf("Metadata() leaked %d payload bytes", len(rec.Payload))
	}
	if rec.ModifiedAt.IsZero() {
		t.Error("Metadata().ModifiedAt is zero")
	}
}

func testReadEmptyFile(t *testing.T, factory StoreFactory) {
	fs := newFilesystem(t, factory)
	ctx := context.Background()

	writeFile(t, fs, "empty.txt", nil)

	calls := 0
	n, err := fs.Read(ctx, "empty.txt", func(chunk []byte) error {
		calls++
		if len(chunk) != 0 {
			t.Errorf("chunk has %d bytes, want 0", len(chunk))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Read() = %d bytes, want 0", n)
	}
	if calls != 1 {
		t.Errorf("chunk callback invoked %d times, want 1", calls)
	}
}

func testReadMissingFile(t *testing.T, factory StoreFactory) {
	fs := newFilesystem(t, factory)

	_, err := fs.Read(context.Background(), "missing.txt", func([]byte) error { return nil })
	if !vfserrors.IsNotFound(err) {
		t.Fatalf("Read(missing) = %v, want NotFound", err)
	}
}

func testRemoveMatchesListing(t *testing.T, factory StoreFactory) {
	fs := newFilesystem(t, factory)
	ctx := context.Background()

	writeFile(t, fs, "keep.txt", []byte("keep"))
	writeFile(t, fs, "gone/a.txt", []byte("a"))
	writeFile(t, fs, "gone/b/c.txt", []byte("c"))

	listed, err := fs.List(ctx, "gone", true, nil)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}

	deleted, err := fs.Remove(ctx, "gone", true, false)
	if err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	if len(deleted) != len(listed) {
		t.Fatalf("Remove() deleted %d files, listing had %d", len(deleted), len(listed))
	}
	for i, entry := range listed {
		if deleted[i] != entry.Name {
			t.Errorf("deleted %d = %q, want %q", i, deleted[i], entry.Name)
		}
	}

	after, err := fs.List(ctx, "gone", true, nil)
	if err != nil {
		t.Fatalf("List() after remove failed: %v", err)
	}
	if len(after) != 0 {
		t.Errorf("List() after remove returned %d entries, want 0", len(after))
	}

	// Unrelated files survive.
	if _, err := fs.Metadata(ctx, "keep.txt"); err != nil {
		t.Errorf("Metadata(keep.txt) after remove failed: %v", err)
	}
}

func testRemoveMissingPath(t *testing.T, factory StoreFactory) {
	fs := newFilesystem(t, factory)
	ctx := context.Background()

	_, err := fs.Remove(ctx, "missing", false, false)
	if !vfserrors.IsNotFound(err) {
		t.Fatalf("Remove(missing) = %v, want NotFound", err)
	}

	deleted, err := fs.Remove(ctx, "missing", false, true)
	if err != nil {
		t.Fatalf("Remove(missing, quiet) failed: %v", err)
	}
	if len(deleted) != 0 {
		t.Errorf("Remove(missing, quiet) deleted %d files, want 0", len(deleted))
	}
}
