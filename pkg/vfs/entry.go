package vfs

import "github.com/marmos91/kvfs/pkg/vfs/kv"

// Entry is one element of a listing. It is a tagged union: a file entry
// carries the stored record, a directory entry carries only the synthesized
// name. Directory entries exist only in the view produced by List; they are
// never persisted and never mutated after construction.
type Entry struct {
	// Name is the virtual path. For directories it is the common prefix up
	// to and including the next separator, e.g. "a/".
	Name string

	// Kind selects the populated arm of the union.
	Kind kv.Kind

	// Record is the stored record for file entries, nil for directories.
	Record *kv.Record
}

// IsDir reports whether the entry is a synthesized directory.
func (e Entry) IsDir() bool {
	return e.Kind == kv.KindDirectory
}

func fileEntry(rec *kv.Record) Entry {
	return Entry{
		Name:   rec.Name,
		Kind:   kv.KindFile,
		Record: rec,
	}
}

func dirEntry(name string) Entry {
	return Entry{
		Name: name,
		Kind: kv.KindDirectory,
	}
}
