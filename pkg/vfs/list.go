package vfs

import (
	"context"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/marmos91/kvfs/internal/logger"
	vfserrors "github.com/marmos91/kvfs/pkg/vfs/errors"
	"github.com/marmos91/kvfs/pkg/vfs/kv"
)

// Visitor is invoked once per qualifying file record during a listing pass.
// Returning an error aborts the pass.
type Visitor func(rec *kv.Record) error

// List resolves the virtual tree view for a path prefix.
//
// The store has no prefix scan, so List fetches every record in one
// read-only transaction and filters in memory. Results are sorted with a
// locale-aware collation; the ordering is part of the contract, callers rely
// on deterministic listings.
//
// With recursive set, every file under the prefix is returned as-is. Without
// it, files directly under the prefix are returned as file entries and
// deeper files collapse into one synthesized directory entry per next-level
// segment. A record whose name equals the prefix exactly short-circuits a
// non-recursive listing to that single record.
//
// When visit is non-nil it is called, in sort order, for every file entry in
// the result. Directory entries are never visited.
func (fs *Filesystem) List(ctx context.Context, prefix string, recursive bool, visit Visitor) (entries []Entry, err error) {
	start := time.Now()
	defer func() { fs.observe("list", start, err) }()

	sess, err := fs.session(ctx)
	if err != nil {
		return nil, err
	}

	var records []*kv.Record
	err = sess.View(ctx, func(tx kv.Txn) error {
		var txErr error
		records, txErr = tx.GetAll()
		return txErr
	})
	if err != nil {
		return nil, asStoreError("failed to scan records", err)
	}

	entries, exact, err := resolve(records, prefix, recursive)
	if err != nil {
		return nil, err
	}

	logger.Debug("listed namespace",
		"fs", fs.name,
		"prefix", prefix,
		"recursive", recursive,
		"entries", len(entries),
		"duration_ms", logger.Duration(start))

	if visit != nil {
		if err := visitEntries(entries, exact, visit); err != nil {
			return nil, err
		}
	}

	return entries, nil
}

// resolve turns the flat record set into the tree view for prefix. It
// returns the resulting entries and, when the non-recursive exact-match
// short-circuit applied, the exact record.
func resolve(records []*kv.Record, prefix string, recursive bool) ([]Entry, *kv.Record, error) {
	// Records are filtered by the raw prefix; the separator-terminated
	// boundary is only where directory synthesis starts looking for the
	// next path segment.
	childBoundary := prefix
	if childBoundary != "" && !strings.HasSuffix(childBoundary, Separator) {
		childBoundary += Separator
	}

	sortRecords(records)

	var exact *kv.Record
	entries := make([]Entry, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for _, rec := range records {
		var entry Entry

		switch {
		case rec.Name == prefix:
			if rec.Kind != kv.KindFile {
				// Directories are never persisted; a stored non-file record
				// means the store is corrupt.
				return nil, nil, vfserrors.NewTransactionError("stored record is not a file", nil)
			}
			exact = rec
			entry = fileEntry(rec)

		case strings.HasPrefix(rec.Name, prefix):
			if recursive || len(rec.Name) <= len(childBoundary) {
				entry = fileEntry(rec)
				break
			}
			sep := strings.Index(rec.Name[len(childBoundary):], Separator)
			if sep < 0 {
				// Direct child file.
				entry = fileEntry(rec)
			} else {
				// Deeper file: collapse into the next-level directory.
				entry = dirEntry(rec.Name[:len(childBoundary)+sep+1])
			}

		default:
			continue
		}

		// Many files under one directory dedupe to the first occurrence in
		// sort order.
		if _, dup := seen[entry.Name]; dup {
			continue
		}
		seen[entry.Name] = struct{}{}
		entries = append(entries, entry)
	}

	// An exact match short-circuits a non-recursive listing regardless of
	// what else matched as a prefix.
	if exact != nil && !recursive {
		return []Entry{fileEntry(exact)}, exact, nil
	}

	return entries, nil, nil
}

// visitEntries applies the visitor: once with the exact record when the
// short-circuit applied, otherwise for every file entry in order.
func visitEntries(entries []Entry, exact *kv.Record, visit Visitor) error {
	if exact != nil {
		return visit(exact)
	}
	for _, entry := range entries {
		if entry.Kind != kv.KindFile {
			continue
		}
		if err := visit(entry.Record); err != nil {
			return err
		}
	}
	return nil
}

// sortRecords orders records by name using locale-aware collation. The
// collator is not safe for concurrent use, so each pass builds its own.
func sortRecords(records []*kv.Record) {
	c := collate.New(language.Und)
	sort.SliceStable(records, func(i, j int) bool {
		return c.CompareString(records[i].Name, records[j].Name) < 0
	})
}
