// Package scribe is the composition root of the scribe file store.
//
// It wires the core service (pkg/core) to the filesystem adapter
// (pkg/adapters/fs) through functional options.
//
// A scribe store is one directory of plain text files with generated,
// collision-free names. Optionally every file carries a detached md5 or
// sha512 signature next to it; reads then fail with core.ErrTampered when
// the content, size, creation time or owner no longer match.
//
// Usage:
//
//	svc, err := scribe.New("./files",
//		scribe.WithSigning("on,sha512"),
//		scribe.WithLogger(logger),
//	)
//
//	rec, err := svc.WriteFile(ctx, "hello world", scribe.ModeWriteRead, nil)
//	got, err := svc.ReadFile(ctx, rec.Name, nil)
package scribe
