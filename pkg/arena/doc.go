// Package arena implements a key-value datastore that lives entirely inside
// a single caller-supplied, fixed-size byte buffer.
//
// # Design
//
// The buffer is split into three zones whose boundaries move as operations
// proceed:
//
//	+----------+-----------------+-----------+---------------------+
//	| header   | descriptor      |  free     |     value heap      |
//	|          | stack  -->      |   gap     |       <--  growth   |
//	+----------+-----------------+-----------+---------------------+
//	             grows upward                    grows downward
//
// The descriptor stack is an upward bump-allocated array of fixed-size
// keyvalue descriptors, one per live or garbage key. The heap
// is a downward bump-allocated region holding the raw key/value bytes
// ("hunks") those descriptors point into.
//
// Unlike a typical Go arena, this one never asks the Go runtime for memory
// once [Init] has returned: every byte of bookkeeping lives inside the
// caller's buffer, addressed by offset rather than by pointer. This keeps
// the whole datastore relocatable and sidesteps the aliasing hazards of
// reinterpreting one buffer as two differently-typed views: every access
// goes through [encoding/binary] reads and writes at a computed offset, not
// an unsafe pointer cast.
//
// # Pointer stability
//
// [Arena.Read] copies a value out into the caller's slice. The [Iterator]
// surface does not copy: [Iterator.Key] and [Iterator.Value] return slices
// that alias the buffer and are valid only until the next mutating call.
// Operations are grouped by what they disturb:
//
//   - Pointer-preserving: [Arena.Read], [Arena.ReadSize], [Arena.Pop], iteration.
//   - Index-invalidating only: [Arena.Create] via recycle, [Arena.Delete], [Arena.Merge].
//   - Layout-invalidating: [Arena.Fold], [Arena.Pack], [Arena.SortByKey],
//     [Arena.SortByHeap], [Arena.Clear], [Arena.Empty].
//
// Any [Iterator] obtained before a Create, Delete, Pop, Merge or
// layout-invalidating call must be discarded; see [Iterator].
//
// # Concurrency
//
// An [Arena] is not safe for concurrent use. It is meant for single-writer,
// single-threaded embedding; see the package-level documentation in the
// project's specification for the full rationale.
package arena
