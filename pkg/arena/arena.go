package arena

import (
	"github.com/flier/kvarena/internal/debug"
)

// Arena is the top-level datastore. It owns no memory of its own: every
// byte it reads or writes lives in the buffer passed to [Init].
//
// The zero Arena is not usable; construct one with [Init].
type Arena struct {
	buf []byte

	// gen counts layout-affecting mutations, so an [Iterator] obtained
	// before one can detect that it has outlived the data it pointed to.
	gen uint64
}

// Init partitions buf into a fresh, empty arena.
//
// hunkSize is the minimum granularity of a value-side allocation; it must
// be at least 1. maxKeyLength bounds the number of bytes a key may contain,
// excluding its NUL terminator.
//
// Init fails with [ErrBadBuffer] if buf is too small to hold the header, or
// if hunkSize is zero.
func Init(buf []byte, hunkSize, maxKeyLength uint32) (*Arena, error) {
	if len(buf) < headerSize || hunkSize == 0 {
		return nil, ErrBadBuffer
	}

	a := &Arena{buf: buf}
	a.reset(uint32(len(buf)), hunkSize, maxKeyLength)

	debug.Log(nil, "init", "size=%d hunk=%d maxKey=%d", len(buf), hunkSize, maxKeyLength)

	return a, nil
}

// reset writes a zeroed, post-init header into the buffer, preserving the
// caller-chosen size/hunkSize/maxKeyLength.
func (a *Arena) reset(size, hunkSize, maxKeyLength uint32) {
	clear(a.buf)

	a.putU32(offSize, size)
	a.putU32(offHunkSize, hunkSize)
	a.putU32(offMaxKeyLength, maxKeyLength)
	a.putU32(offStackStart, headerSize)
	a.setStackCount(0)
	a.setHeapTop(size)
	a.setHeapSize(0)
	a.setGarbageFront(noIndex)
	a.setGarbageBack(noIndex)
	a.setGarbageCount(0)
	a.clearLastFound()
}

// Clear resets the arena to its post-[Init] state. All descriptors and
// hunks are lost; this invalidates every key pointer and [Iterator]
// obtained from this arena.
func (a *Arena) Clear() {
	a.reset(a.size(), a.hunkSize(), a.maxKeyLen())
	a.gen++
	debug.Log(nil, "clear", "")
}

// Empty has the same observable effect as [Arena.Clear] on the key
// namespace (after it returns, Count is zero and no key is findable), but
// unlike Clear it is permitted to retain internal bookkeeping. In this
// implementation Empty is Clear; there is no bookkeeping worth keeping
// across an empty that Clear would otherwise discard.
func (a *Arena) Empty() {
	a.Clear()
}

// Size returns the total size of the underlying buffer in bytes.
func (a *Arena) Size() int { return int(a.size()) }

// SizeUsed returns the number of bytes currently committed to the header,
// descriptor stack, and heap (live and garbage).
func (a *Arena) SizeUsed() int {
	return int(headerSize + a.stackCount()*descriptorSize + a.heapSize())
}

// HeadSize returns the size in bytes of the arena header.
func (a *Arena) HeadSize() int { return headerSize }

// Count returns the number of live (non-garbage) keys.
func (a *Arena) Count() int {
	return int(a.stackCount()) - int(a.garbageCount())
}

// IsEmpty reports whether Count is zero.
func (a *Arena) IsEmpty() bool { return a.Count() == 0 }

// MaxKeyLength returns the maximum key length, in bytes, excluding the NUL
// terminator, configured at [Init] time.
func (a *Arena) MaxKeyLength() int { return int(a.maxKeyLen()) }

// MaxCount estimates the maximum number of entries of size kvSize (the
// combined key+value byte count) that could ever be live at once in an
// arena of this size, assuming no fragmentation.
func (a *Arena) MaxCount(kvSize int) int {
	avail := int(a.size()) - headerSize
	if avail <= 0 {
		return 0
	}

	hunk := hunkRequired(uint32(kvSize)+1, a.hunkSize()) // +1 for the key's NUL
	per := int(descriptorSize) + int(hunk)
	if per <= 0 {
		return 0
	}

	return avail / per
}

// GarbageSize returns the total bytes occupied by garbage hunks.
func (a *Arena) GarbageSize() int {
	var n uint32
	for i := a.garbageFront(); i != noIndex; i = a.descNextGarbage(i) {
		n += a.descHeapSize(i)
	}
	return int(n)
}

// GarbageCount returns the number of garbage (deleted but unreclaimed)
// descriptors.
func (a *Arena) GarbageCount() int { return int(a.garbageCount()) }

// hunkRequired computes the ceil-to-hunkSize allocation needed to hold
// needed bytes, with a minimum of one hunk. This is the "later revision"
// semantics: a request that is an exact multiple of hunkSize does not
// overallocate by a spare hunk.
func hunkRequired(needed, hunkSize uint32) uint32 {
	if needed == 0 {
		return hunkSize
	}
	n := (needed + hunkSize - 1) / hunkSize
	if n == 0 {
		n = 1
	}
	return n * hunkSize
}
