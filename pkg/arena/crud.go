package arena

import (
	"bytes"

	"github.com/flier/kvarena/internal/debug"
)

// checkKey asserts the precondition spec.md §7 places on the caller: keys
// are 1..=MaxKeyLength bytes and contain no embedded NUL, since NUL is the
// in-hunk key terminator. Violations are undefined behavior in a release
// build and an assertion failure in a debug build.
func (a *Arena) checkKey(key []byte) {
	debug.Assert(len(key) >= 1 && uint32(len(key)) <= a.maxKeyLen(),
		"key length %d out of range [1, %d]", len(key), a.maxKeyLen())
	debug.Assert(!bytes.ContainsRune(key, 0), "key must not contain a NUL byte")
}

// Create inserts a new key with the given value, returning [KeyExists] if
// the key is already present and [Error] if the arena has no room left.
//
// On [Error] the arena is left exactly as it was before the call: any
// partial stack/heap allocation is rolled back.
func (a *Arena) Create(key, value []byte) Code {
	a.checkKey(key)

	if _, ok := a.find(key); ok {
		return KeyExists
	}

	needed := uint32(len(key)) + 1 + uint32(len(value))
	required := hunkRequired(needed, a.hunkSize())

	var idx uint32
	if recycled := a.findRecyclable(required); recycled != noIndex {
		a.detachGarbage(recycled)
		a.clearLastFound()
		idx = recycled
	} else {
		if required > a.heapTop() {
			debug.Log(nil, "create", "out of arena: need %d bytes", required)
			return Error
		}

		idx = a.pushDescriptor()
		top := a.pushHeap(required)

		if !a.fits() {
			a.popHeap(required)
			a.popDescriptor()
			debug.Log(nil, "create", "out of arena: need %d bytes", required)
			return Error
		}

		a.setDescHeapTop(idx, top)
		a.setDescHeapSize(idx, required)
	}

	a.layout(idx, key, value)
	a.gen++

	debug.Log(nil, "create", "key=%q idx=%d hunk=%d", key, idx, required)

	return NoError
}

// layout writes value bytes first, then the key and its NUL terminator,
// into descriptor i's hunk, per spec.md §3's layout rule.
func (a *Arena) layout(i uint32, key, value []byte) {
	top := a.descHeapTop(i)

	valuePtr := top
	copy(a.buf[valuePtr:valuePtr+uint32(len(value))], value)

	keyPtr := valuePtr + uint32(len(value))
	copy(a.buf[keyPtr:keyPtr+uint32(len(key))], key)
	a.buf[keyPtr+uint32(len(key))] = 0

	a.setDescValuePtr(i, valuePtr)
	a.setDescValueSize(i, uint32(len(value)))
	a.setDescKeyPtr(i, keyPtr)
}

// Read copies the value stored under key into dst, failing with
// [KeyNotFound] if the key is absent or [BadSize] if len(dst) does not
// match the stored value's size.
func (a *Arena) Read(key, dst []byte) Code {
	idx, ok := a.find(key)
	if !ok {
		return KeyNotFound
	}

	if a.descValueSize(idx) != uint32(len(dst)) {
		return BadSize
	}

	copy(dst, a.descValue(idx))
	return NoError
}

// ReadSize returns the stored value length for key, or 0 if key is absent.
func (a *Arena) ReadSize(key []byte) int {
	idx, ok := a.find(key)
	if !ok {
		return 0
	}
	return int(a.descValueSize(idx))
}

// Update overwrites the value stored under key with src, failing with
// [KeyNotFound] if the key is absent or [BadSize] if len(src) does not
// match the stored value's size. The hunk is never resized; see spec.md
// §3's descriptor lifecycle.
func (a *Arena) Update(key, src []byte) Code {
	idx, ok := a.find(key)
	if !ok {
		return KeyNotFound
	}

	if a.descValueSize(idx) != uint32(len(src)) {
		return BadSize
	}

	copy(a.descValue(idx), src)

	debug.Log(nil, "update", "key=%q idx=%d", key, idx)

	return NoError
}

// Delete removes key, or does nothing if it is already absent; either way
// it returns [NoError], since deletion is idempotent per spec.md §4.5.
func (a *Arena) Delete(key []byte) Code {
	idx, ok := a.find(key)
	if !ok {
		return NoError
	}

	a.attachGarbage(idx)
	a.clearLastFound()
	a.gen++

	debug.Log(nil, "delete", "key=%q idx=%d", key, idx)

	return NoError
}
