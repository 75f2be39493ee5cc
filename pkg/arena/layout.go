package arena

import "encoding/binary"

// noIndex is the sentinel stored in place of a descriptor-stack index to
// mean "none", e.g. an empty garbage list or an invalidated last-found
// cache. It doubles as the sentinel for absolute buffer offsets.
const noIndex uint32 = 1<<32 - 1

// Header field byte offsets, all little-endian uint32s. The header is the
// only part of the buffer with a fixed address; everything past it moves.
const (
	offSize         = 0
	offHunkSize     = 4
	offMaxKeyLength = 8
	offStackStart   = 12
	offStackCount   = 16
	offHeapTop      = 20
	offHeapSize     = 24
	offGarbageFront = 28
	offGarbageBack  = 32
	offGarbageCount = 36
	offLastFound    = 40

	headerSize = 44
)

// Descriptor field byte offsets, relative to the start of one descriptor
// slot in the stack.
const (
	descOffHeapTop      = 0
	descOffHeapSize     = 4
	descOffKeyPtr       = 8
	descOffValuePtr     = 12
	descOffValueSize    = 16
	descOffFlags        = 20
	descOffPrevGarbage  = 24
	descOffNextGarbage  = 28
	descriptorSize uint32 = 32
)

const flagGarbage uint32 = 1 << 0

func (a *Arena) u32(off uint32) uint32 {
	return binary.LittleEndian.Uint32(a.buf[off : off+4])
}

func (a *Arena) putU32(off uint32, v uint32) {
	binary.LittleEndian.PutUint32(a.buf[off:off+4], v)
}

// header accessors

func (a *Arena) size() uint32         { return a.u32(offSize) }
func (a *Arena) hunkSize() uint32     { return a.u32(offHunkSize) }
func (a *Arena) maxKeyLen() uint32    { return a.u32(offMaxKeyLength) }
func (a *Arena) stackStart() uint32   { return a.u32(offStackStart) }
func (a *Arena) stackCount() uint32   { return a.u32(offStackCount) }
func (a *Arena) setStackCount(n uint32) { a.putU32(offStackCount, n) }
func (a *Arena) heapTop() uint32      { return a.u32(offHeapTop) }
func (a *Arena) setHeapTop(v uint32)  { a.putU32(offHeapTop, v) }
func (a *Arena) heapSize() uint32     { return a.u32(offHeapSize) }
func (a *Arena) setHeapSize(v uint32) { a.putU32(offHeapSize, v) }
func (a *Arena) garbageFront() uint32 { return a.u32(offGarbageFront) }
func (a *Arena) setGarbageFront(v uint32) { a.putU32(offGarbageFront, v) }
func (a *Arena) garbageBack() uint32  { return a.u32(offGarbageBack) }
func (a *Arena) setGarbageBack(v uint32) { a.putU32(offGarbageBack, v) }
func (a *Arena) garbageCount() uint32 { return a.u32(offGarbageCount) }
func (a *Arena) setGarbageCount(v uint32) { a.putU32(offGarbageCount, v) }
func (a *Arena) lastFound() uint32    { return a.u32(offLastFound) }
func (a *Arena) setLastFound(v uint32) { a.putU32(offLastFound, v) }
func (a *Arena) clearLastFound()      { a.putU32(offLastFound, noIndex) }

// descriptor accessors, addressed by stack index.

func (a *Arena) descOff(i uint32) uint32 {
	return a.stackStart() + i*descriptorSize
}

func (a *Arena) descHeapTop(i uint32) uint32 { return a.u32(a.descOff(i) + descOffHeapTop) }
func (a *Arena) setDescHeapTop(i, v uint32)  { a.putU32(a.descOff(i)+descOffHeapTop, v) }

func (a *Arena) descHeapSize(i uint32) uint32 { return a.u32(a.descOff(i) + descOffHeapSize) }
func (a *Arena) setDescHeapSize(i, v uint32)  { a.putU32(a.descOff(i)+descOffHeapSize, v) }

func (a *Arena) descKeyPtr(i uint32) uint32 { return a.u32(a.descOff(i) + descOffKeyPtr) }
func (a *Arena) setDescKeyPtr(i, v uint32)  { a.putU32(a.descOff(i)+descOffKeyPtr, v) }

func (a *Arena) descValuePtr(i uint32) uint32 { return a.u32(a.descOff(i) + descOffValuePtr) }
func (a *Arena) setDescValuePtr(i, v uint32)  { a.putU32(a.descOff(i)+descOffValuePtr, v) }

func (a *Arena) descValueSize(i uint32) uint32 { return a.u32(a.descOff(i) + descOffValueSize) }
func (a *Arena) setDescValueSize(i, v uint32)  { a.putU32(a.descOff(i)+descOffValueSize, v) }

func (a *Arena) descFlags(i uint32) uint32 { return a.u32(a.descOff(i) + descOffFlags) }
func (a *Arena) setDescFlags(i, v uint32)  { a.putU32(a.descOff(i)+descOffFlags, v) }

func (a *Arena) descIsGarbage(i uint32) bool { return a.descFlags(i)&flagGarbage != 0 }

func (a *Arena) setDescGarbage(i uint32, garbage bool) {
	f := a.descFlags(i)
	if garbage {
		f |= flagGarbage
	} else {
		f &^= flagGarbage
	}
	a.setDescFlags(i, f)
}

func (a *Arena) descPrevGarbage(i uint32) uint32 { return a.u32(a.descOff(i) + descOffPrevGarbage) }
func (a *Arena) setDescPrevGarbage(i, v uint32)  { a.putU32(a.descOff(i)+descOffPrevGarbage, v) }

func (a *Arena) descNextGarbage(i uint32) uint32 { return a.u32(a.descOff(i) + descOffNextGarbage) }
func (a *Arena) setDescNextGarbage(i, v uint32)  { a.putU32(a.descOff(i)+descOffNextGarbage, v) }

// descKey returns the key bytes (excluding the trailing NUL) for descriptor i.
func (a *Arena) descKey(i uint32) []byte {
	p := a.descKeyPtr(i)
	end := p
	for a.buf[end] != 0 {
		end++
	}
	return a.buf[p:end]
}

// descValue returns the value bytes for descriptor i.
func (a *Arena) descValue(i uint32) []byte {
	p := a.descValuePtr(i)
	n := a.descValueSize(i)
	return a.buf[p : p+n]
}

// descEnd returns the one-past-the-end address of descriptor i's hunk.
func (a *Arena) descEnd(i uint32) uint32 {
	return a.descHeapTop(i) + a.descHeapSize(i)
}
