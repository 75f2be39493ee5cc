package arena_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/kvarena/pkg/arena"
)

func newArena(t *testing.T, size int) *arena.Arena {
	t.Helper()
	a, err := arena.Init(make([]byte, size), 16, 16)
	if err != nil {
		t.Fatalf("arena.Init: %v", err)
	}
	return a
}

func TestInit(t *testing.T) {
	Convey("Given a buffer too small to hold a header", t, func() {
		_, err := arena.Init(make([]byte, 4), 16, 16)

		Convey("Init fails with ErrBadBuffer", func() {
			So(err, ShouldEqual, arena.ErrBadBuffer)
		})
	})

	Convey("Given a zero hunk size", t, func() {
		_, err := arena.Init(make([]byte, 4096), 0, 16)

		Convey("Init fails with ErrBadBuffer", func() {
			So(err, ShouldEqual, arena.ErrBadBuffer)
		})
	})

	Convey("Given a properly sized buffer", t, func() {
		a, err := arena.Init(make([]byte, 4096), 16, 16)

		Convey("Init succeeds with an empty arena", func() {
			So(err, ShouldBeNil)
			So(a.Size(), ShouldEqual, 4096)
			So(a.Count(), ShouldEqual, 0)
			So(a.IsEmpty(), ShouldBeTrue)
			So(a.MaxKeyLength(), ShouldEqual, 16)
			So(a.GarbageSize(), ShouldEqual, 0)
			So(a.GarbageCount(), ShouldEqual, 0)
		})
	})
}

func TestClearAndEmpty(t *testing.T) {
	Convey("Given an arena with live and garbage entries", t, func() {
		a := newArena(t, 4096)
		So(a.Create([]byte("a"), []byte("1")), ShouldEqual, arena.NoError)
		So(a.Create([]byte("b"), []byte("2")), ShouldEqual, arena.NoError)
		So(a.Delete([]byte("a")), ShouldEqual, arena.NoError)

		Convey("When Clear is called", func() {
			a.Clear()

			Convey("Then the arena is fully empty again", func() {
				So(a.Count(), ShouldEqual, 0)
				So(a.GarbageCount(), ShouldEqual, 0)
				So(a.GarbageSize(), ShouldEqual, 0)
				So(a.ReadSize([]byte("b")), ShouldEqual, 0)
			})
		})

		Convey("When Empty is called", func() {
			a.Empty()

			Convey("Then no key is findable", func() {
				So(a.Count(), ShouldEqual, 0)
				dst := make([]byte, 1)
				So(a.Read([]byte("b"), dst), ShouldEqual, arena.KeyNotFound)
			})
		})
	})
}

func TestSizeAccounting(t *testing.T) {
	Convey("Given a fresh arena", t, func() {
		a := newArena(t, 4096)

		Convey("SizeUsed starts at HeadSize", func() {
			So(a.SizeUsed(), ShouldEqual, a.HeadSize())
		})

		Convey("After one Create, SizeUsed grows by one descriptor and one hunk", func() {
			before := a.SizeUsed()
			So(a.Create([]byte("k"), []byte("v")), ShouldEqual, arena.NoError)

			So(a.SizeUsed(), ShouldBeGreaterThan, before)
		})
	})
}

func TestMaxCount(t *testing.T) {
	Convey("Given a fresh arena", t, func() {
		a := newArena(t, 4096)

		Convey("MaxCount estimates a positive, finite capacity", func() {
			n := a.MaxCount(8)
			So(n, ShouldBeGreaterThan, 0)

			Convey("And filling the arena never exceeds it by much", func() {
				created := 0
				for i := 0; created < n+5; i++ {
					key := []byte{byte('a' + i%26), byte('A' + (i/26)%26)}
					if arena.IsError(a.Create(key, []byte("12345678"))) {
						break
					}
					created++
				}
				So(created, ShouldEqual, n)
			})
		})
	})
}
