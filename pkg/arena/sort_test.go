package arena_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/kvarena/pkg/arena"
)

func TestSortByKey(t *testing.T) {
	Convey("Given entries created out of key order", t, func() {
		a := newArena(t, 4096)
		for _, k := range []string{"banana", "apple", "cherry"} {
			So(a.Create([]byte(k), []byte("v")), ShouldEqual, arena.NoError)
		}

		Convey("SortByKey reorders the stack by ascending key", func() {
			a.SortByKey()

			var keys []string
			for it := a.Begin(); !it.Equal(a.End()); it = it.Next() {
				keys = append(keys, string(it.Key()))
			}
			So(keys, ShouldResemble, []string{"apple", "banana", "cherry"})
		})
	})
}

func TestSortByHeapThenMergeCoalescesAdjacentGarbage(t *testing.T) {
	Convey("Given two heap-adjacent deleted entries", t, func() {
		a := newArena(t, 4096)
		for _, k := range []string{"a", "b", "c"} {
			So(a.Create([]byte(k), []byte("11111111")), ShouldEqual, arena.NoError)
		}
		So(a.Delete([]byte("a")), ShouldEqual, arena.NoError)
		So(a.Delete([]byte("b")), ShouldEqual, arena.NoError)

		countBefore := a.GarbageCount()

		Convey("SortByHeap followed by Merge coalesces them without losing content", func() {
			fp := a.Fingerprint()

			a.SortByHeap()
			a.Merge()

			So(a.GarbageCount(), ShouldBeLessThanOrEqualTo, countBefore)
			So(a.Fingerprint(), ShouldEqual, fp)

			dst := make([]byte, a.ReadSize([]byte("c")))
			So(a.Read([]byte("c"), dst), ShouldEqual, arena.NoError)
		})
	})
}

func TestSortPreservesContent(t *testing.T) {
	Convey("Given a populated arena", t, func() {
		a := newArena(t, 4096)
		for _, k := range []string{"z", "y", "x"} {
			So(a.Create([]byte(k), []byte(k+k)), ShouldEqual, arena.NoError)
		}
		fp := a.Fingerprint()

		Convey("SortByKey does not change the fingerprint", func() {
			a.SortByKey()
			So(a.Fingerprint(), ShouldEqual, fp)
		})

		Convey("SortByHeap does not change the fingerprint", func() {
			a.SortByHeap()
			So(a.Fingerprint(), ShouldEqual, fp)
		})
	})
}
