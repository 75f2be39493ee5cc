package arena_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/kvarena/pkg/arena"
)

func TestCopySucceedsWhenDestHasRoom(t *testing.T) {
	Convey("Given a populated source and a roomy destination", t, func() {
		src := newArena(t, 4096)
		for _, k := range []string{"a", "b", "c"} {
			So(src.Create([]byte(k), []byte(k+k)), ShouldEqual, arena.NoError)
		}
		dest := newArena(t, 4096)

		Convey("Copy transfers every live entry", func() {
			So(arena.Copy(dest, src), ShouldEqual, arena.NoError)
			So(dest.Count(), ShouldEqual, src.Count())
			So(dest.Fingerprint(), ShouldEqual, src.Fingerprint())
		})
	})
}

func TestCopyStopsOnFirstFailure(t *testing.T) {
	Convey("Given a destination too small to hold every source entry", t, func() {
		src := newArena(t, 4096)
		for _, k := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
			So(src.Create([]byte(k), []byte("1234567890123456")), ShouldEqual, arena.NoError)
		}

		dest, err := arena.Init(make([]byte, 44+2*(32+16)), 16, 16)
		So(err, ShouldBeNil)

		Convey("Copy returns Error and leaves dest partially populated", func() {
			So(arena.Copy(dest, src), ShouldEqual, arena.Error)
			So(dest.Count(), ShouldBeGreaterThan, 0)
			So(dest.Count(), ShouldBeLessThan, src.Count())
		})
	})
}
