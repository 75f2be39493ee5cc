package arena_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"

	"github.com/flier/kvarena/internal/debug"
	"github.com/flier/kvarena/pkg/arena"
)

func TestIteratorOverLiveEntriesOnly(t *testing.T) {
	Convey("Given an arena with a deleted entry between two live ones", t, func() {
		a := newArena(t, 4096)
		So(a.Create([]byte("a"), []byte("1")), ShouldEqual, arena.NoError)
		So(a.Create([]byte("b"), []byte("2")), ShouldEqual, arena.NoError)
		So(a.Create([]byte("c"), []byte("3")), ShouldEqual, arena.NoError)
		So(a.Delete([]byte("b")), ShouldEqual, arena.NoError)

		Convey("Begin..End visits only the live keys, in stack order", func() {
			var keys []string
			for it := a.Begin(); !it.Equal(a.End()); it = it.Next() {
				keys = append(keys, string(it.Key()))
			}
			So(keys, ShouldResemble, []string{"a", "c"})
		})
	})

	Convey("Given an empty arena", t, func() {
		a := newArena(t, 4096)

		Convey("Begin already equals End", func() {
			So(a.Begin().Equal(a.End()), ShouldBeTrue)
		})
	})
}

func TestIteratorValueAccess(t *testing.T) {
	Convey("Given an arena with one entry", t, func() {
		a := newArena(t, 4096)
		So(a.Create([]byte("name"), []byte("gopher")), ShouldEqual, arena.NoError)

		it := a.Begin()

		Convey("Key, Value and ValueSize report the stored entry", func() {
			So(string(it.Key()), ShouldEqual, "name")
			So(string(it.Value()), ShouldEqual, "gopher")
			So(it.ValueSize(), ShouldEqual, 6)
		})
	})
}

func TestIteratorInvalidatedByMutation(t *testing.T) {
	Convey("Given an iterator obtained before a mutation", t, func() {
		a := newArena(t, 4096)
		So(a.Create([]byte("a"), []byte("1")), ShouldEqual, arena.NoError)

		it := a.Begin()
		So(a.Create([]byte("b"), []byte("2")), ShouldEqual, arena.NoError)

		Convey("Using it afterward is a precondition violation", func() {
			if !debug.Enabled {
				t.Skip("checkValid's assertion only fires in a debug build")
			}
			assert.Panics(t, func() { it.Key() })
		})
	})
}
