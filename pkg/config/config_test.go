package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/kvarena/pkg/config"
)

func TestLoadFillsDefaults(t *testing.T) {
	Convey("Given a YAML document overriding only one field", t, func() {
		r := strings.NewReader("hunk_size: 128\n")

		Convey("Load fills the rest from Default", func() {
			cfg, err := config.Load(r)

			So(err, ShouldBeNil)
			So(cfg.HunkSize, ShouldEqual, 128)
			So(cfg.Size, ShouldEqual, config.Default.Size)
			So(cfg.MaxKeyLength, ShouldEqual, config.Default.MaxKeyLength)
		})
	})

	Convey("Given an empty document", t, func() {
		Convey("Load returns Default verbatim", func() {
			cfg, err := config.Load(strings.NewReader(""))

			So(err, ShouldBeNil)
			So(cfg, ShouldResemble, config.Default)
		})
	})
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	Convey("Given a negative size", t, func() {
		r := strings.NewReader("size: -1\n")

		Convey("Load fails validation", func() {
			_, err := config.Load(r)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLoadReportsTypeErrorsField(t *testing.T) {
	Convey("Given a field with the wrong YAML type", t, func() {
		r := strings.NewReader("size: not-a-number\n")

		Convey("Load surfaces the decode error without a raw yaml.TypeError wrapper", func() {
			_, err := config.Load(r)

			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "config: decode:")
			So(err.Error(), ShouldNotContainSubstring, "yaml: unmarshal errors:")
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given a config file on disk", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "kvarena.yaml")
		So(os.WriteFile(path, []byte("size: 2048\nhunk_size: 32\nmax_key_length: 32\n"), 0o644), ShouldBeNil)

		Convey("LoadFile parses it", func() {
			cfg, err := config.LoadFile(path)

			So(err, ShouldBeNil)
			So(cfg.Size, ShouldEqual, 2048)
			So(cfg.HunkSize, ShouldEqual, 32)
			So(cfg.MaxKeyLength, ShouldEqual, 32)
		})
	})

	Convey("Given a missing path", t, func() {
		Convey("LoadFile fails", func() {
			_, err := config.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestNewArena(t *testing.T) {
	Convey("Given a valid configuration", t, func() {
		cfg := config.Config{Size: 4096, HunkSize: 16, MaxKeyLength: 16}

		Convey("NewArena builds a usable arena", func() {
			a, err := cfg.NewArena()

			So(err, ShouldBeNil)
			So(a.Size(), ShouldEqual, 4096)
			So(a.MaxKeyLength(), ShouldEqual, 16)
		})
	})
}
