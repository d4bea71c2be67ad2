package filesystem

import (
	"io"
	"os"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})
	})
}

func TestWriteAtomic(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		SetMemMapFs()
		path := "/cache/reelfeed/responses/abc"

		Convey("Parents are created and no temp file is left", func() {
			So(WriteAtomic(path, []byte(`{"ok":true}`)), ShouldBeNil)

			So(string(lo.Must(API().ReadFile(path))), ShouldEqual, `{"ok":true}`)
			So(lo.Must(API().Exists(path+".tmp")), ShouldBeFalse)
		})

		Convey("Existing content is replaced", func() {
			So(WriteAtomic(path, []byte("old")), ShouldBeNil)
			So(WriteAtomic(path, []byte("new")), ShouldBeNil)
			So(string(lo.Must(API().ReadFile(path))), ShouldEqual, "new")
		})
	})

	Convey("GacheFs goes through the active backend", t, func() {
		SetMemMapFs()
		fs := GacheFs{}

		So(fs.MkdirAll("/gache", os.ModePerm), ShouldBeNil)
		f, err := fs.OpenFile("/gache/value.json", os.O_CREATE|os.O_RDWR, 0644)
		So(err, ShouldBeNil)
		_, err = io.WriteString(f, "42")
		So(err, ShouldBeNil)
		So(f.Close(), ShouldBeNil)

		So(string(lo.Must(API().ReadFile("/gache/value.json"))), ShouldEqual, "42")
	})
}
