package imports

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"sensory-safari-api/internal/adapters/storage/memory"
	"sensory-safari-api/internal/domain/animals"

	"github.com/smartystreets/goconvey/convey"
)

type fakeUploader struct {
	mu     sync.Mutex
	calls  []string
	failOn map[string]bool // filename
}

func (u *fakeUploader) Upload(ctx context.Context, in animals.UploadInput) (animals.Media, error) {
	_, _ = io.Copy(io.Discard, in.Body)

	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls = append(u.calls, in.Folder+"/"+in.Filename)
	if u.failOn[in.Filename] {
		return animals.Media{}, errors.New("upload rejected")
	}
	id := "sensory-safari/" + in.Folder + "/" + strings.TrimSuffix(in.Filename, filepath.Ext(in.Filename))
	return animals.Media{URL: "https://media.test/" + id, AssetID: id}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, assetID string, kind animals.MediaKind) error {
	return nil
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("data:"+n), 0o644); err != nil {
			t.Fatalf("write %s: %v", n, err)
		}
	}
}

func TestImporterRun(t *testing.T) {
	convey.Convey("Given an images and an audio directory", t, func() {
		ctx := context.Background()
		imagesDir, audioDir := t.TempDir(), t.TempDir()
		writeFiles(t, imagesDir, "alligator.jpg", "Owl.PNG", "zebra.webp", "notes.txt", "bee.jpeg")
		writeFiles(t, audioDir, "alligator.mp3", "bee.mp3")

		svc := animals.NewService(memory.NewAnimalRepo(), nil)
		up := &fakeUploader{failOn: map[string]bool{}}
		var progress bytes.Buffer
		im := NewImporter(svc, up, Options{ImagesDir: imagesDir, AudioDir: audioDir, Progress: &progress})

		convey.Convey("When the import runs on an empty catalog", func() {
			rep, err := im.Run(ctx)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then every image becomes a record keyed by its filename", func() {
				convey.So(rep.Found, convey.ShouldEqual, 4)
				convey.So(rep.Created, convey.ShouldResemble, []string{"Owl", "alligator", "bee", "zebra"})

				a, err := svc.GetByKey(ctx, "alligator")
				convey.So(err, convey.ShouldBeNil)
				convey.So(a.Name, convey.ShouldEqual, "alligator")
				convey.So(a.Description, convey.ShouldEqual, "Description for alligator")
				convey.So(a.Category, convey.ShouldEqual, animals.DefaultCategory)
				convey.So(a.Image.AssetID, convey.ShouldEqual, "sensory-safari/images/alligator")
				convey.So(a.Audio.AssetID, convey.ShouldEqual, "sensory-safari/audio/alligator")
			})

			convey.Convey("Then a missing audio file leaves the slot empty", func() {
				convey.So(rep.MissingAudio, convey.ShouldResemble, []string{"Owl", "zebra"})
				z, _ := svc.GetByKey(ctx, "zebra")
				convey.So(z.Audio.IsZero(), convey.ShouldBeTrue)
			})

			convey.Convey("Then progress lines are printed", func() {
				convey.So(progress.String(), convey.ShouldContainSubstring, "[1/4] Processing Owl...")
				convey.So(progress.String(), convey.ShouldContainSubstring, "[4/4] Processing zebra...")
			})
		})

		convey.Convey("When a record already exists under that key, even renamed", func() {
			_, err := svc.Create(ctx, animals.CreateInput{Key: "bee", Name: "Bee"})
			convey.So(err, convey.ShouldBeNil)

			rep, err := im.Run(ctx)

			convey.So(err, convey.ShouldBeNil)
			convey.So(rep.Skipped, convey.ShouldResemble, []string{"bee"})
			items, _ := svc.List(ctx)
			convey.So(len(items), convey.ShouldEqual, 4)
		})

		convey.Convey("When the import runs twice", func() {
			_, err := im.Run(ctx)
			convey.So(err, convey.ShouldBeNil)
			calls := len(up.calls)

			rep, err := im.Run(ctx)

			convey.So(err, convey.ShouldBeNil)
			convey.So(len(rep.Skipped), convey.ShouldEqual, 4)
			convey.So(len(up.calls), convey.ShouldEqual, calls)
		})

		convey.Convey("When an image upload fails", func() {
			up.failOn["zebra.webp"] = true
			rep, err := im.Run(ctx)

			convey.So(err, convey.ShouldBeNil)
			convey.So(rep.Failed, convey.ShouldResemble, []string{"zebra"})
			convey.So(len(rep.Created), convey.ShouldEqual, 3)
			exists, _ := svc.Exists(ctx, "zebra")
			convey.So(exists, convey.ShouldBeFalse)
		})

		convey.Convey("When an audio upload fails", func() {
			up.failOn["bee.mp3"] = true
			rep, err := im.Run(ctx)

			convey.So(err, convey.ShouldBeNil)
			convey.So(rep.Created, convey.ShouldContain, "bee")
			b, _ := svc.GetByKey(ctx, "bee")
			convey.So(b.Image.URL, convey.ShouldNotBeEmpty)
			convey.So(b.Audio.IsZero(), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given a missing images directory", t, func() {
		im := NewImporter(animals.NewService(memory.NewAnimalRepo(), nil), &fakeUploader{}, Options{
			ImagesDir: filepath.Join(t.TempDir(), "nope"),
		})

		_, err := im.Run(context.Background())

		convey.So(errors.Is(err, ErrImagesDir), convey.ShouldBeTrue)
	})

	convey.Convey("Given no media uploader", t, func() {
		im := NewImporter(animals.NewService(memory.NewAnimalRepo(), nil), nil, Options{ImagesDir: t.TempDir()})

		_, err := im.Run(context.Background())

		convey.So(errors.Is(err, ErrNoUploader), convey.ShouldBeTrue)
	})
}
