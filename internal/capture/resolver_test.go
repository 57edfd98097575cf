package capture

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
}

// exifJPEG builds a minimal JPEG whose APP1 segment carries a little-endian
// TIFF block with DateTimeOriginal in the Exif sub-IFD. With brokenGPS the
// IFD0 also points at a GPS sub-IFD past the end of the data.
func exifJPEG(taken string, brokenGPS bool) []byte {
	le := binary.LittleEndian
	entry := func(buf *bytes.Buffer, tag, format uint16, count, value uint32) {
		_ = binary.Write(buf, le, tag)
		_ = binary.Write(buf, le, format)
		_ = binary.Write(buf, le, count)
		_ = binary.Write(buf, le, value)
	}
	const (
		formatASCII = 2
		formatLong  = 4
	)

	ifd0Entries := 1
	if brokenGPS {
		ifd0Entries++
	}
	exifOff := uint32(8 + 2 + 12*ifd0Entries + 4)
	dateOff := exifOff + 2 + 12 + 4
	date := append([]byte(taken), 0)

	var tiff bytes.Buffer
	tiff.WriteString("II")
	_ = binary.Write(&tiff, le, uint16(42))
	_ = binary.Write(&tiff, le, uint32(8))

	_ = binary.Write(&tiff, le, uint16(ifd0Entries))
	entry(&tiff, 0x8769, formatLong, 1, exifOff) // ExifIFDPointer
	if brokenGPS {
		entry(&tiff, 0x8825, formatLong, 1, 0xFFFF) // GPSInfoIFDPointer
	}
	_ = binary.Write(&tiff, le, uint32(0))

	_ = binary.Write(&tiff, le, uint16(1))
	entry(&tiff, 0x9003, formatASCII, uint32(len(date)), dateOff) // DateTimeOriginal
	_ = binary.Write(&tiff, le, uint32(0))
	tiff.Write(date)

	app1 := append([]byte("Exif\x00\x00"), tiff.Bytes()...)

	var jpg bytes.Buffer
	jpg.Write([]byte{0xFF, 0xD8, 0xFF, 0xE1})
	_ = binary.Write(&jpg, binary.BigEndian, uint16(len(app1)+2))
	jpg.Write(app1)
	jpg.Write([]byte{0xFF, 0xD9})
	return jpg.Bytes()
}

func TestResolver_ExifWinsOverFilename(t *testing.T) {
	path := filepath.Join(t.TempDir(), "IMG_20200101_000000.jpg")
	if err := os.WriteFile(path, exifJPEG("2024:03:05 08:15:00", false), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewResolver(zap.NewNop(), time.UTC, MethodExif, MethodFilename, MethodStat)
	rec := r.Resolve(context.Background(), path)
	if !rec.Resolved || rec.Method != MethodExif {
		t.Fatalf("expected exif resolution, got %+v", rec)
	}
	// EXIF times carry no zone; only the clock reading is checked.
	if got := rec.Captured.Format("2006-01-02 15:04:05"); got != "2024-03-05 08:15:00" {
		t.Fatalf("expected 2024-03-05 08:15:00, got %s", got)
	}
}

func TestExifDate_ToleratesBrokenSubIFD(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gps.jpg")
	if err := os.WriteFile(path, exifJPEG("2023:12:24 18:00:05", true), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := exifDate(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s := got.Format("2006-01-02 15:04:05"); s != "2023-12-24 18:00:05" {
		t.Fatalf("expected 2023-12-24 18:00:05, got %s", s)
	}
}

func TestExifDate_RejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.jpg")
	writeFile(t, path)
	if _, err := exifDate(path); err == nil {
		t.Fatal("expected error for a file without exif")
	}
}

func TestFilenameDate(t *testing.T) {
	tests := []struct {
		name string
		want time.Time
		ok   bool
	}{
		{"DJI_20250619224111_0001_D.MP4", time.Date(2025, 6, 19, 22, 41, 11, 0, time.UTC), true},
		{"IMG_20250619_123456.jpg", time.Date(2025, 6, 19, 12, 34, 56, 0, time.UTC), true},
		{"20250616_C0416.MP4", time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), true},
		{"2025-06-19_beach.jpg", time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC), true},
		{"scan20240101.png", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"IMG_1234.JPG", time.Time{}, false},
		{"99999999.jpg", time.Time{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := filenameDate(tc.name, time.UTC)
			if !tc.ok {
				if !errors.Is(err, ErrNoDate) {
					t.Fatalf("expected ErrNoDate, got %v (%s)", err, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestResolver_FallsThroughMethods(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "IMG_20240305_081500.jpg")
	writeFile(t, path)

	r := NewResolver(zap.NewNop(), time.UTC, MethodExif, MethodFilename, MethodStat)
	rec := r.Resolve(context.Background(), path)

	if !rec.Resolved {
		t.Fatalf("expected resolved record, got %+v", rec)
	}
	if rec.Method != MethodFilename {
		t.Fatalf("expected filename method, got %q", rec.Method)
	}
	want := time.Date(2024, 3, 5, 8, 15, 0, 0, time.UTC)
	if !rec.Captured.Equal(want) {
		t.Fatalf("expected %s, got %s", want, rec.Captured)
	}
}

func TestResolver_StatMethod(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "holiday.jpg")
	writeFile(t, path)
	mtime := time.Date(2023, 8, 14, 10, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	exifOnly := NewResolver(zap.NewNop(), time.UTC)
	if rec := exifOnly.Resolve(context.Background(), path); rec.Resolved {
		t.Fatalf("expected exif-only lookup to fail, got %+v", rec)
	}

	withStat := NewResolver(zap.NewNop(), time.UTC, MethodExif, MethodStat)
	rec := withStat.Resolve(context.Background(), path)
	if !rec.Resolved || rec.Method != MethodStat {
		t.Fatalf("expected stat resolution, got %+v", rec)
	}
	if !rec.Captured.Equal(mtime) {
		t.Fatalf("expected %s, got %s", mtime, rec.Captured)
	}
}

func TestResolver_MissingFileIsUnresolved(t *testing.T) {
	r := NewResolver(zap.NewNop(), time.UTC, MethodExif, MethodStat)
	rec := r.Resolve(context.Background(), filepath.Join(t.TempDir(), "gone.jpg"))
	if rec.Resolved {
		t.Fatalf("expected unresolved record, got %+v", rec)
	}
	if rec.Method != "" {
		t.Fatalf("expected empty method, got %q", rec.Method)
	}
}

func TestResolver_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "IMG_20240305_081500.jpg")
	writeFile(t, path)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewResolver(zap.NewNop(), time.UTC, MethodFilename)
	if rec := r.Resolve(ctx, path); rec.Resolved {
		t.Fatalf("expected cancelled lookup to stay unresolved, got %+v", rec)
	}
}

func TestNewResolver_DefaultsToExif(t *testing.T) {
	r := NewResolver(zap.NewNop(), nil)
	if !reflect.DeepEqual(r.Methods(), []Method{MethodExif}) {
		t.Fatalf("expected [exif], got %v", r.Methods())
	}
}

func TestParseMethod(t *testing.T) {
	if m, err := ParseMethod(" STAT "); err != nil || m != MethodStat {
		t.Fatalf("expected stat, got %q (%v)", m, err)
	}
	if _, err := ParseMethod("xmp"); err == nil {
		t.Fatal("expected error for unknown method")
	}
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.jpg"))
	writeFile(t, filepath.Join(dir, "a.JPG"))
	writeFile(t, filepath.Join(dir, "notes.txt"))
	writeFile(t, filepath.Join(dir, ".hidden.jpg"))
	writeFile(t, filepath.Join(dir, "sub", "c.mov"))
	writeFile(t, filepath.Join(dir, ".thumbs", "d.jpg"))
	writeFile(t, filepath.Join(dir, "THMBNL", "e.jpg"))

	single := filepath.Join(dir, "notes.txt")
	missing := filepath.Join(dir, "missing.jpg")

	got, err := Expand([]string{single, dir, missing})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		single,
		filepath.Join(dir, "a.JPG"),
		filepath.Join(dir, "b.jpg"),
		filepath.Join(dir, "sub", "c.mov"),
		missing,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected\n%v\ngot\n%v", want, got)
	}
}
