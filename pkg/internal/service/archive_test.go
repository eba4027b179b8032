package service

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"

	"github.com/almostmoments/momentvault/pkg/internal/model"
	"github.com/almostmoments/momentvault/pkg/internal/types"
)

func seedAssetWithObject(t *testing.T, gs *GalleryService, store *fakeStore, galleryID, key, fileName string, data []byte) {
	t.Helper()

	store.put(key, fileName, data)

	row := model.GalleryAsset{
		ID:        uuid.NewString(),
		GalleryID: galleryID,
		ObjectKey: key,
		FileName:  fileName,
		Size:      int64(len(data)),
	}
	if err := gs.dbClient.GetDB().Create(&row).Error; err != nil {
		t.Fatalf("seed asset: %v", err)
	}
}

func readZip(t *testing.T, data []byte) map[string][]byte {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}

	entries := make(map[string][]byte, len(zr.File))

	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open entry %s: %v", f.Name, err)
		}

		b, err := io.ReadAll(rc)

		_ = rc.Close()

		if err != nil {
			t.Fatalf("read entry %s: %v", f.Name, err)
		}

		entries[f.Name] = b
	}

	return entries
}

func TestBuildArchiveComplete(t *testing.T) {
	store := newFakeStore()
	gs := newTestService(t, store)

	seedGallery(t, gs, "g1", "Summer Wedding", nil)

	for i := range 30 {
		seedAssetWithObject(t, gs, store, "g1",
			fmt.Sprintf("g1/obj-%02d.jpg", i),
			fmt.Sprintf("photo-%02d.jpg", i),
			[]byte(fmt.Sprintf("image-bytes-%02d", i)))
	}

	var buf bytes.Buffer

	summary, err := gs.BuildArchive(context.Background(), "g1", nil, &buf, nil)
	if err != nil {
		t.Fatalf("BuildArchive: %v", err)
	}

	if summary.Entries != 30 {
		t.Errorf("entries = %d, want 30", summary.Entries)
	}

	if summary.ArchiveName != "summer-wedding.zip" {
		t.Errorf("archive name = %q, want summer-wedding.zip", summary.ArchiveName)
	}

	entries := readZip(t, buf.Bytes())
	if len(entries) != 30 {
		t.Fatalf("zip entries = %d, want 30", len(entries))
	}

	if got := string(entries["photo-07.jpg"]); got != "image-bytes-07" {
		t.Errorf("entry content = %q", got)
	}
}

func TestBuildArchiveDeduplicatesNames(t *testing.T) {
	store := newFakeStore()
	gs := newTestService(t, store)

	seedGallery(t, gs, "g1", "Party", nil)

	seedAssetWithObject(t, gs, store, "g1", "g1/a.jpg", "photo.jpg", []byte("first"))
	seedAssetWithObject(t, gs, store, "g1", "g1/b.jpg", "photo.jpg", []byte("second"))
	seedAssetWithObject(t, gs, store, "g1", "g1/c.jpg", "photo.jpg", []byte("third"))

	var buf bytes.Buffer

	summary, err := gs.BuildArchive(context.Background(), "g1", nil, &buf, nil)
	if err != nil {
		t.Fatalf("BuildArchive: %v", err)
	}

	if summary.Entries != 3 {
		t.Fatalf("entries = %d, want 3", summary.Entries)
	}

	entries := readZip(t, buf.Bytes())

	for _, name := range []string{"photo.jpg", "photo (1).jpg", "photo (2).jpg"} {
		if _, ok := entries[name]; !ok {
			t.Errorf("zip missing entry %q, has %v", name, mapKeys(entries))
		}
	}
}

func TestBuildArchiveCompletenessGate(t *testing.T) {
	store := newFakeStore()
	gs := newTestService(t, store)

	seedGallery(t, gs, "g1", "Party", nil)

	for i := range 10 {
		seedAssetWithObject(t, gs, store, "g1",
			fmt.Sprintf("g1/obj-%d.jpg", i),
			fmt.Sprintf("p-%d.jpg", i),
			[]byte("data"))
	}

	// 两个对象拉取失败，归档必须整体拒绝
	store.failGet["g1/obj-3.jpg"] = true
	store.failGet["g1/obj-8.jpg"] = true

	var buf bytes.Buffer

	_, err := gs.BuildArchive(context.Background(), "g1", nil, &buf, nil)

	var perr *types.PartialCompletionError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want PartialCompletionError", err)
	}

	if perr.Added != 8 || perr.Expected != 10 {
		t.Errorf("gate = %d/%d, want 8/10", perr.Added, perr.Expected)
	}

	// 未通过门限时不得向下游写出任何字节
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes despite failed gate", buf.Len())
	}
}

func TestBuildArchiveEmptyGalleryNoOp(t *testing.T) {
	store := newFakeStore()
	gs := newTestService(t, store)

	seedGallery(t, gs, "g1", "Empty", nil)

	var buf bytes.Buffer

	summary, err := gs.BuildArchive(context.Background(), "g1", nil, &buf, nil)
	if err != nil {
		t.Fatalf("BuildArchive: %v", err)
	}

	if summary != nil {
		t.Errorf("summary = %+v, want nil for empty gallery", summary)
	}

	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes for empty gallery", buf.Len())
	}
}

func TestBuildArchiveSubset(t *testing.T) {
	store := newFakeStore()
	gs := newTestService(t, store)

	seedGallery(t, gs, "g1", "Party", nil)

	for i := range 6 {
		seedAssetWithObject(t, gs, store, "g1",
			fmt.Sprintf("g1/obj-%d.jpg", i),
			fmt.Sprintf("p-%d.jpg", i),
			[]byte("data"))
	}

	req := &types.ArchiveRequest{ObjectKeys: []string{"g1/obj-1.jpg", "g1/obj-4.jpg"}}

	var buf bytes.Buffer

	summary, err := gs.BuildArchive(context.Background(), "g1", req, &buf, nil)
	if err != nil {
		t.Fatalf("BuildArchive: %v", err)
	}

	if summary.Entries != 2 {
		t.Errorf("entries = %d, want 2", summary.Entries)
	}

	entries := readZip(t, buf.Bytes())
	if _, ok := entries["p-1.jpg"]; !ok {
		t.Error("subset archive missing p-1.jpg")
	}

	if _, ok := entries["p-4.jpg"]; !ok {
		t.Error("subset archive missing p-4.jpg")
	}
}

func TestBuildArchiveProgress(t *testing.T) {
	store := newFakeStore()
	gs := newTestService(t, store)

	seedGallery(t, gs, "g1", "Party", nil)

	for i := range 4 {
		seedAssetWithObject(t, gs, store, "g1",
			fmt.Sprintf("g1/obj-%d.jpg", i), fmt.Sprintf("p-%d.jpg", i), []byte("data"))
	}

	var reports []types.ArchiveProgress

	var buf bytes.Buffer

	_, err := gs.BuildArchive(context.Background(), "g1", nil, &buf, func(p types.ArchiveProgress) {
		reports = append(reports, p)
	})
	if err != nil {
		t.Fatalf("BuildArchive: %v", err)
	}

	if len(reports) != 4 {
		t.Fatalf("progress reports = %d, want 4", len(reports))
	}

	last := reports[len(reports)-1]
	if last.FilesAdded != 4 || last.Percent != 100 {
		t.Errorf("final progress = %+v, want 4/100%%", last)
	}
}

func TestArchiveName(t *testing.T) {
	cases := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"Summer Wedding", 100, "summer-wedding.zip"},
		{"Léa & Tom's Party!", 100, "la-toms-party.zip"},
		{"   spaced   out   ", 100, "spaced-out.zip"},
		{"MiXeD_case-Name", 100, "mixed_case-name.zip"},
		{"", 100, "gallery.zip"},
		{"!!!###", 100, "gallery.zip"},
		{"abcdefghij", 5, "abcde.zip"},
	}

	for _, tc := range cases {
		if got := ArchiveName(tc.in, tc.maxLen); got != tc.want {
			t.Errorf("ArchiveName(%q, %d) = %q, want %q", tc.in, tc.maxLen, got, tc.want)
		}
	}
}

func TestDedupeEntryName(t *testing.T) {
	counts := make(map[string]int)

	if got := dedupeEntryName(counts, "photo.jpg"); got != "photo.jpg" {
		t.Errorf("first = %q", got)
	}

	if got := dedupeEntryName(counts, "photo.jpg"); got != "photo (1).jpg" {
		t.Errorf("second = %q", got)
	}

	if got := dedupeEntryName(counts, "photo.jpg"); got != "photo (2).jpg" {
		t.Errorf("third = %q", got)
	}

	if got := dedupeEntryName(counts, "noext"); got != "noext" {
		t.Errorf("no extension = %q", got)
	}

	if got := dedupeEntryName(counts, "noext"); got != "noext (1)" {
		t.Errorf("no extension dup = %q", got)
	}
}

func mapKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	return keys
}
