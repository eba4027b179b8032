package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/almostmoments/momentvault/pkg/blurhash"
	"github.com/almostmoments/momentvault/pkg/internal/model"
	"github.com/almostmoments/momentvault/pkg/internal/types"
)

func TestFinalizeAssetsCreatesRowsAndCounter(t *testing.T) {
	store := newFakeStore()
	gs := newTestService(t, store)

	seedGallery(t, gs, "g1", "Wedding", nil)

	req := &types.FinalizeAssetsRequest{}
	for i := range 8 {
		key := fmt.Sprintf("g1/obj-%d.jpg", i)
		store.put(key, fmt.Sprintf("photo-%d.jpg", i), []byte("jpeg"))
		req.Assets = append(req.Assets, types.FinalizeAssetItem{
			ObjectKey: key,
			FileName:  fmt.Sprintf("photo-%d.jpg", i),
			Size:      4,
			Blurhash:  "LEHV6nWB2yk8pyo0adR*.7kCMdnj",
			Width:     800,
			Height:    600,
		})
	}

	resp, err := gs.FinalizeAssets(context.Background(), "g1", req)
	if err != nil {
		t.Fatalf("FinalizeAssets: %v", err)
	}

	if resp.Created != 8 {
		t.Errorf("created = %d, want 8", resp.Created)
	}

	var count int64
	gs.dbClient.GetDB().Model(&model.GalleryAsset{}).Where("gallery_id = ?", "g1").Count(&count)

	if count != 8 {
		t.Errorf("rows = %d, want 8", count)
	}

	var g model.Gallery
	gs.dbClient.GetDB().First(&g, "id = ?", "g1")

	if g.TotalAssets != 8 {
		t.Errorf("total_assets = %d, want 8", g.TotalAssets)
	}
}

func TestFinalizeAssetsDeduplicatesWithinCall(t *testing.T) {
	store := newFakeStore()
	gs := newTestService(t, store)

	seedGallery(t, gs, "g1", "Wedding", nil)
	store.put("g1/dup.jpg", "dup.jpg", []byte("jpeg"))

	req := &types.FinalizeAssetsRequest{
		Assets: []types.FinalizeAssetItem{
			{ObjectKey: "g1/dup.jpg", FileName: "first.jpg"},
			{ObjectKey: "g1/dup.jpg", FileName: "second.jpg"},
			{ObjectKey: "g1/dup.jpg", FileName: "third.jpg"},
		},
	}

	resp, err := gs.FinalizeAssets(context.Background(), "g1", req)
	if err != nil {
		t.Fatalf("FinalizeAssets: %v", err)
	}

	if resp.Created != 1 {
		t.Errorf("created = %d, want 1", resp.Created)
	}

	// 首见者胜
	var row model.GalleryAsset
	gs.dbClient.GetDB().First(&row, "gallery_id = ?", "g1")

	if row.FileName != "first.jpg" {
		t.Errorf("file_name = %q, want first.jpg", row.FileName)
	}
}

func TestFinalizeAssetsFailsClosedOnMissingObjects(t *testing.T) {
	store := newFakeStore()
	gs := newTestService(t, store)

	seedGallery(t, gs, "g1", "Wedding", nil)
	store.put("g1/a.jpg", "a.jpg", []byte("jpeg"))

	req := &types.FinalizeAssetsRequest{
		ObjectKeys: []string{"g1/a.jpg", "g1/missing-1.jpg", "g1/missing-2.jpg"},
	}

	_, err := gs.FinalizeAssets(context.Background(), "g1", req)

	var merr *types.MissingObjectsError
	if !errors.As(err, &merr) {
		t.Fatalf("err = %v, want MissingObjectsError", err)
	}

	if len(merr.MissingKeys) != 2 {
		t.Errorf("missing = %v, want 2 keys", merr.MissingKeys)
	}

	// 整批拒绝，一行也不该落库
	var count int64
	gs.dbClient.GetDB().Model(&model.GalleryAsset{}).Count(&count)

	if count != 0 {
		t.Errorf("rows = %d, want 0 after fail-closed batch", count)
	}

	var g model.Gallery
	gs.dbClient.GetDB().First(&g, "id = ?", "g1")

	if g.TotalAssets != 0 {
		t.Errorf("total_assets = %d, want 0", g.TotalAssets)
	}
}

func TestFinalizeAssetsObjectKeysPathRecoversMetadata(t *testing.T) {
	store := newFakeStore()
	gs := newTestService(t, store)

	seedGallery(t, gs, "g1", "Wedding", nil)
	store.put("g1/k1.jpg", "original-name.jpg", []byte("jpegdata"))

	req := &types.FinalizeAssetsRequest{ObjectKeys: []string{"g1/k1.jpg"}}

	resp, err := gs.FinalizeAssets(context.Background(), "g1", req)
	if err != nil {
		t.Fatalf("FinalizeAssets: %v", err)
	}

	if resp.Created != 1 {
		t.Fatalf("created = %d, want 1", resp.Created)
	}

	var row model.GalleryAsset
	gs.dbClient.GetDB().First(&row, "gallery_id = ?", "g1")

	if row.FileName != "original-name.jpg" {
		t.Errorf("file_name = %q, want original-name.jpg from storage metadata", row.FileName)
	}

	if row.Size != 8 {
		t.Errorf("size = %d, want 8", row.Size)
	}

	// "jpegdata" 不是可解码图片，占位图应落到固定兜底值
	if row.Blurhash != blurhash.FallbackHash {
		t.Errorf("blurhash = %q, want fallback", row.Blurhash)
	}

	if row.Width != blurhash.FallbackDimension || row.Height != blurhash.FallbackDimension {
		t.Errorf("dimensions = %dx%d, want %d", row.Width, row.Height, blurhash.FallbackDimension)
	}
}

func TestFinalizeAssetsRejectsSampleGallery(t *testing.T) {
	store := newFakeStore()
	gs := newTestService(t, store)

	seedGallery(t, gs, gs.cfg.Gallery.SampleID, "Demo", nil)

	req := &types.FinalizeAssetsRequest{ObjectKeys: []string{"sample/a.jpg"}}

	_, err := gs.FinalizeAssets(context.Background(), gs.cfg.Gallery.SampleID, req)

	var verr *types.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("err = %v, want ValidationError for sample gallery", err)
	}
}

func TestFinalizeAssetsRejectsExpiredGallery(t *testing.T) {
	store := newFakeStore()
	gs := newTestService(t, store)

	past := time.Now().Add(-time.Hour)
	seedGallery(t, gs, "g1", "Old Event", &past)

	req := &types.FinalizeAssetsRequest{ObjectKeys: []string{"g1/a.jpg"}}

	_, err := gs.FinalizeAssets(context.Background(), "g1", req)

	var eerr *types.ExpiredError
	if !errors.As(err, &eerr) {
		t.Errorf("err = %v, want ExpiredError", err)
	}
}

func TestFinalizeAssetsUnknownGallery(t *testing.T) {
	gs := newTestService(t, newFakeStore())

	req := &types.FinalizeAssetsRequest{ObjectKeys: []string{"nope/a.jpg"}}

	_, err := gs.FinalizeAssets(context.Background(), "nope", req)

	var nerr *types.NotFoundError
	if !errors.As(err, &nerr) {
		t.Errorf("err = %v, want NotFoundError", err)
	}
}

func TestFinalizeAssetsRequiresExactlyOneShape(t *testing.T) {
	store := newFakeStore()
	gs := newTestService(t, store)

	seedGallery(t, gs, "g1", "Wedding", nil)

	both := &types.FinalizeAssetsRequest{
		Assets:     []types.FinalizeAssetItem{{ObjectKey: "g1/a.jpg"}},
		ObjectKeys: []string{"g1/b.jpg"},
	}

	var verr *types.ValidationError

	if _, err := gs.FinalizeAssets(context.Background(), "g1", both); !errors.As(err, &verr) {
		t.Errorf("both shapes: err = %v, want ValidationError", err)
	}

	if _, err := gs.FinalizeAssets(context.Background(), "g1", &types.FinalizeAssetsRequest{}); !errors.As(err, &verr) {
		t.Errorf("neither shape: err = %v, want ValidationError", err)
	}
}

func TestFinalizeAssetsChunksLargeBatches(t *testing.T) {
	store := newFakeStore()
	gs := newTestService(t, store)

	seedGallery(t, gs, "g1", "Festival", nil)

	// 超过单块上限，验证分块写入后总量正确
	n := finalizeChunkSize*2 + 50
	req := &types.FinalizeAssetsRequest{}

	for i := range n {
		key := fmt.Sprintf("g1/obj-%04d.jpg", i)
		store.put(key, "", []byte("x"))
		req.Assets = append(req.Assets, types.FinalizeAssetItem{ObjectKey: key})
	}

	resp, err := gs.FinalizeAssets(context.Background(), "g1", req)
	if err != nil {
		t.Fatalf("FinalizeAssets: %v", err)
	}

	if resp.Created != n {
		t.Errorf("created = %d, want %d", resp.Created, n)
	}

	var g model.Gallery
	gs.dbClient.GetDB().First(&g, "id = ?", "g1")

	if g.TotalAssets != int64(n) {
		t.Errorf("total_assets = %d, want %d", g.TotalAssets, n)
	}
}
