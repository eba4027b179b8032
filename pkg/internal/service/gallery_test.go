package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/almostmoments/momentvault/pkg/internal/model"
	"github.com/almostmoments/momentvault/pkg/internal/types"
)

func TestCreateAndGetGallery(t *testing.T) {
	gs := newTestService(t, newFakeStore())

	created, err := gs.CreateGallery(context.Background(), &types.CreateGalleryRequest{
		Name:        "Summer Wedding",
		Description: "share your shots",
		Owner:       "organizer@example.com",
	})
	if err != nil {
		t.Fatalf("CreateGallery: %v", err)
	}

	if created.ID == "" {
		t.Fatal("gallery id should be generated")
	}

	if created.ShareURL != gs.cfg.Gallery.URLPrefix+created.ID {
		t.Errorf("share_url = %q", created.ShareURL)
	}

	got, err := gs.GetGallery(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetGallery: %v", err)
	}

	if got.Name != "Summer Wedding" || got.TotalAssets != 0 {
		t.Errorf("got = %+v", got)
	}
}

func TestCreateGalleryInvalidExpiry(t *testing.T) {
	gs := newTestService(t, newFakeStore())

	_, err := gs.CreateGallery(context.Background(), &types.CreateGalleryRequest{
		Name:     "X",
		ExpiryAt: "not-a-time",
	})

	var verr *types.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("err = %v, want ValidationError", err)
	}
}

func TestGetGalleryMarksExpired(t *testing.T) {
	gs := newTestService(t, newFakeStore())

	past := time.Now().Add(-time.Hour)
	seedGallery(t, gs, "g1", "Old", &past)

	got, err := gs.GetGallery(context.Background(), "g1")
	if err != nil {
		t.Fatalf("GetGallery: %v", err)
	}

	// 过期相册仍可读取，仅打上标记
	if !got.Expired {
		t.Error("gallery should be marked expired")
	}
}

func TestUpdateGalleryPartial(t *testing.T) {
	gs := newTestService(t, newFakeStore())

	seedGallery(t, gs, "g1", "Before", nil)

	got, err := gs.UpdateGallery(context.Background(), "g1", &types.UpdateGalleryRequest{Name: "After"})
	if err != nil {
		t.Fatalf("UpdateGallery: %v", err)
	}

	if got.Name != "After" {
		t.Errorf("name = %q, want After", got.Name)
	}
}

func TestDeleteGalleryRemovesAssetsAndObjects(t *testing.T) {
	store := newFakeStore()
	gs := newTestService(t, store)

	seedGallery(t, gs, "g1", "Party", nil)
	seedAssetWithObject(t, gs, store, "g1", "g1/a.jpg", "a.jpg", []byte("x"))
	seedAssetWithObject(t, gs, store, "g1", "g1/b.jpg", "b.jpg", []byte("y"))

	if err := gs.DeleteGallery(context.Background(), "g1"); err != nil {
		t.Fatalf("DeleteGallery: %v", err)
	}

	var nerr *types.NotFoundError
	if _, err := gs.GetGallery(context.Background(), "g1"); !errors.As(err, &nerr) {
		t.Errorf("gallery should be gone, err = %v", err)
	}

	var count int64
	gs.dbClient.GetDB().Model(&model.GalleryAsset{}).Where("gallery_id = ?", "g1").Count(&count)

	if count != 0 {
		t.Errorf("asset rows = %d, want 0", count)
	}

	if len(store.removed) != 2 {
		t.Errorf("removed objects = %v, want 2", store.removed)
	}
}

func TestDeleteGalleryRejectsSample(t *testing.T) {
	gs := newTestService(t, newFakeStore())

	seedGallery(t, gs, gs.cfg.Gallery.SampleID, "Demo", nil)

	var verr *types.ValidationError
	if err := gs.DeleteGallery(context.Background(), gs.cfg.Gallery.SampleID); !errors.As(err, &verr) {
		t.Errorf("err = %v, want ValidationError", err)
	}
}

func TestListGalleriesFilteredByOwner(t *testing.T) {
	gs := newTestService(t, newFakeStore())

	g1 := model.Gallery{ID: "g1", Name: "A", Owner: "alice@example.com"}
	g2 := model.Gallery{ID: "g2", Name: "B", Owner: "bob@example.com"}
	gs.dbClient.GetDB().Create(&g1)
	gs.dbClient.GetDB().Create(&g2)

	resp, err := gs.ListGalleries(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("ListGalleries: %v", err)
	}

	if resp.Total != 1 || resp.Galleries[0].ID != "g1" {
		t.Errorf("resp = %+v", resp)
	}

	all, err := gs.ListGalleries(context.Background(), "")
	if err != nil {
		t.Fatalf("ListGalleries: %v", err)
	}

	if all.Total != 2 {
		t.Errorf("total = %d, want 2", all.Total)
	}
}

func TestDeleteAssetDecrementsCounter(t *testing.T) {
	store := newFakeStore()
	gs := newTestService(t, store)

	seedGallery(t, gs, "g1", "Party", nil)
	seedAssetWithObject(t, gs, store, "g1", "g1/a.jpg", "a.jpg", []byte("x"))

	gs.dbClient.GetDB().Model(&model.Gallery{}).Where("id = ?", "g1").
		UpdateColumn("total_assets", 1)

	var row model.GalleryAsset
	gs.dbClient.GetDB().First(&row, "gallery_id = ?", "g1")

	resp, err := gs.DeleteAsset(context.Background(), "g1", row.ID)
	if err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}

	if !resp.Deleted || !resp.ObjectRemoved {
		t.Errorf("resp = %+v", resp)
	}

	var g model.Gallery
	gs.dbClient.GetDB().First(&g, "id = ?", "g1")

	if g.TotalAssets != 0 {
		t.Errorf("total_assets = %d, want 0", g.TotalAssets)
	}
}

func TestDeleteAssetUnknown(t *testing.T) {
	gs := newTestService(t, newFakeStore())

	seedGallery(t, gs, "g1", "Party", nil)

	var nerr *types.NotFoundError
	if _, err := gs.DeleteAsset(context.Background(), "g1", "nope"); !errors.As(err, &nerr) {
		t.Errorf("err = %v, want NotFoundError", err)
	}
}

func TestGalleryStats(t *testing.T) {
	store := newFakeStore()
	gs := newTestService(t, store)

	seedGallery(t, gs, "g1", "Party", nil)
	seedAssetWithObject(t, gs, store, "g1", "g1/a.jpg", "a.jpg", []byte("xxxx"))
	seedAssetWithObject(t, gs, store, "g1", "g1/b.mp4", "b.mp4", []byte("yyyyyy"))

	// 计数器故意落后一步，统计接口要能同时看到两者
	gs.dbClient.GetDB().Model(&model.Gallery{}).Where("id = ?", "g1").
		UpdateColumn("total_assets", 1)

	stats, err := gs.GalleryStats(context.Background(), "g1")
	if err != nil {
		t.Fatalf("GalleryStats: %v", err)
	}

	if stats.ActualAssets != 2 || stats.TotalAssets != 1 {
		t.Errorf("actual=%d counter=%d, want 2/1", stats.ActualAssets, stats.TotalAssets)
	}

	if stats.TotalSize != 10 {
		t.Errorf("total_size = %d, want 10", stats.TotalSize)
	}

	if stats.Images != 1 || stats.Videos != 1 {
		t.Errorf("images=%d videos=%d, want 1/1", stats.Images, stats.Videos)
	}
}

func TestPresignUploads(t *testing.T) {
	store := newFakeStore()
	gs := newTestService(t, store)

	gs.cfg.S3.PresignExpiry = 3600

	seedGallery(t, gs, "g1", "Party", nil)

	resp, err := gs.PresignUploads(context.Background(), "g1", &types.PresignUploadRequest{
		FileNames: []string{"a.jpg", "b.png"},
	})
	if err != nil {
		t.Fatalf("PresignUploads: %v", err)
	}

	if len(resp.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(resp.Results))
	}

	for _, r := range resp.Results {
		if r.PutURL == "" || r.ObjectKey == "" {
			t.Errorf("result = %+v", r)
		}
	}
}
