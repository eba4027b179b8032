package service

import (
	"context"
	"errors"
	"testing"

	"github.com/almostmoments/momentvault/pkg/internal/types"
)

func TestListAssetsPagination(t *testing.T) {
	gs := newTestService(t, newFakeStore())

	seedGallery(t, gs, "g1", "Festival", nil)
	seedAssets(t, gs, "g1", 250)

	seen := make(map[string]struct{}, 250)

	var (
		cursor string
		pages  int
	)

	for {
		resp, err := gs.ListAssets(context.Background(), "g1", &types.ListAssetsRequest{Cursor: cursor})
		if err != nil {
			t.Fatalf("page %d: %v", pages, err)
		}

		pages++

		for _, a := range resp.Assets {
			if _, dup := seen[a.ID]; dup {
				t.Fatalf("asset %s returned twice", a.ID)
			}
			seen[a.ID] = struct{}{}
		}

		if !resp.HasMore {
			if resp.NextCursor != "" {
				t.Error("next_cursor should be empty on the last page")
			}

			break
		}

		if resp.NextCursor == "" {
			t.Fatal("has_more set but next_cursor empty")
		}

		cursor = resp.NextCursor
	}

	if pages != 3 {
		t.Errorf("pages = %d, want 3 (100+100+50)", pages)
	}

	if len(seen) != 250 {
		t.Errorf("walked %d assets, want 250", len(seen))
	}
}

func TestListAssetsOrderedByCreationDesc(t *testing.T) {
	gs := newTestService(t, newFakeStore())

	seedGallery(t, gs, "g1", "Festival", nil)
	rows := seedAssets(t, gs, 5)

	resp, err := gs.ListAssets(context.Background(), "g1", &types.ListAssetsRequest{})
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}

	if len(resp.Assets) != 5 {
		t.Fatalf("assets = %d, want 5", len(resp.Assets))
	}

	// 最新的排最前
	for i, a := range resp.Assets {
		want := rows[len(rows)-1-i].ID
		if a.ID != want {
			t.Errorf("position %d: got %s, want %s", i, a.ID, want)
		}
	}
}

func TestListAssetsLimitClamped(t *testing.T) {
	gs := newTestService(t, newFakeStore())

	seedGallery(t, gs, "g1", "Festival", nil)
	seedAssets(t, gs, 150)

	resp, err := gs.ListAssets(context.Background(), "g1", &types.ListAssetsRequest{Limit: 10})
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}

	if len(resp.Assets) != 10 {
		t.Errorf("limit=10 returned %d assets", len(resp.Assets))
	}

	// 超过配置上限时压回默认页大小
	resp, err = gs.ListAssets(context.Background(), "g1", &types.ListAssetsRequest{Limit: 9999})
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}

	if len(resp.Assets) != gs.cfg.Gallery.PageSize {
		t.Errorf("oversized limit returned %d assets, want %d", len(resp.Assets), gs.cfg.Gallery.PageSize)
	}
}

func TestListAssetsUnknownCursor(t *testing.T) {
	gs := newTestService(t, newFakeStore())

	seedGallery(t, gs, "g1", "Festival", nil)
	seedAssets(t, gs, 3)

	_, err := gs.ListAssets(context.Background(), "g1", &types.ListAssetsRequest{Cursor: "no-such-id"})

	var verr *types.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("err = %v, want ValidationError for unknown cursor", err)
	}
}

func TestWalkAssetsComplete(t *testing.T) {
	gs := newTestService(t, newFakeStore())

	seedGallery(t, gs, "g1", "Festival", nil)
	rows := seedAssets(t, gs, 250)

	all, err := gs.WalkAssets(context.Background(), "g1")
	if err != nil {
		t.Fatalf("WalkAssets: %v", err)
	}

	if len(all) != len(rows) {
		t.Fatalf("walked %d assets, want %d", len(all), len(rows))
	}

	seen := make(map[string]struct{}, len(all))
	for _, a := range all {
		if _, dup := seen[a.ID]; dup {
			t.Fatalf("asset %s walked twice", a.ID)
		}
		seen[a.ID] = struct{}{}
	}
}

func TestWalkAssetsEmptyGallery(t *testing.T) {
	gs := newTestService(t, newFakeStore())

	seedGallery(t, gs, "g1", "Quiet", nil)

	all, err := gs.WalkAssets(context.Background(), "g1")
	if err != nil {
		t.Fatalf("WalkAssets: %v", err)
	}

	if len(all) != 0 {
		t.Errorf("walked %d assets, want 0", len(all))
	}
}

func TestWalkAssetsUnknownGallery(t *testing.T) {
	gs := newTestService(t, newFakeStore())

	_, err := gs.WalkAssets(context.Background(), "nope")

	var nerr *types.NotFoundError
	if !errors.As(err, &nerr) {
		t.Errorf("err = %v, want NotFoundError", err)
	}
}
