package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/almostmoments/momentvault/pkg/internal/model"
	"github.com/almostmoments/momentvault/pkg/internal/types"
)

// ListAssets 列出相册资产的一页，按创建时间倒序.
// Cursor 是上一页最后一条记录的 id，空表示第一页；
// 游标在 (created_at, id) 上严格单调前进，遍历期间新写入的记录
// 可能出现也可能不出现，但开始遍历时已存在的记录不丢不重.
func (gs *GalleryService) ListAssets(ctx context.Context, galleryID string, req *types.ListAssetsRequest) (*types.ListAssetsResponse, error) {
	if _, err := gs.loadGallery(ctx, galleryID); err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 || limit > gs.cfg.Gallery.PageSize {
		limit = gs.cfg.Gallery.PageSize
	}

	q := gs.db(ctx).Model(&model.GalleryAsset{}).
		Where("gallery_id = ?", galleryID).
		Order("created_at DESC, id DESC")

	if req.Cursor != "" {
		var cur model.GalleryAsset

		err := gs.db(ctx).
			Where("gallery_id = ? AND id = ?", galleryID, req.Cursor).
			First(&cur).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewValidationError("unknown cursor %s", req.Cursor)
		}

		if err != nil {
			return nil, fmt.Errorf("resolve cursor %s: %w", req.Cursor, err)
		}

		q = q.Where("created_at < ? OR (created_at = ? AND id < ?)",
			cur.CreatedAt, cur.CreatedAt, cur.ID)
	}

	// 多取一条探测是否还有下一页
	var rows []model.GalleryAsset
	if err := q.Limit(limit + 1).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list assets of gallery %s: %w", galleryID, err)
	}

	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}

	resp := types.ListAssetsResponse{
		Assets:  make([]types.AssetResponse, 0, len(rows)),
		HasMore: hasMore,
	}
	for i := range rows {
		resp.Assets = append(resp.Assets, toAssetResponse(&rows[i]))
	}

	if hasMore && len(rows) > 0 {
		resp.NextCursor = rows[len(rows)-1].ID
	}

	return &resp, nil
}

// WalkAssets 游标走到底，返回相册的完整资产列表（创建时间倒序）.
// 归档构建等需要完整成员集的路径使用它；增量加载走 ListAssets 按页取.
func (gs *GalleryService) WalkAssets(ctx context.Context, galleryID string) ([]model.GalleryAsset, error) {
	if _, err := gs.loadGallery(ctx, galleryID); err != nil {
		return nil, err
	}

	pageSize := gs.cfg.Gallery.PageSize

	var (
		all    []model.GalleryAsset
		cursor model.GalleryAsset
		first  = true
	)

	for {
		q := gs.db(ctx).Model(&model.GalleryAsset{}).
			Where("gallery_id = ?", galleryID).
			Order("created_at DESC, id DESC").
			Limit(pageSize)

		if !first {
			q = q.Where("created_at < ? OR (created_at = ? AND id < ?)",
				cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
		}

		var page []model.GalleryAsset
		if err := q.Find(&page).Error; err != nil {
			return nil, fmt.Errorf("walk assets of gallery %s: %w", galleryID, err)
		}

		all = append(all, page...)

		// 不足一整页说明已经到底
		if len(page) < pageSize {
			return all, nil
		}

		cursor = page[len(page)-1]
		first = false
	}
}
