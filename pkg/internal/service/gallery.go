package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/almostmoments/momentvault/pkg/internal/model"
	"github.com/almostmoments/momentvault/pkg/internal/types"
	"github.com/almostmoments/momentvault/pkg/log"
	"github.com/almostmoments/momentvault/pkg/queue"
)

// CreateGallery 创建相册.
func (gs *GalleryService) CreateGallery(ctx context.Context, req *types.CreateGalleryRequest) (*types.GalleryResponse, error) {
	g := model.Gallery{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Owner:       req.Owner,
	}

	if req.ExpiryAt != "" {
		t, err := time.Parse(time.RFC3339, req.ExpiryAt)
		if err != nil {
			return nil, types.NewValidationError("invalid expiry_at: %v", err)
		}

		g.ExpiryAt = &t
	}

	if err := gs.db(ctx).Create(&g).Error; err != nil {
		return nil, fmt.Errorf("create gallery: %w", err)
	}

	if gs.cfg.Events.Gallery.Created {
		gs.publishEvent(ctx, queue.TopicGalleryCreated, queue.GalleryCreatedPayload{
			Gallery: queue.GalleryRef{GalleryID: g.ID, Name: g.Name, Owner: g.Owner},
		})
	}

	resp := gs.toGalleryResponse(&g)

	return &resp, nil
}

// GetGallery 查询相册详情. 过期相册仍可读取，仅在响应中标记 expired.
func (gs *GalleryService) GetGallery(ctx context.Context, id string) (*types.GalleryResponse, error) {
	g, err := gs.loadGallery(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := gs.toGalleryResponse(g)

	return &resp, nil
}

// UpdateGallery 更新相册基础信息，零值字段保持不变.
func (gs *GalleryService) UpdateGallery(ctx context.Context, id string, req *types.UpdateGalleryRequest) (*types.GalleryResponse, error) {
	g, err := gs.loadGallery(ctx, id)
	if err != nil {
		return nil, err
	}

	if g.ID == gs.cfg.Gallery.SampleID {
		return nil, types.NewValidationError("gallery %s is a demo gallery and read only", g.ID)
	}

	updates := map[string]any{}

	if req.Name != "" {
		updates["name"] = req.Name
	}

	if req.Description != "" {
		updates["description"] = req.Description
	}

	if req.ExpiryAt != "" {
		t, err := time.Parse(time.RFC3339, req.ExpiryAt)
		if err != nil {
			return nil, types.NewValidationError("invalid expiry_at: %v", err)
		}

		updates["expiry_at"] = &t
	}

	if len(updates) > 0 {
		if err := gs.db(ctx).Model(g).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update gallery %s: %w", id, err)
		}
	}

	g, err = gs.loadGallery(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := gs.toGalleryResponse(g)

	return &resp, nil
}

// DeleteGallery 删除相册：软删除相册行、移除资产记录，随后尽力回收
// 对象存储中的原件. 对象删除失败只记日志，残留对象由后台清扫任务兜底.
func (gs *GalleryService) DeleteGallery(ctx context.Context, id string) error {
	g, err := gs.loadGallery(ctx, id)
	if err != nil {
		return err
	}

	if g.ID == gs.cfg.Gallery.SampleID {
		return types.NewValidationError("gallery %s is a demo gallery and read only", g.ID)
	}

	var keys []string
	if err := gs.db(ctx).Model(&model.GalleryAsset{}).
		Where("gallery_id = ?", id).
		Pluck("object_key", &keys).Error; err != nil {
		return fmt.Errorf("list gallery %s assets: %w", id, err)
	}

	err = gs.db(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gallery_id = ?", id).Delete(&model.GalleryAsset{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Gallery{}, "id = ?", id).Error
	})
	if err != nil {
		return fmt.Errorf("delete gallery %s: %w", id, err)
	}

	assets := int64(len(keys))

	for _, key := range keys {
		if err := gs.store.RemoveAsset(ctx, key); err != nil {
			log.Logger().Warn().Err(err).Str("object", key).Msg("failed to remove object after gallery delete")
		}
	}

	if gs.cfg.Events.Gallery.Deleted {
		gs.publishEvent(ctx, queue.TopicGalleryDeleted, queue.GalleryDeletedPayload{
			Gallery:       queue.GalleryRef{GalleryID: g.ID, Name: g.Name, Owner: g.Owner},
			AssetsDeleted: assets,
		})
	}

	return nil
}

// ListGalleries 按创建时间倒序列出相册，可按 owner 过滤.
func (gs *GalleryService) ListGalleries(ctx context.Context, owner string) (*types.ListGalleriesResponse, error) {
	q := gs.db(ctx).Model(&model.Gallery{}).Order("created_at DESC")
	if owner != "" {
		q = q.Where("owner = ?", owner)
	}

	var galleries []model.Gallery
	if err := q.Find(&galleries).Error; err != nil {
		return nil, fmt.Errorf("list galleries: %w", err)
	}

	resp := types.ListGalleriesResponse{
		Galleries: make([]types.GalleryResponse, 0, len(galleries)),
		Total:     len(galleries),
	}
	for i := range galleries {
		resp.Galleries = append(resp.Galleries, gs.toGalleryResponse(&galleries[i]))
	}

	return &resp, nil
}
