package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/almostmoments/momentvault/pkg/internal/model"
	"github.com/almostmoments/momentvault/pkg/internal/types"
	"github.com/almostmoments/momentvault/pkg/log"
	"github.com/almostmoments/momentvault/pkg/queue"
	"github.com/almostmoments/momentvault/pkg/uploader"
)

// DeleteAsset 删除单条资产记录并尽力回收存储对象，计数器同步递减.
// 过期相册也允许删除，组织者清理数据不该被过期挡住；演示相册仍然拒绝.
func (gs *GalleryService) DeleteAsset(ctx context.Context, galleryID, assetID string) (*types.DeleteAssetResponse, error) {
	g, err := gs.loadGallery(ctx, galleryID)
	if err != nil {
		return nil, err
	}

	if g.ID == gs.cfg.Gallery.SampleID {
		return nil, types.NewValidationError("gallery %s is a demo gallery and read only", g.ID)
	}

	var asset model.GalleryAsset

	err = gs.db(ctx).
		Where("gallery_id = ? AND id = ?", galleryID, assetID).
		First(&asset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &types.NotFoundError{Resource: "asset", ID: assetID}
	}

	if err != nil {
		return nil, fmt.Errorf("load asset %s: %w", assetID, err)
	}

	if err := gs.db(ctx).Delete(&model.GalleryAsset{}, "id = ?", asset.ID).Error; err != nil {
		return nil, fmt.Errorf("delete asset %s: %w", assetID, err)
	}

	// 计数器递减，失败只记日志，漂移由定时任务校正
	err = gs.db(ctx).Model(&model.Gallery{}).
		Where("id = ?", galleryID).
		UpdateColumn("total_assets", gorm.Expr("total_assets - ?", 1)).Error
	if err != nil {
		log.Logger().Warn().Err(err).
			Str("gallery_id", galleryID).
			Msg("counter decrement failed after asset row was deleted")
	}

	objectRemoved := true
	if err := gs.store.RemoveAsset(ctx, asset.ObjectKey); err != nil {
		objectRemoved = false

		log.Logger().Warn().Err(err).
			Str("object", asset.ObjectKey).
			Msg("failed to remove object after asset delete")
	}

	if gs.cfg.Events.Asset.Deleted {
		gs.publishEvent(ctx, queue.TopicAssetDeleted, queue.AssetDeletedPayload{
			Asset: queue.AssetRef{
				AssetID:   asset.ID,
				GalleryID: galleryID,
				Bucket:    gs.store.Bucket(),
				ObjectKey: asset.ObjectKey,
				Size:      asset.Size,
			},
			ObjectRemoved: objectRemoved,
		})
	}

	return &types.DeleteAssetResponse{Deleted: true, ObjectRemoved: objectRemoved}, nil
}

// PresignUploads 为直传客户端批量签发预签名 PUT URL.
// 对象键由服务端生成，客户端完成直传后再调用 finalize 登记.
func (gs *GalleryService) PresignUploads(ctx context.Context, galleryID string, req *types.PresignUploadRequest) (*types.PresignUploadResponse, error) {
	g, err := gs.loadGallery(ctx, galleryID)
	if err != nil {
		return nil, err
	}

	if err := gs.guardWritable(g); err != nil {
		return nil, err
	}

	expiry := gs.cfg.S3.GetPresignExpiry()
	results := make([]types.PresignUploadItem, 0, len(req.FileNames))

	for _, fileName := range req.FileNames {
		key := uploader.NewObjectKey(galleryID, fileName)

		putURL, err := gs.store.PresignedPutAsset(ctx, key, expiry)
		if err != nil {
			return nil, fmt.Errorf("presign put for %s: %w", fileName, err)
		}

		results = append(results, types.PresignUploadItem{
			FileName:  fileName,
			ObjectKey: key,
			PutURL:    putURL,
			ExpiresIn: int(expiry.Seconds()),
		})
	}

	return &types.PresignUploadResponse{Results: results}, nil
}
