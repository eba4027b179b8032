package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/almostmoments/momentvault/pkg/blurhash"
	"github.com/almostmoments/momentvault/pkg/internal/model"
	"github.com/almostmoments/momentvault/pkg/internal/types"
	"github.com/almostmoments/momentvault/pkg/log"
	"github.com/almostmoments/momentvault/pkg/metrics"
	"github.com/almostmoments/momentvault/pkg/queue"
)

// finalizeChunkSize 单次批量写入的行数上限，对齐存储平台的批量限制.
const finalizeChunkSize = 100

// FinalizeAssets 将一批已上传对象登记为相册资产.
//
// 流程：相册存在性与可写检查 -> 按对象键去重（首见者胜）->
// 对象存在性校验（任一缺失整批拒绝，fail-closed）-> 分块批量落库 ->
// 计数器尽力而为递增. 计数器失败不回滚已落库的行，漂移由定时任务校正.
func (gs *GalleryService) FinalizeAssets(ctx context.Context, galleryID string, req *types.FinalizeAssetsRequest) (*types.FinalizeAssetsResponse, error) {
	g, err := gs.loadGallery(ctx, galleryID)
	if err != nil {
		return nil, err
	}

	if err := gs.guardWritable(g); err != nil {
		return nil, err
	}

	items, err := gs.normalizeFinalizeRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return &types.FinalizeAssetsResponse{Created: 0}, nil
	}

	if len(items) > gs.cfg.Gallery.MaxBatch {
		return nil, types.NewValidationError("batch of %d exceeds limit of %d", len(items), gs.cfg.Gallery.MaxBatch)
	}

	if err := gs.verifyObjectsExist(ctx, galleryID, items); err != nil {
		return nil, err
	}

	now := time.Now()
	rows := make([]model.GalleryAsset, 0, len(items))

	for i := range items {
		item := &items[i]
		rows = append(rows, model.GalleryAsset{
			ID:        uuid.NewString(),
			GalleryID: galleryID,
			ObjectKey: item.ObjectKey,
			FileName:  item.FileName,
			Size:      item.Size,
			Blurhash:  item.Blurhash,
			Width:     item.Width,
			Height:    item.Height,
			CreatedAt: now,
		})
	}

	if err := gs.db(ctx).CreateInBatches(rows, finalizeChunkSize).Error; err != nil {
		return nil, fmt.Errorf("create %d asset rows for gallery %s: %w", len(rows), galleryID, err)
	}

	metrics.AssetsFinalized.Add(float64(len(rows)))

	// 计数器递增一次，失败不重试也不回滚
	counterApplied := true

	err = gs.db(ctx).Model(&model.Gallery{}).
		Where("id = ?", galleryID).
		UpdateColumn("total_assets", gorm.Expr("total_assets + ?", len(rows))).Error
	if err != nil {
		counterApplied = false

		log.Logger().Warn().Err(err).
			Str("gallery_id", galleryID).
			Int("created", len(rows)).
			Msg("counter increment failed after asset rows were created")
	}

	if gs.cfg.Events.Asset.Finalized {
		refs := make([]queue.AssetRef, 0, len(rows))
		for i := range rows {
			refs = append(refs, queue.AssetRef{
				AssetID:   rows[i].ID,
				GalleryID: galleryID,
				Bucket:    gs.store.Bucket(),
				ObjectKey: rows[i].ObjectKey,
				Size:      rows[i].Size,
			})
		}

		gs.publishEvent(ctx, queue.TopicAssetFinalized, queue.AssetFinalizedPayload{
			GalleryID:      galleryID,
			Assets:         refs,
			Created:        len(rows),
			CounterApplied: counterApplied,
		})
	}

	return &types.FinalizeAssetsResponse{Created: len(rows)}, nil
}

// normalizeFinalizeRequest 校验请求形态并按对象键去重，首见者胜.
// ObjectKeys 恢复路径没有占位元数据，从对象存储回查文件名与大小，
// 并重新计算占位图.
func (gs *GalleryService) normalizeFinalizeRequest(ctx context.Context, req *types.FinalizeAssetsRequest) ([]types.FinalizeAssetItem, error) {
	hasAssets := len(req.Assets) > 0
	hasKeys := len(req.ObjectKeys) > 0

	if hasAssets == hasKeys {
		return nil, types.NewValidationError("exactly one of assets or object_keys must be provided")
	}

	seen := make(map[string]struct{})

	if hasAssets {
		items := make([]types.FinalizeAssetItem, 0, len(req.Assets))

		for i := range req.Assets {
			item := req.Assets[i]
			if _, dup := seen[item.ObjectKey]; dup {
				continue
			}

			seen[item.ObjectKey] = struct{}{}

			if item.FileName == "" {
				item.FileName = path.Base(item.ObjectKey)
			}

			items = append(items, item)
		}

		return items, nil
	}

	items := make([]types.FinalizeAssetItem, 0, len(req.ObjectKeys))

	for _, key := range req.ObjectKeys {
		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}

		item := types.FinalizeAssetItem{ObjectKey: key, FileName: path.Base(key)}

		if info, err := gs.store.StatAsset(ctx, key); err == nil {
			item.Size = info.Size

			if info.FileName != "" {
				item.FileName = info.FileName
			}
		}

		// 恢复路径没有客户端算好的占位图，取回对象字节现算；
		// 取不到字节时 FromBytes 落到固定兜底占位图
		if rc, _, err := gs.store.GetAsset(ctx, key); err == nil {
			data, rerr := io.ReadAll(rc)
			_ = rc.Close()

			if rerr == nil {
				ph := blurhash.FromBytes(data, isVideoFile(item.FileName))
				item.Blurhash = ph.Hash
				item.Width = ph.Width
				item.Height = ph.Height
			}
		}

		items = append(items, item)
	}

	return items, nil
}

// verifyObjectsExist 校验每个引用的对象确实存在于存储中.
// 任何一个缺失都拒绝整批，避免产生指向虚空的资产记录.
func (gs *GalleryService) verifyObjectsExist(ctx context.Context, galleryID string, items []types.FinalizeAssetItem) error {
	var missing []string

	for i := range items {
		ok, err := gs.store.AssetExists(ctx, items[i].ObjectKey)
		if err != nil {
			return fmt.Errorf("check object %s: %w", items[i].ObjectKey, err)
		}

		if !ok {
			missing = append(missing, items[i].ObjectKey)
		}
	}

	if len(missing) > 0 {
		return &types.MissingObjectsError{GalleryID: galleryID, MissingKeys: missing}
	}

	return nil
}
