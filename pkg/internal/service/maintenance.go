package service

import (
	"context"
	"fmt"
	"time"

	"github.com/almostmoments/momentvault/pkg/internal/model"
	"github.com/almostmoments/momentvault/pkg/queue"
)

// ReconcileCounters 把所有相册的 total_assets 校正为实际行数.
// 计数器是尽力而为的缓存（finalize 递增失败不回滚行），漂移靠这里定期收敛.
// 返回被校正的相册数.
func (gs *GalleryService) ReconcileCounters(ctx context.Context) (int64, error) {
	sub := "(SELECT COUNT(*) FROM gallery_assets WHERE gallery_assets.gallery_id = galleries.id)"

	res := gs.db(ctx).Exec(
		"UPDATE galleries SET total_assets = " + sub +
			" WHERE deleted_at IS NULL AND total_assets <> " + sub)
	if res.Error != nil {
		return 0, fmt.Errorf("reconcile counters: %w", res.Error)
	}

	return res.RowsAffected, nil
}

// SweepExpiredGalleries 找出已过期的相册并广播过期事件.
// 只通知不删除，数据清理是组织者的显式决定. 事件可能重复投递，
// 消费端按 gallery_id 幂等处理.
func (gs *GalleryService) SweepExpiredGalleries(ctx context.Context) ([]model.Gallery, error) {
	var expired []model.Gallery

	err := gs.db(ctx).
		Where("expiry_at IS NOT NULL AND expiry_at < ?", time.Now()).
		Find(&expired).Error
	if err != nil {
		return nil, fmt.Errorf("list expired galleries: %w", err)
	}

	if gs.cfg.Events.Gallery.Expired {
		for i := range expired {
			g := &expired[i]

			gs.publishEvent(ctx, queue.TopicGalleryExpired, queue.GalleryExpiredPayload{
				Gallery:     queue.GalleryRef{GalleryID: g.ID, Name: g.Name, Owner: g.Owner, ExpiryAt: g.ExpiryAt},
				TotalAssets: g.TotalAssets,
			})
		}
	}

	return expired, nil
}
