package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/almostmoments/momentvault/pkg/internal/model"
	"github.com/almostmoments/momentvault/pkg/internal/types"
)

// videoExtCondition 以文件名后缀近似区分视频，SQLite/MySQL/PostgreSQL 兼容.
const videoExtCondition = "LOWER(file_name) LIKE '%.mp4' OR LOWER(file_name) LIKE '%.mov' OR " +
	"LOWER(file_name) LIKE '%.webm' OR LOWER(file_name) LIKE '%.avi' OR LOWER(file_name) LIKE '%.mkv'"

// isVideoFile Go 侧的同一份判定，与 videoExtCondition 保持一致.
func isVideoFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".mp4", ".mov", ".webm", ".avi", ".mkv":
		return true
	}

	return false
}

// GalleryStats 统计单个相册：实际行数、总大小、图片/视频数，
// 并带出计数器缓存值以便观察漂移.
func (gs *GalleryService) GalleryStats(ctx context.Context, galleryID string) (*types.GalleryStatsResponse, error) {
	g, err := gs.loadGallery(ctx, galleryID)
	if err != nil {
		return nil, err
	}

	// 一次聚合查询算全所有指标，避免多次往返
	var agg struct {
		Cnt    int64 `gorm:"column:cnt"`
		Sum    int64 `gorm:"column:sum"`
		Videos int64 `gorm:"column:videos"`
	}

	selectExpr := "COUNT(*) AS cnt, COALESCE(SUM(size),0) AS sum, " +
		"COALESCE(SUM(CASE WHEN " + videoExtCondition + " THEN 1 ELSE 0 END),0) AS videos"

	err = gs.db(ctx).Model(&model.GalleryAsset{}).
		Where("gallery_id = ?", galleryID).
		Select(selectExpr).
		Scan(&agg).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate stats for gallery %s: %w", galleryID, err)
	}

	return &types.GalleryStatsResponse{
		GalleryID:    galleryID,
		TotalAssets:  g.TotalAssets,
		ActualAssets: agg.Cnt,
		TotalSize:    agg.Sum,
		Images:       agg.Cnt - agg.Videos,
		Videos:       agg.Videos,
	}, nil
}
