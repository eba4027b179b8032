package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"path"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/almostmoments/momentvault/pkg/internal/model"
	"github.com/almostmoments/momentvault/pkg/internal/types"
	"github.com/almostmoments/momentvault/pkg/log"
	"github.com/almostmoments/momentvault/pkg/metrics"
	"github.com/almostmoments/momentvault/pkg/queue"
)

var archiveNameStrip = regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)

// ArchiveName 从相册展示名派生归档文件名：去除特殊字符、
// 空白折叠为连字符、转小写、按上限截断.
func ArchiveName(galleryName string, maxLen int) string {
	name := archiveNameStrip.ReplaceAllString(galleryName, "")
	name = strings.Join(strings.Fields(name), "-")
	name = strings.ToLower(name)

	if maxLen > 0 && len(name) > maxLen {
		name = name[:maxLen]
	}

	if name == "" {
		name = "gallery"
	}

	return name + ".zip"
}

// BuildArchive 把相册资产打包为单个 zip 并写入 w.
//
// req.ObjectKeys 为空时打包整个相册，否则只打包指定子集.
// 空集合是 no-op：不产出归档、不算错误，返回 (nil, nil).
//
// 单个对象拉取失败在扇出阶段只记日志不中断，扇出结束后统一过
// 完整性门限：凑不齐全部文件就不提供下载，返回 PartialCompletionError，
// 绝不悄悄交付缺页的归档. 归档先在内存中组装，通过门限后才写入 w.
func (gs *GalleryService) BuildArchive(ctx context.Context, galleryID string, req *types.ArchiveRequest,
	w io.Writer, onProgress func(types.ArchiveProgress),
) (*types.ArchiveSummary, error) {
	g, err := gs.loadGallery(ctx, galleryID)
	if err != nil {
		return nil, err
	}

	assets, err := gs.archiveAssets(ctx, galleryID, req)
	if err != nil {
		return nil, err
	}

	if len(assets) == 0 {
		return nil, nil
	}

	var (
		buf        bytes.Buffer
		zw         = zip.NewWriter(&buf)
		mu         sync.Mutex
		filesAdded int
		nameCounts = make(map[string]int, len(assets))
	)

	expected := len(assets)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(gs.cfg.Archive.Concurrency)

	for i := range assets {
		asset := &assets[i]

		eg.Go(func() error {
			data, fileName, err := gs.fetchAssetBytes(egCtx, asset)
			if err != nil {
				// 单个失败不打断别人，门限检查统一汇总
				log.Logger().Warn().Err(err).
					Str("gallery_id", galleryID).
					Str("object", asset.ObjectKey).
					Msg("failed to fetch asset for archive")

				return nil
			}

			mu.Lock()
			defer mu.Unlock()

			entry, err := zw.Create(dedupeEntryName(nameCounts, fileName))
			if err == nil {
				_, err = entry.Write(data)
			}

			if err != nil {
				log.Logger().Warn().Err(err).
					Str("object", asset.ObjectKey).
					Msg("failed to append asset to archive")

				return nil
			}

			filesAdded++

			if onProgress != nil {
				onProgress(types.ArchiveProgress{
					FilesAdded: filesAdded,
					Expected:   expected,
					Percent:    int(math.Round(float64(filesAdded) / float64(expected) * 100)),
				})
			}

			return nil
		})
	}

	_ = eg.Wait()

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive for gallery %s: %w", galleryID, err)
	}

	if filesAdded != expected {
		metrics.ArchiveFailures.Inc()

		perr := &types.PartialCompletionError{GalleryID: galleryID, Added: filesAdded, Expected: expected}

		if gs.cfg.Events.Archive.Failed {
			gs.publishEvent(ctx, queue.TopicArchiveFailed, queue.ArchiveFailedPayload{
				GalleryID:  galleryID,
				FilesAdded: filesAdded,
				Expected:   expected,
				Error:      perr.Error(),
			})
		}

		return nil, perr
	}

	metrics.ArchivesBuilt.Inc()

	size := int64(buf.Len())

	if _, err := io.Copy(w, &buf); err != nil {
		return nil, fmt.Errorf("write archive for gallery %s: %w", galleryID, err)
	}

	summary := &types.ArchiveSummary{
		ArchiveName: ArchiveName(g.Name, gs.cfg.Archive.MaxNameLen),
		Entries:     filesAdded,
		Bytes:       size,
	}

	if gs.cfg.Events.Archive.Built {
		gs.publishEvent(ctx, queue.TopicArchiveBuilt, queue.ArchiveBuiltPayload{
			GalleryID:   galleryID,
			ArchiveName: summary.ArchiveName,
			Entries:     summary.Entries,
			Bytes:       summary.Bytes,
		})
	}

	return summary, nil
}

// archiveAssets 解析打包范围：整册走完整游标遍历，子集按对象键回查记录.
func (gs *GalleryService) archiveAssets(ctx context.Context, galleryID string, req *types.ArchiveRequest) ([]model.GalleryAsset, error) {
	if req == nil || len(req.ObjectKeys) == 0 {
		return gs.WalkAssets(ctx, galleryID)
	}

	var assets []model.GalleryAsset

	err := gs.db(ctx).
		Where("gallery_id = ? AND object_key IN ?", galleryID, req.ObjectKeys).
		Order("created_at DESC, id DESC").
		Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("resolve archive subset for gallery %s: %w", galleryID, err)
	}

	return assets, nil
}

// fetchAssetBytes 拉取单个对象的字节与展示文件名.
// 文件名优先用存储端 content-disposition 携带的原始名，缺失时回退对象键.
func (gs *GalleryService) fetchAssetBytes(ctx context.Context, asset *model.GalleryAsset) ([]byte, string, error) {
	rc, info, err := gs.store.GetAsset(ctx, asset.ObjectKey)
	if err != nil {
		return nil, "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, "", fmt.Errorf("read object %s: %w", asset.ObjectKey, err)
	}

	fileName := info.FileName
	if fileName == "" {
		fileName = asset.FileName
	}

	if fileName == "" {
		fileName = path.Base(asset.ObjectKey)
	}

	return data, fileName, nil
}

// dedupeEntryName 同名条目追加计数："photo.jpg" -> "photo (1).jpg".
// 去重只在单次构建内生效. 调用方必须持有归档锁.
func dedupeEntryName(counts map[string]int, name string) string {
	n := counts[name]
	counts[name]++

	if n == 0 {
		return name
	}

	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)

	return fmt.Sprintf("%s (%d)%s", base, n, ext)
}
