// Package service 实现相册领域的业务逻辑：相册生命周期、资产入库、
// 游标分页与归档打包.
package service

import (
	"context"
	"errors"
	"io"
	"time"

	"gorm.io/gorm"

	"github.com/almostmoments/momentvault/pkg/configs"
	ctxPkg "github.com/almostmoments/momentvault/pkg/context"
	"github.com/almostmoments/momentvault/pkg/internal/model"
	"github.com/almostmoments/momentvault/pkg/internal/storage/db"
	"github.com/almostmoments/momentvault/pkg/internal/storage/mq"
	"github.com/almostmoments/momentvault/pkg/internal/storage/s3"
	"github.com/almostmoments/momentvault/pkg/internal/types"
	"github.com/almostmoments/momentvault/pkg/log"
	"github.com/almostmoments/momentvault/pkg/queue"
)

// objectStore 对象存储端口，由 internal/storage/s3 客户端实现.
// 接口化便于在测试中替换存储端.
type objectStore interface {
	Bucket() string
	StatAsset(ctx context.Context, key string) (*s3.ObjectInfo, error)
	AssetExists(ctx context.Context, key string) (bool, error)
	GetAsset(ctx context.Context, key string) (io.ReadCloser, *s3.ObjectInfo, error)
	RemoveAsset(ctx context.Context, key string) error
	PresignedPutAsset(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// GalleryService 相册服务，所有 HTTP 处理器共用的业务入口.
type GalleryService struct {
	store    objectStore
	dbClient *db.Client
	mqClient *mq.Client
	cfg      *configs.AppConfig
}

func NewGalleryService(c context.Context) *GalleryService {
	return &GalleryService{
		store:    ctxPkg.GetS3Client(c),
		dbClient: ctxPkg.GetDBClient(c),
		mqClient: ctxPkg.GetMQClient(c),
		cfg:      configs.GetConfig(),
	}
}

// db 返回绑定请求上下文的 gorm 会话.
func (gs *GalleryService) db(ctx context.Context) *gorm.DB {
	return gs.dbClient.GetDB().WithContext(ctx)
}

// loadGallery 按 ID 查询相册，未找到时返回 NotFoundError.
func (gs *GalleryService) loadGallery(ctx context.Context, id string) (*model.Gallery, error) {
	var g model.Gallery

	err := gs.db(ctx).First(&g, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &types.NotFoundError{Resource: "gallery", ID: id}
	}

	if err != nil {
		return nil, err
	}

	return &g, nil
}

// guardWritable 检查相册可写：演示相册与过期相册一律拒绝，与调用方身份无关.
func (gs *GalleryService) guardWritable(g *model.Gallery) error {
	if g.ID == gs.cfg.Gallery.SampleID {
		return types.NewValidationError("gallery %s is a demo gallery and read only", g.ID)
	}

	if g.Expired(time.Now()) {
		return &types.ExpiredError{GalleryID: g.ID}
	}

	return nil
}

// publishEvent 发布领域事件. 事件是旁路信息，发布失败只记日志，绝不影响主流程.
func (gs *GalleryService) publishEvent(ctx context.Context, topic string, payload any) {
	if gs.mqClient == nil || !gs.cfg.Events.Enabled {
		return
	}

	msg, err := queue.NewWatermillMessage(topic, payload, queue.WithProducer(configs.AppName))
	if err != nil {
		log.Logger().Warn().Err(err).Str("topic", topic).Msg("encode event failed")
		return
	}

	if err := gs.mqClient.Publish(ctx, topic, msg); err != nil {
		log.Logger().Warn().Err(err).Str("topic", topic).Msg("publish event failed")
	}
}

func (gs *GalleryService) toGalleryResponse(g *model.Gallery) types.GalleryResponse {
	resp := types.GalleryResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Owner:       g.Owner,
		TotalAssets: g.TotalAssets,
		ShareURL:    gs.cfg.Gallery.URLPrefix + g.ID,
		Expired:     g.Expired(time.Now()),
		CreatedAt:   g.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   g.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if g.ExpiryAt != nil {
		resp.ExpiryAt = g.ExpiryAt.UTC().Format(time.RFC3339)
	}

	return resp
}

func toAssetResponse(a *model.GalleryAsset) types.AssetResponse {
	return types.AssetResponse{
		ID:        a.ID,
		GalleryID: a.GalleryID,
		ObjectKey: a.ObjectKey,
		FileName:  a.FileName,
		Size:      a.Size,
		Blurhash:  a.Blurhash,
		Width:     a.Width,
		Height:    a.Height,
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
	}
}
