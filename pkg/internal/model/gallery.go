package model

import (
	"time"

	"gorm.io/gorm"
)

// Gallery 相册模型：一次活动的共享收集点，拥有零或多个资产.
// TotalAssets 是 gallery_assets 行数的尽力而为缓存，允许短暂漂移，
// 由定时任务定期校正（见 pkg/internal/jobs）.
type Gallery struct {
	// ID 对外暴露的相册标识（分享链接 / QR 码指向它）
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"size:255"           json:"name"`
	// Owner 组织者标识，由外部身份平台提供
	Owner       string `gorm:"size:255;index" json:"owner"`
	Description string `gorm:"type:text"      json:"description"`
	// TotalAssets 资产计数缓存，finalize 成功后递增，删除时递减
	TotalAssets int64 `gorm:"default:0" json:"total_assets"`
	// ExpiryAt 为空表示永不过期；过期后拒绝一切写入（410 语义）
	ExpiryAt  *time.Time     `gorm:"index" json:"expiry_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Expired 判断相册是否已过期.
func (g *Gallery) Expired(now time.Time) bool {
	return g.ExpiryAt != nil && g.ExpiryAt.Before(now)
}

// GalleryAsset 资产模型：相册中的一条媒体记录.
// 创建后不可变；删除由独立端点处理. ObjectKey 指向对象存储中的原件.
type GalleryAsset struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// GalleryID 所属相册；与 CreatedAt/ID 一起构成游标分页的键
	GalleryID string `gorm:"size:36;index:idx_gallery_created,priority:1" json:"gallery_id"`
	// ObjectKey 对象存储键；同一相册内去重
	ObjectKey string `gorm:"size:1024;index" json:"object_key"`
	FileName  string `gorm:"size:512"        json:"file_name"`
	Size      int64  `json:"size"`
	// Blurhash 低保真占位编码，加载原图前的即时预览
	Blurhash string `gorm:"size:100" json:"blurhash"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	// CreatedAt 参与游标分页排序（created_at DESC, id DESC）
	CreatedAt time.Time `gorm:"index:idx_gallery_created,priority:2,sort:desc" json:"created_at"`
}

// AutoMigrateModels 执行领域模型的自动迁移.
func AutoMigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(&Gallery{}, &GalleryAsset{})
}
