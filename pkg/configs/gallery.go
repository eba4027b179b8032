package configs

import "github.com/spf13/viper"

const (
	DefaultGalleryPageSize  = 100      // 资产列表默认分页大小
	DefaultGalleryMaxBatch  = 1000     // 单次 finalize 允许的最大资产数
	DefaultSampleGalleryID  = "sample" // 演示相册 ID，任何写操作都会被拒绝
	DefaultGalleryURLPrefix = "https://almostmoments.app/g/"
)

// GalleryConfig 相册领域配置.
type GalleryConfig struct {
	// PageSize 游标分页的单页大小，同时约束客户端可请求的最大 limit.
	PageSize int `mapstructure:"page_size" rule:"min=1,max=500"`
	// MaxBatch finalize 单次调用允许附加的最大资产数.
	MaxBatch int `mapstructure:"max_batch" rule:"min=1,max=5000"`
	// SampleID 演示相册的 ID，对它的写入一律拒绝.
	SampleID string `mapstructure:"sample_id"`
	// OrganizerToken 组织者操作（删除相册、改名等）的共享令牌.
	// 完整的账号体系由外部身份平台负责，这里只保留校验挂点.
	OrganizerToken string `mapstructure:"organizer_token"`
	// URLPrefix 生成分享链接时使用的前缀.
	URLPrefix string `mapstructure:"url_prefix"`
}

func (c *GalleryConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("gallery.page_size", DefaultGalleryPageSize)
	v.SetDefault("gallery.max_batch", DefaultGalleryMaxBatch)
	v.SetDefault("gallery.sample_id", DefaultSampleGalleryID)
	v.SetDefault("gallery.organizer_token", "")
	v.SetDefault("gallery.url_prefix", DefaultGalleryURLPrefix)
}
