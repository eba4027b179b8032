package configs

import "github.com/spf13/viper"

// EventsConfig 控制事件发布的开关（全局与分主题）。
type EventsConfig struct {
	Enabled bool                `mapstructure:"enabled"` // 总开关
	Asset   AssetEventsConfig   `mapstructure:"asset"`
	Gallery GalleryEventsConfig `mapstructure:"gallery"`
	Archive ArchiveEventsConfig `mapstructure:"archive"`
}

// AssetEventsConfig 资产领域的事件开关。
type AssetEventsConfig struct {
	Finalized bool `mapstructure:"finalized"`
	Deleted   bool `mapstructure:"deleted"`
}

// GalleryEventsConfig 相册领域的事件开关。
type GalleryEventsConfig struct {
	Created bool `mapstructure:"created"`
	Expired bool `mapstructure:"expired"`
	Deleted bool `mapstructure:"deleted"`
}

// ArchiveEventsConfig 归档领域的事件开关。
type ArchiveEventsConfig struct {
	Built  bool `mapstructure:"built"`
	Failed bool `mapstructure:"failed"`
}

func (c *EventsConfig) setDefaults(v *viper.Viper) {
	// 总开关：默认启用事件系统
	v.SetDefault("events.enabled", true)

	// 默认仅开启下游关心的集合，归档成功事件噪声大默认关闭
	v.SetDefault("events.asset.finalized", true)
	v.SetDefault("events.asset.deleted", true)
	v.SetDefault("events.gallery.created", true)
	v.SetDefault("events.gallery.expired", true)
	v.SetDefault("events.gallery.deleted", true)
	v.SetDefault("events.archive.built", false)
	v.SetDefault("events.archive.failed", true)
}
