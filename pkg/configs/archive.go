package configs

import "github.com/spf13/viper"

const (
	// DefaultArchiveConcurrency 归档取流并发上限；下载比上传便宜，放宽一些.
	DefaultArchiveConcurrency = 15
	// DefaultArchiveMaxNameLen 归档文件名（不含扩展名）的最大长度.
	DefaultArchiveMaxNameLen = 100
)

// ArchiveConfig 归档装配器配置.
type ArchiveConfig struct {
	// Concurrency 同时拉取对象字节流的并发上限.
	Concurrency int `mapstructure:"concurrency"  rule:"min=1,max=64"`
	// MaxNameLen 由相册名派生的归档文件名截断长度.
	MaxNameLen int `mapstructure:"max_name_len" rule:"min=8,max=255"`
}

func (c *ArchiveConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("archive.concurrency", DefaultArchiveConcurrency)
	v.SetDefault("archive.max_name_len", DefaultArchiveMaxNameLen)
}
