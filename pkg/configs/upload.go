package configs

import "github.com/spf13/viper"

const (
	DefaultUploadConcurrency = 5 // 上传工作协程数
	DefaultUploadMaxRetries  = 3 // 单文件最大尝试次数
)

// UploadConfig 上传调度器配置.
//
// Concurrency 是同时在传的文件数上限（固定大小的 worker 池），
// MaxRetries 是单个文件从头重传的尝试上限；不支持断点续传，
// 失败的尝试会丢弃已传部分并把进度归零.
type UploadConfig struct {
	Concurrency int `mapstructure:"concurrency" rule:"min=1,max=64"`
	MaxRetries  int `mapstructure:"max_retries" rule:"min=1,max=10"`
}

func (c *UploadConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("upload.concurrency", DefaultUploadConcurrency)
	v.SetDefault("upload.max_retries", DefaultUploadMaxRetries)
}
