// Package configs 管理应用程序配置，包括数据库、对象存储、消息队列以及
// 上传/归档流水线的配置信息. configs 包支持多种配置格式（YAML、JSON、TOML、dotenv）并启用热重载.
//
// Example:
//
//	err := configs.InitConfig("./")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	config := configs.GetConfig()
//	fmt.Println(config.Server.Port)
//
// Example accessing S3 config:
//
//	s3Config := configs.GetConfig().S3
//	fmt.Println("S3 Endpoint:", s3Config.GetEndpointURL())
//
// Example accessing upload pipeline config:
//
//	uploadConfig := configs.GetConfig().Upload
//	fmt.Println("workers:", uploadConfig.Concurrency)
package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const (
	// AppName 应用名称，用于对象存储客户端标识、事件 producer 等.
	AppName = "momentvault"
	// AppVersion 应用版本.
	AppVersion = "1.0.0"
)

type (
	// AppConfig 全局应用程序配置.
	AppConfig struct {
		Server         ServerConfig         `mapstructure:"server"`          // 服务器配置（端口、调试模式等）
		Log            LogConfig            `mapstructure:"log"`             // 日志配置
		DB             DBConfig             `mapstructure:"db"`              // 数据库配置（gallery/asset 元数据）
		S3             S3Config             `mapstructure:"s3"`              // 对象存储配置（媒体资源）
		KV             KVConfig             `mapstructure:"kv"`              // KV 缓存配置
		MQ             MQConfig             `mapstructure:"mq"`              // 消息队列配置
		Events         EventsConfig         `mapstructure:"events"`          // 事件发布开关
		Gallery        GalleryConfig        `mapstructure:"gallery"`         // 相册领域配置
		Upload         UploadConfig         `mapstructure:"upload"`          // 上传调度器配置
		Archive        ArchiveConfig        `mapstructure:"archive"`         // 归档装配器配置
		Metrics        MetricsConfig        `mapstructure:"metrics"`         // 监控指标配置
		Tracing        TracingConfig        `mapstructure:"tracing"`         // 分布式追踪配置
		RateLimit      RateLimitConfig      `mapstructure:"rate_limit"`      // 限流配置
		CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"` // 熔断配置
	}
)

var (
	// globalConfig 全局配置实例.
	globalConfig AppConfig
	// appViper 全局 Viper 实例.
	appViper *viper.Viper
)

// InitConfig 加载应用程序配置，支持多种格式(yaml、json、toml、dotenv)并启用热重载.
// path 可以是配置文件本身，也可以是包含 config.<ext> 的目录.
func InitConfig(path string) error {
	appViper = viper.New()
	// 设置默认值
	setAllDefaults(appViper)

	// 检查path是否是文件
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		// 是文件，使用SetConfigFile，Viper会自动检测类型
		appViper.SetConfigFile(path)
	} else {
		// 是目录，设置配置名和路径
		appViper.SetConfigName("config")
		appViper.AddConfigPath(path)
		appViper.AddConfigPath(path + "/configs")

		exts := []string{"yaml", "yml", "json", "toml", "env", "dotenv"}

		for _, ext := range exts {
			cfg := filepath.Join(path, "config."+ext)
			if _, err := os.Stat(cfg); err == nil {
				appViper.SetConfigFile(cfg)

				break
			}
		}
	}

	appViper.AutomaticEnv()
	appViper.SetEnvPrefix("MOMENTVAULT")

	// 读取配置；找不到配置文件时退回默认值（本地开发常见）
	if err := appViper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	// 解析到全局配置
	if err := appViper.Unmarshal(&globalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	reloadConfigs(appViper, globalConfig.Server.ReloadConfig)

	return nil
}

// setAllDefaults 设置所有配置的默认值.
func setAllDefaults(v *viper.Viper) {
	var (
		serverConfig  ServerConfig
		logConfig     LogConfig
		dbConfig      DBConfig
		s3Config      S3Config
		kvConfig      KVConfig
		mqConfig      MQConfig
		eventsConfig  EventsConfig
		galleryConfig GalleryConfig
		uploadConfig  UploadConfig
		archiveConfig ArchiveConfig
		metricsConfig MetricsConfig
		tracingConfig TracingConfig
		rlConfig      RateLimitConfig
		cbConfig      CircuitBreakerConfig
	)

	serverConfig.setDefaults(v)
	logConfig.setDefaults(v)
	dbConfig.setDefaults(v)
	s3Config.setDefaults(v)
	kvConfig.setDefaults(v)
	mqConfig.setDefaults(v)
	eventsConfig.setDefaults(v)
	galleryConfig.setDefaults(v)
	uploadConfig.setDefaults(v)
	archiveConfig.setDefaults(v)
	metricsConfig.setDefaults(v)
	tracingConfig.setDefaults(v)
	rlConfig.setDefaults(v)
	cbConfig.setDefaults(v)
}

func reloadConfigs(v *viper.Viper, isHotReload bool) {
	if !isHotReload {
		return
	}
	// 启用配置热重载
	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Println("Config file changed:", e.Name)
		fmt.Println("Reloading configuration...")

		if err := v.Unmarshal(&globalConfig); err != nil {
			fmt.Printf("Error reloading config: %v\n", err)
		}
	})
	v.WatchConfig()
}

// GetConfig 返回全局配置实例.
func GetConfig() *AppConfig {
	return &globalConfig
}

func GetViper() *viper.Viper {
	return appViper
}
