// Package queue 定义消息主题常量与通配模式，供发布/订阅使用.
package queue

// 主题命名规范：mv.<域>.<动作>，尽量稳定且向后兼容.
// 域：gallery(相册)、asset(资产)、archive(归档导出)
// 动作：created/expired/deleted、finalized、built/failed 等

const (
	// 相册领域.
	TopicGalleryCreated = "mv.gallery.created" // 相册已创建
	TopicGalleryExpired = "mv.gallery.expired" // 相册过期（由定时清扫发现时发布一次）
	TopicGalleryDeleted = "mv.gallery.deleted" // 相册被组织者删除

	// 资产领域.
	TopicAssetFinalized = "mv.asset.finalized" // 资产元数据已落库并计入相册计数
	TopicAssetDeleted   = "mv.asset.deleted"   // 资产记录被删除（对象删除为尽力而为）

	// 归档导出领域.
	TopicArchiveBuilt  = "mv.archive.built"  // 归档构建完成并交付下载
	TopicArchiveFailed = "mv.archive.failed" // 归档未通过完整性门限
)

// 主题分组，用于批量订阅或权限控制.
var (
	// 相册相关主题集合.
	GalleryTopics = []string{
		TopicGalleryCreated, TopicGalleryExpired, TopicGalleryDeleted,
	}

	// 资产相关主题集合.
	AssetTopics = []string{
		TopicAssetFinalized, TopicAssetDeleted,
	}

	// 归档相关主题集合.
	ArchiveTopics = []string{
		TopicArchiveBuilt, TopicArchiveFailed,
	}
)
