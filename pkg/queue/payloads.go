package queue

import "time"

// EventHeader 定义所有事件的通用头部元数据.
// 建议在发布消息时填充 TraceID、OccurredAt、Producer 等，便于追踪链路与审计.
type EventHeader struct {
	// Topic 冗余记录消息主题，便于离线处理或转储后定位来源主题.
	Topic string `json:"topic"`
	// TraceID 分布式追踪/关联 ID，可来自中间件或业务生成.
	TraceID string `json:"trace_id,omitempty"`
	// Producer 生产者服务名或节点标识.
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC，RFC3339）.
	OccurredAt time.Time `json:"occurred_at"`
	// Version 事件负载版本，便于向后兼容演进.
	Version string `json:"version,omitempty"`
}

// Message 是统一的消息封装，Header + Payload.
// T 即不同主题对应的负载结构体.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// -------------------------- 相册领域 --------------------------

// GalleryRef 标识一个相册.
type GalleryRef struct {
	GalleryID string     `json:"gallery_id"`
	Name      string     `json:"name,omitempty"`
	Owner     string     `json:"owner,omitempty"`
	ExpiryAt  *time.Time `json:"expiry_at,omitempty"`
}

// GalleryCreatedPayload 相册创建完成.
type GalleryCreatedPayload struct {
	Gallery GalleryRef `json:"gallery"`
}

// GalleryExpiredPayload 相册过期（由定时清扫发现）.
type GalleryExpiredPayload struct {
	Gallery     GalleryRef `json:"gallery"`
	TotalAssets int64      `json:"total_assets,omitempty"`
}

// GalleryDeletedPayload 相册删除，含清理统计.
type GalleryDeletedPayload struct {
	Gallery       GalleryRef `json:"gallery"`
	AssetsDeleted int64      `json:"assets_deleted,omitempty"`
}

// -------------------------- 资产领域 --------------------------

// AssetRef 标识一条资产记录及其对象存储位置.
type AssetRef struct {
	AssetID   string `json:"asset_id"`
	GalleryID string `json:"gallery_id"`
	Bucket    string `json:"bucket,omitempty"`
	ObjectKey string `json:"object_key"`
	Size      int64  `json:"size,omitempty"`
}

// AssetFinalizedPayload 一批资产 finalize 完成.
// Created 是本次落库的行数；CounterApplied 标记计数器递增是否成功（允许漂移）.
type AssetFinalizedPayload struct {
	GalleryID      string     `json:"gallery_id"`
	Assets         []AssetRef `json:"assets"`
	Created        int        `json:"created"`
	CounterApplied bool       `json:"counter_applied"`
}

// AssetDeletedPayload 资产记录被删除.
type AssetDeletedPayload struct {
	Asset         AssetRef `json:"asset"`
	ObjectRemoved bool     `json:"object_removed,omitempty"` // 对象删除为尽力而为
}

// -------------------------- 归档导出领域 --------------------------

// ArchiveBuiltPayload 归档构建完成.
type ArchiveBuiltPayload struct {
	GalleryID   string `json:"gallery_id"`
	ArchiveName string `json:"archive_name"`
	Entries     int    `json:"entries"`
	Bytes       int64  `json:"bytes,omitempty"`
}

// ArchiveFailedPayload 归档未通过完整性门限.
type ArchiveFailedPayload struct {
	GalleryID  string `json:"gallery_id"`
	FilesAdded int    `json:"files_added"`
	Expected   int    `json:"expected"`
	Error      string `json:"error,omitempty"`
}
