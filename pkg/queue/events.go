package queue

import (
	"github.com/ThreeDotsLabs/watermill/message"
)

// 本文件提供各主题的类型化发布/解析辅助函数，
// 避免调用方手写泛型参数.

func publish[T any](pub message.Publisher, topic string, payload T, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(topic, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(topic, msg)
}

// PublishGalleryCreated 发布相册创建事件.
func PublishGalleryCreated(pub message.Publisher, payload GalleryCreatedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicGalleryCreated, payload, opts...)
}

// ParseGalleryCreated 解析相册创建事件.
func ParseGalleryCreated(msg *message.Message) (Message[GalleryCreatedPayload], error) {
	return ParseWatermillMessage[GalleryCreatedPayload](msg)
}

// PublishGalleryExpired 发布相册过期事件.
func PublishGalleryExpired(pub message.Publisher, payload GalleryExpiredPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicGalleryExpired, payload, opts...)
}

// ParseGalleryExpired 解析相册过期事件.
func ParseGalleryExpired(msg *message.Message) (Message[GalleryExpiredPayload], error) {
	return ParseWatermillMessage[GalleryExpiredPayload](msg)
}

// PublishGalleryDeleted 发布相册删除事件.
func PublishGalleryDeleted(pub message.Publisher, payload GalleryDeletedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicGalleryDeleted, payload, opts...)
}

// ParseGalleryDeleted 解析相册删除事件.
func ParseGalleryDeleted(msg *message.Message) (Message[GalleryDeletedPayload], error) {
	return ParseWatermillMessage[GalleryDeletedPayload](msg)
}

// PublishAssetFinalized 发布资产入库完成事件.
func PublishAssetFinalized(pub message.Publisher, payload AssetFinalizedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicAssetFinalized, payload, opts...)
}

// ParseAssetFinalized 解析资产入库完成事件.
func ParseAssetFinalized(msg *message.Message) (Message[AssetFinalizedPayload], error) {
	return ParseWatermillMessage[AssetFinalizedPayload](msg)
}

// PublishAssetDeleted 发布资产删除事件.
func PublishAssetDeleted(pub message.Publisher, payload AssetDeletedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicAssetDeleted, payload, opts...)
}

// ParseAssetDeleted 解析资产删除事件.
func ParseAssetDeleted(msg *message.Message) (Message[AssetDeletedPayload], error) {
	return ParseWatermillMessage[AssetDeletedPayload](msg)
}

// PublishArchiveBuilt 发布归档构建完成事件.
func PublishArchiveBuilt(pub message.Publisher, payload ArchiveBuiltPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicArchiveBuilt, payload, opts...)
}

// ParseArchiveBuilt 解析归档构建完成事件.
func ParseArchiveBuilt(msg *message.Message) (Message[ArchiveBuiltPayload], error) {
	return ParseWatermillMessage[ArchiveBuiltPayload](msg)
}

// PublishArchiveFailed 发布归档构建失败事件.
func PublishArchiveFailed(pub message.Publisher, payload ArchiveFailedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicArchiveFailed, payload, opts...)
}

// ParseArchiveFailed 解析归档构建失败事件.
func ParseArchiveFailed(msg *message.Message) (Message[ArchiveFailedPayload], error) {
	return ParseWatermillMessage[ArchiveFailedPayload](msg)
}
