package types

// FinalizeAssetItem 单个待入库资产及其占位元数据.
type FinalizeAssetItem struct {
	ObjectKey string `binding:"required,objectid" json:"object_key"`
	FileName  string `binding:"omitempty,max=255" json:"file_name,omitempty"`
	Size      int64  `binding:"omitempty,min=0"   json:"size,omitempty"`
	Blurhash  string `binding:"omitempty,blurhash" json:"blurhash,omitempty"`
	Width     int    `binding:"omitempty,min=0"   json:"width,omitempty"`
	Height    int    `binding:"omitempty,min=0"   json:"height,omitempty"`
}

// FinalizeAssetsRequest 批量资产入库请求.
// Assets 为带占位元数据的标准路径；ObjectKeys 为仅凭对象键的恢复路径，
// 两者必须恰好提供其一.
type FinalizeAssetsRequest struct {
	Assets     []FinalizeAssetItem `binding:"omitempty,dive"                    json:"assets,omitempty"`
	ObjectKeys []string            `binding:"omitempty,dive,required,objectid"  json:"object_keys,omitempty"`
}

// FinalizeAssetsResponse 入库结果.
type FinalizeAssetsResponse struct {
	Created int `json:"created"`
}

// AssetResponse 单个资产记录.
type AssetResponse struct {
	ID        string `json:"id"`
	GalleryID string `json:"gallery_id"`
	ObjectKey string `json:"object_key"`
	FileName  string `json:"file_name,omitempty"`
	Size      int64  `json:"size"`
	Blurhash  string `json:"blurhash,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ListAssetsRequest 游标分页列出相册资产.
type ListAssetsRequest struct {
	Cursor string `form:"cursor" json:"cursor,omitempty"` // 上一页最后一条记录的 id
	Limit  int    `form:"limit"  json:"limit,omitempty"`  // 0 则使用配置默认页大小
}

// ListAssetsResponse 一页资产，按创建时间倒序.
type ListAssetsResponse struct {
	Assets     []AssetResponse `json:"assets"`
	NextCursor string          `json:"next_cursor,omitempty"`
	HasMore    bool            `json:"has_more"`
}

// DeleteAssetResponse 资产删除结果.
type DeleteAssetResponse struct {
	Deleted       bool `json:"deleted"`
	ObjectRemoved bool `json:"object_removed"`
}
