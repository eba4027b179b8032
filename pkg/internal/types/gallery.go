package types

// CreateGalleryRequest 创建相册请求.
type CreateGalleryRequest struct {
	Name        string `binding:"required,min=1,max=128" json:"name"`
	Description string `binding:"max=1024"               json:"description,omitempty"`
	Owner       string `binding:"omitempty,email"        json:"owner,omitempty"`
	ExpiryAt    string `binding:"omitempty"              json:"expiry_at,omitempty"` // RFC3339，可选
}

// UpdateGalleryRequest 更新相册请求，零值字段不更新.
type UpdateGalleryRequest struct {
	Name        string `binding:"omitempty,min=1,max=128" json:"name,omitempty"`
	Description string `binding:"max=1024"                json:"description,omitempty"`
	ExpiryAt    string `binding:"omitempty"               json:"expiry_at,omitempty"`
}

// GalleryResponse 相册详情.
type GalleryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Owner       string `json:"owner,omitempty"`
	TotalAssets int64  `json:"total_assets"`
	ShareURL    string `json:"share_url"`
	ExpiryAt    string `json:"expiry_at,omitempty"`
	Expired     bool   `json:"expired"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ListGalleriesResponse 相册列表.
type ListGalleriesResponse struct {
	Galleries []GalleryResponse `json:"galleries"`
	Total     int               `json:"total"`
}

// GalleryStatsResponse 单相册统计.
type GalleryStatsResponse struct {
	GalleryID    string `json:"gallery_id"`
	TotalAssets  int64  `json:"total_assets"`  // 计数器缓存值
	ActualAssets int64  `json:"actual_assets"` // 实际行数，用于观察计数漂移
	TotalSize    int64  `json:"total_size"`
	Images       int64  `json:"images"`
	Videos       int64  `json:"videos"`
}
