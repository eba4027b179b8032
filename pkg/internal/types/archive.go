package types

// ArchiveRequest 归档构建请求. ObjectKeys 为空时打包整个相册（"下载全部"），
// 非空时仅打包指定子集（"下载所选"）.
type ArchiveRequest struct {
	ObjectKeys []string `binding:"omitempty,dive,required,objectid" json:"object_keys,omitempty"`
}

// ArchiveProgress 构建过程中的进度快照.
type ArchiveProgress struct {
	FilesAdded int `json:"files_added"`
	Expected   int `json:"expected"`
	Percent    int `json:"percent"`
}

// ArchiveSummary 构建完成后的汇总.
type ArchiveSummary struct {
	ArchiveName string `json:"archive_name"`
	Entries     int    `json:"entries"`
	Bytes       int64  `json:"bytes"`
}

// PresignUploadRequest 为直传客户端签发 PUT URL.
type PresignUploadRequest struct {
	FileNames []string `binding:"required,min=1,dive,required,max=255" json:"file_names"`
}

// PresignUploadItem 单个预签名结果.
type PresignUploadItem struct {
	FileName  string `json:"file_name"`
	ObjectKey string `json:"object_key"`
	PutURL    string `json:"put_url"`
	ExpiresIn int    `json:"expires_in"`
}

// PresignUploadResponse 预签名结果集.
type PresignUploadResponse struct {
	Results []PresignUploadItem `json:"results"`
}
