package types

import (
	"fmt"
	"strings"
)

// ValidationError 请求参数非法，映射 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError 创建参数错误.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError 资源不存在，映射 404.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ExpiredError 相册已过期，映射 410.
type ExpiredError struct {
	GalleryID string
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("gallery %s has expired", e.GalleryID)
}

// MissingObjectsError 批量入库引用了存储中不存在的对象，整批拒绝，映射 404.
type MissingObjectsError struct {
	GalleryID   string
	MissingKeys []string
}

func (e *MissingObjectsError) Error() string {
	return fmt.Sprintf("gallery %s: %d referenced objects missing from storage: %s",
		e.GalleryID, len(e.MissingKeys), strings.Join(e.MissingKeys, ", "))
}

// PartialCompletionError 归档构建未能包含全部文件，映射 500.
type PartialCompletionError struct {
	GalleryID string
	Added     int
	Expected  int
}

func (e *PartialCompletionError) Error() string {
	return fmt.Sprintf("gallery %s: only %d of %d files could be included in the archive",
		e.GalleryID, e.Added, e.Expected)
}
