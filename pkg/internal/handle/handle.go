// Package handle 提供请求处理器的实现，用于处理HTTP请求.
package handle

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/almostmoments/momentvault/pkg/internal/types"
	"github.com/almostmoments/momentvault/pkg/log"
)

func DefaultHandler(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"message": "Not Implemented"})
}

// writeError 将 service 层的错误类型映射为 HTTP 状态码.
// 400 参数错误 / 404 资源或引用对象不存在 / 410 相册过期 / 500 其他.
func writeError(c *gin.Context, err error) {
	var (
		verr *types.ValidationError
		nerr *types.NotFoundError
		eerr *types.ExpiredError
		merr *types.MissingObjectsError
		perr *types.PartialCompletionError
	)

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.As(err, &nerr):
		c.JSON(http.StatusNotFound, gin.H{"error": nerr.Error()})
	case errors.As(err, &eerr):
		c.JSON(http.StatusGone, gin.H{"error": eerr.Error()})
	case errors.As(err, &merr):
		c.JSON(http.StatusNotFound, gin.H{
			"error":        merr.Error(),
			"missing_keys": merr.MissingKeys,
		})
	case errors.As(err, &perr):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":       perr.Error(),
			"files_added": perr.Added,
			"expected":    perr.Expected,
		})
	default:
		log.Logger().Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, err error) {
	log.Logger().Warn().Err(err).Msg("invalid request")
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
