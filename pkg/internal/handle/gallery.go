package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/almostmoments/momentvault/pkg/internal/service"
	"github.com/almostmoments/momentvault/pkg/internal/types"
)

// CreateGallery 创建相册.
//
//	@Summary		创建相册
//	@Description	创建活动相册，可选设置过期时间，创建后返回分享链接
//	@Tags			相册
//	@Accept			json
//	@Produce		json
//	@Param			body	types.CreateGalleryRequest	true	"创建参数"
//	@Success		201		{object}					types.GalleryResponse
//	@Failure		400		{object}					map[string]string
//	@Failure		500		{object}					map[string]string
//	@Router			/api/v1/galleries [post]
func CreateGallery(c *gin.Context) {
	var req types.CreateGalleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)

		return
	}

	svc := service.NewGalleryService(c.Request.Context())

	res, err := svc.CreateGallery(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusCreated, res)
}

// GetGallery 获取相册详情.
//
//	@Summary	相册详情
//	@Tags		相册
//	@Produce	json
//	@Param		galleryId	path		string	true	"相册ID"
//	@Success	200			{object}	types.GalleryResponse
//	@Failure	404			{object}	map[string]string
//	@Router		/api/v1/galleries/{galleryId} [get]
func GetGallery(c *gin.Context) {
	svc := service.NewGalleryService(c.Request.Context())

	res, err := svc.GetGallery(c.Request.Context(), c.Param("galleryId"))
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, res)
}

// UpdateGallery 更新相册信息.
//
//	@Summary	更新相册
//	@Tags		相册
//	@Accept		json
//	@Produce	json
//	@Param		galleryId	path		string						true	"相册ID"
//	@Param		body		types.UpdateGalleryRequest	true	"更新参数"
//	@Success	200			{object}	types.GalleryResponse
//	@Failure	400			{object}	map[string]string
//	@Failure	404			{object}	map[string]string
//	@Failure	410			{object}	map[string]string
//	@Router		/api/v1/galleries/{galleryId} [patch]
func UpdateGallery(c *gin.Context) {
	var req types.UpdateGalleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)

		return
	}

	svc := service.NewGalleryService(c.Request.Context())

	res, err := svc.UpdateGallery(c.Request.Context(), c.Param("galleryId"), &req)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, res)
}

// DeleteGallery 删除相册及其全部资产.
//
//	@Summary	删除相册
//	@Tags		相册
//	@Param		galleryId	path	string	true	"相册ID"
//	@Success	204
//	@Failure	400	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/galleries/{galleryId} [delete]
func DeleteGallery(c *gin.Context) {
	svc := service.NewGalleryService(c.Request.Context())

	if err := svc.DeleteGallery(c.Request.Context(), c.Param("galleryId")); err != nil {
		writeError(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

// ListGalleries 列出相册，可按组织者过滤.
//
//	@Summary	相册列表
//	@Tags		相册
//	@Produce	json
//	@Param		owner	query		string	false	"组织者过滤"
//	@Success	200		{object}	types.ListGalleriesResponse
//	@Failure	500		{object}	map[string]string
//	@Router		/api/v1/galleries [get]
func ListGalleries(c *gin.Context) {
	svc := service.NewGalleryService(c.Request.Context())

	res, err := svc.ListGalleries(c.Request.Context(), c.Query("owner"))
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, res)
}

// GalleryStats 获取相册统计信息，包含计数器与实际行数的对照.
//
//	@Summary	相册统计
//	@Tags		相册
//	@Produce	json
//	@Param		galleryId	path		string	true	"相册ID"
//	@Success	200			{object}	types.GalleryStatsResponse
//	@Failure	404			{object}	map[string]string
//	@Router		/api/v1/galleries/{galleryId}/stats [get]
func GalleryStats(c *gin.Context) {
	svc := service.NewGalleryService(c.Request.Context())

	res, err := svc.GalleryStats(c.Request.Context(), c.Param("galleryId"))
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, res)
}
