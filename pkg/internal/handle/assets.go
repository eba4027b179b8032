package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/almostmoments/momentvault/pkg/internal/service"
	"github.com/almostmoments/momentvault/pkg/internal/types"
)

// FinalizeAssets 登记已上传对象的元数据，写入资产行并更新计数器.
//
//	@Summary		登记资产
//	@Description	客户端直传完成后调用，支持携带完整元数据或仅携带对象键（服务端回查元数据）
//	@Tags			资产
//	@Accept			json
//	@Produce		json
//	@Param			galleryId	path		string						true	"相册ID"
//	@Param			body		types.FinalizeAssetsRequest	true	"登记参数"
//	@Success		201			{object}	types.FinalizeAssetsResponse
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Failure		410			{object}	map[string]string
//	@Router			/api/v1/galleries/{galleryId}/assets [post]
func FinalizeAssets(c *gin.Context) {
	var req types.FinalizeAssetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)

		return
	}

	svc := service.NewGalleryService(c.Request.Context())

	res, err := svc.FinalizeAssets(c.Request.Context(), c.Param("galleryId"), &req)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusCreated, res)
}

// ListAssets 游标分页列出相册资产.
//
//	@Summary		资产列表
//	@Description	按创建时间倒序的游标分页，响应携带 next_cursor 用于翻页
//	@Tags			资产
//	@Produce		json
//	@Param			galleryId	path		string	true	"相册ID"
//	@Param			cursor		query		string	false	"翻页游标"
//	@Param			limit		query		int		false	"页大小"
//	@Success		200			{object}	types.ListAssetsResponse
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/api/v1/galleries/{galleryId}/assets [get]
func ListAssets(c *gin.Context) {
	var req types.ListAssetsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)

		return
	}

	svc := service.NewGalleryService(c.Request.Context())

	res, err := svc.ListAssets(c.Request.Context(), c.Param("galleryId"), &req)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, res)
}

// DeleteAsset 删除单个资产.
//
//	@Summary	删除资产
//	@Tags		资产
//	@Produce	json
//	@Param		galleryId	path		string	true	"相册ID"
//	@Param		assetId		path		string	true	"资产ID"
//	@Success	200			{object}	types.DeleteAssetResponse
//	@Failure	400			{object}	map[string]string
//	@Failure	404			{object}	map[string]string
//	@Router		/api/v1/galleries/{galleryId}/assets/{assetId} [delete]
func DeleteAsset(c *gin.Context) {
	svc := service.NewGalleryService(c.Request.Context())

	res, err := svc.DeleteAsset(c.Request.Context(), c.Param("galleryId"), c.Param("assetId"))
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, res)
}

// PresignUploads 为一批文件名签发直传 URL.
//
//	@Summary		签发上传URL
//	@Description	服务端生成对象键并返回预签名 PUT URL，客户端直传后再调用登记接口
//	@Tags			资产
//	@Accept			json
//	@Produce		json
//	@Param			galleryId	path		string						true	"相册ID"
//	@Param			body		types.PresignUploadRequest	true	"文件名列表"
//	@Success		200			{object}	types.PresignUploadResponse
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Failure		410			{object}	map[string]string
//	@Router			/api/v1/galleries/{galleryId}/uploads [post]
func PresignUploads(c *gin.Context) {
	var req types.PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)

		return
	}

	svc := service.NewGalleryService(c.Request.Context())

	res, err := svc.PresignUploads(c.Request.Context(), c.Param("galleryId"), &req)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, res)
}
