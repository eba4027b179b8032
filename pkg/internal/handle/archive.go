package handle

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/almostmoments/momentvault/pkg/internal/service"
	"github.com/almostmoments/momentvault/pkg/internal/types"
	"github.com/almostmoments/momentvault/pkg/log"
)

// BuildArchive 打包下载相册资产.
//
//	@Summary		打包下载
//	@Description	将相册全部（或指定对象键子集）资产打包为 zip 返回，任一对象拉取失败则整体失败
//	@Tags			归档
//	@Accept			json
//	@Produce		application/zip
//	@Param			galleryId	path	string					true	"相册ID"
//	@Param			body		types.ArchiveRequest	false	"对象键子集，缺省为全部"
//	@Success		200	{file}		binary
//	@Success		204	"相册为空"
//	@Failure		404	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Router			/api/v1/galleries/{galleryId}/archive [post]
func BuildArchive(c *gin.Context) {
	var req types.ArchiveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)

			return
		}
	}

	svc := service.NewGalleryService(c.Request.Context())

	// 完整性门槛要求先装配再发送，归档在内存中组装完成后一次性下发.
	var buf bytes.Buffer

	summary, err := svc.BuildArchive(c.Request.Context(), c.Param("galleryId"), &req, &buf, nil)
	if err != nil {
		writeError(c, err)

		return
	}

	if summary == nil {
		c.Status(http.StatusNoContent)

		return
	}

	log.Logger().Info().
		Str("gallery_id", c.Param("galleryId")).
		Str("archive", summary.ArchiveName).
		Int("entries", summary.Entries).
		Int64("bytes", summary.Bytes).
		Msg("archive download")

	c.Header("Content-Disposition", `attachment; filename="`+summary.ArchiveName+`"`)
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}
