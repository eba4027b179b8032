// Package router 管理路由配置，用于设置HTTP服务的路由规则.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/almostmoments/momentvault/pkg/internal/handle"
	"github.com/almostmoments/momentvault/pkg/middleware"
)

// RegisterGalleryRoutes 注册相册及其资产相关路由.
//
// 访客（凭分享链接）即可浏览、上传、打包下载；相册生命周期管理（创建、
// 修改、删除、统计）需要组织者令牌。
func RegisterGalleryRoutes(g *gin.RouterGroup) {
	galleries := g.Group("/galleries")
	{
		// 组织者操作
		galleries.POST("", middleware.RequireOrganizer(), handle.CreateGallery)
		galleries.GET("", middleware.RequireOrganizer(), handle.ListGalleries)

		single := galleries.Group("/:galleryId")
		{
			single.GET("", handle.GetGallery)
			single.PATCH("", middleware.RequireOrganizer(), handle.UpdateGallery)
			single.DELETE("", middleware.RequireOrganizer(), handle.DeleteGallery)
			single.GET("/stats", middleware.RequireOrganizer(), handle.GalleryStats)

			// 资产：直传签发、登记、分页浏览、删除
			single.POST("/uploads", handle.PresignUploads)
			single.POST("/assets", handle.FinalizeAssets)
			single.GET("/assets", handle.ListAssets)
			single.DELETE("/assets/:assetId", handle.DeleteAsset)

			// 打包下载
			single.POST("/archive", handle.BuildArchive)
		}
	}
}
