package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/almostmoments/momentvault/pkg/configs"
)

// OrganizerAuthMiddleware 校验组织者令牌并注入角色。
//   - 请求头 X-Organizer-Token 与配置的 gallery.organizer_token 匹配时提升为组织者
//   - 未配置令牌时视为开放模式（开发环境），所有请求均为组织者
//   - 令牌不匹配或缺失时角色保持访客，由路由上的 RequireOrganizer 决定是否拒绝.
func OrganizerAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(configs.GetConfig().Gallery.OrganizerToken)

		role := RoleVisitor

		switch {
		case token == "":
			// 开放模式
			role = RoleOrganizer
		case subtle.ConstantTimeCompare([]byte(token), []byte(strings.TrimSpace(c.GetHeader("X-Organizer-Token")))) == 1:
			role = RoleOrganizer
		}

		setRole(c, role)
		c.Next()
	}
}

// RequireOrganizer 要求当前请求具备组织者角色，否则返回 403。
func RequireOrganizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) < RoleOrganizer {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "organizer token required"})
			return
		}

		c.Next()
	}
}
