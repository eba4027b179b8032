// Package middleware 提供角色与权限相关的中间件和辅助方法。
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Role 表示请求方的角色（使用 iota 实现的枚举，数值越大权限越高）。
// 访客可以上传和浏览，组织者额外拥有相册生命周期管理权限。
type Role int

const (
	RoleVisitor Role = iota + 1
	RoleOrganizer
)

// String 返回角色的字符串表示。
func (r Role) String() string {
	switch r {
	case RoleOrganizer:
		return "organizer"
	case RoleVisitor:
		fallthrough
	default:
		return "visitor"
	}
}

type roleKey struct{}

// setRole 将角色写入 gin.Context 和 request.Context，便于下游 service 获取。
func setRole(c *gin.Context, r Role) {
	c.Set("role", r)

	ctx := context.WithValue(c.Request.Context(), roleKey{}, r)
	c.Request = c.Request.WithContext(ctx)
}

// GetRole 从 gin.Context 获取当前请求角色。
func GetRole(c *gin.Context) Role {
	if v, ok := c.Get("role"); ok {
		if r, ok2 := v.(Role); ok2 {
			return r
		}
	}
	// 回退到 request context
	if v := c.Request.Context().Value(roleKey{}); v != nil {
		if r, ok := v.(Role); ok {
			return r
		}
	}

	return RoleVisitor
}
