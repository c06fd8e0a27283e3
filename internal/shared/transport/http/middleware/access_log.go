package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"HaliteBot/internal/shared/transport"
	"HaliteBot/modules/kit/logx"
)

// AccessLog 统一写访问日志，状态码与 gin 收集的错误一并记录。
func AccessLog(log logx.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		action := c.Request.Method + " " + route

		ctx := transport.NewContextWithParent(c.Request.Context(), action)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		transport.SetStatus(ctx, c.Writer.Status())
		if len(c.Errors) > 0 {
			transport.SetErrorReason(ctx, strings.Join(c.Errors.Errors(), "; "))
		}
		transport.WriteAccessLog(ctx, log)
	}
}
