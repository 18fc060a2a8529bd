package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Anesbeng/exam-planning-sub000/pkg/response"
)

// BodyLimit 全局请求体大小限制中间件。
// 排考接口的负载都很小（最大的是批量删除的 ID 列表），
// maxBytes 取 1MB 已远超正常请求
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()

		if c.IsAborted() {
			return
		}
		for _, err := range c.Errors {
			if err.Err != nil && err.Err.Error() == "http: request body too large" {
				response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
				return
			}
		}
	}
}
