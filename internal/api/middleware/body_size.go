package middleware

import (
	"net/http"

	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrBodyTooLarge 請求體超過上限
var ErrBodyTooLarge = common.NewError("REQUEST_TOO_LARGE", "request body too large", http.StatusRequestEntityTooLarge, nil)

// BodySizeLimit 限制請求體大小的中間件
func BodySizeLimit(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 檢查 Content-Length
		if c.Request.ContentLength > maxSize {
			common.LogWarn("Request body too large",
				zap.Int64("content_length", c.Request.ContentLength),
				zap.Int64("max_size", maxSize),
				zap.String("client_ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(ErrBodyTooLarge.Status, ErrBodyTooLarge.Response(false))
			return
		}

		// 沒有 Content-Length 時仍限制實際讀取量
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)

		c.Next()
	}
}
