package common

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// WriteErrorResponse 寫入錯誤響應並中止請求
func WriteErrorResponse(c *gin.Context, err error, debug bool) {
	ce := AsCustomError(err)
	if ce.Status >= 500 {
		LogError("Request failed",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetHeader("X-Request-ID")),
		)
	}
	c.AbortWithStatusJSON(ce.Status, ce.Response(debug))
}
