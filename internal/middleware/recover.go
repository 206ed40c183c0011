package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"aff-commission-api/internal/constant"
	"aff-commission-api/internal/utils"
)

func Recover(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(logrus.Fields{
					"path":     c.Request.URL.Path,
					"trace_id": c.GetString(TraceIDKey),
					"stack":    string(debug.Stack()),
				}).Errorf("[PANIC] %v", r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, utils.ErrorWithTrace(constant.CodeSystemError, c.GetString(TraceIDKey)))
			}
		}()
		c.Next()
	}
}
