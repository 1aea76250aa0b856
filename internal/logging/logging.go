// Package logging configures the process-wide logrus logger.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const slowRequestThreshold = 200 * time.Millisecond

func Setup(level, format string) {
	logrus.SetOutput(os.Stdout)

	if strings.EqualFold(format, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// RequestLogger logs every request with its latency and flags slow ones.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		entry := logrus.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": latency.String(),
			"ip":      c.ClientIP(),
		})

		if latency > slowRequestThreshold {
			entry.Warn("slow request")
			return
		}
		entry.Info("request")
	}
}
