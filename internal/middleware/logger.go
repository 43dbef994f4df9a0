package middleware

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tradedesk-portal/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger builds the application logger and installs it as the zap global.
// Entries go to stdout and to a rotated app.log inside cfg.Dir.
func InitLogger(cfg config.LogConfig) (*zap.Logger, error) {
	absLogDir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		absLogDir = cfg.Dir
	}

	// Create logs directory if not exists
	if err := os.MkdirAll(absLogDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", absLogDir, err)
	}

	level := zapcore.InfoLevel
	if err := level.Set(strings.ToLower(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	appLogFile := &lumberjack.Logger{
		Filename:   filepath.Join(absLogDir, "app.log"),
		MaxSize:    10, // MB
		MaxBackups: 30,
		MaxAge:     30, // days
		Compress:   true,
		LocalTime:  true,
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stdout), level),
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(appLogFile), level),
	)

	logger := zap.New(core, zap.AddCaller())
	zap.ReplaceGlobals(logger)

	logger.Info("logger initialized", zap.String("dir", absLogDir), zap.String("level", level.String()))
	return logger, nil
}

// LogInfo logs info level messages
func LogInfo(format string, v ...interface{}) {
	zap.S().Infof(format, v...)
}

// LogError logs error level messages
func LogError(format string, v ...interface{}) {
	zap.S().Errorf(format, v...)
}

// LogDebug logs debug level messages
func LogDebug(format string, v ...interface{}) {
	zap.S().Debugf(format, v...)
}

// RequestLoggerMiddleware logs every request with its status and latency
func RequestLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		// Build full URL
		fullURL := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			fullURL = fullURL + "?" + c.Request.URL.RawQuery
		}

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("url", fullURL),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(startTime)),
			zap.String("client_ip", c.ClientIP()),
		}
		if userID, ok := c.Get(ContextKeyUserID); ok {
			fields = append(fields, zap.Any("user_id", userID))
		}

		if c.Writer.Status() >= 400 {
			zap.L().Named("http").Error("request", fields...)
		} else {
			zap.L().Named("http").Info("request", fields...)
		}
	}
}
