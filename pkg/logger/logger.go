package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	global = zap.NewNop()
)

// SetupLogger configures the process-wide logger for the given environment.
// "prod" gets the JSON production encoder, anything else the development
// console encoder.
func SetupLogger(env string) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)

	switch env {
	case "prod", "production":
		l, err = zap.NewProduction()
	default:
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("logger setup failed: " + err.Error())
	}

	mu.Lock()
	global = l
	mu.Unlock()

	return l
}

func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()

	return global
}

func Debug(msg string, fields ...zap.Field) {
	Logger().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	Logger().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Logger().Error(msg, fields...)
}
