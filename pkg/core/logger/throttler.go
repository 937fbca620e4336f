package logger

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

// DefaultThrottleInterval is used when a throttler is created with a zero interval.
const DefaultThrottleInterval = 5 * time.Minute

// LogThrottler logs a message at its level once per interval per key and
// demotes repetitions to DEBUG. Each instance keeps its own limiters.
type LogThrottler struct {
	log      *zap.Logger
	limiters sync.Map // map[string]*rate.Limiter
	interval time.Duration
}

// NewLogThrottler creates a throttler. A zero interval means DefaultThrottleInterval.
func NewLogThrottler(log *zap.Logger, interval time.Duration) *LogThrottler {
	if interval == 0 {
		interval = DefaultThrottleInterval
	}
	return &LogThrottler{
		log:      log,
		interval: interval,
	}
}

// Warn logs as WARN once per interval per key, DEBUG otherwise.
func (t *LogThrottler) Warn(key string, msg string, fields ...zap.Field) {
	t.Log(key, zapcore.WarnLevel, msg, fields...)
}

// Log logs at level once per interval per key, DEBUG otherwise.
func (t *LogThrottler) Log(key string, level zapcore.Level, msg string, fields ...zap.Field) {
	if t.getLimiter(key).Allow() {
		t.log.Log(level, msg, fields...)
		return
	}
	t.log.Debug(msg, fields...)
}

func (t *LogThrottler) getLimiter(key string) *rate.Limiter {
	if limiter, ok := t.limiters.Load(key); ok {
		return limiter.(*rate.Limiter)
	}

	// 1 event per interval, no burst
	limiter := rate.NewLimiter(rate.Every(t.interval), 1)
	actual, _ := t.limiters.LoadOrStore(key, limiter)
	return actual.(*rate.Limiter)
}
