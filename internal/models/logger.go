package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gorm_logger "gorm.io/gorm/logger"
)

// logger writes gorm messages to zerolog.
type logger struct {
	Logger        zerolog.Logger
	SlowThreshold time.Duration
}

func (l *logger) LogMode(gorm_logger.LogLevel) gorm_logger.Interface {
	return l
}

func (l *logger) Info(_ context.Context, s string, args ...any) {
	l.Logger.Info().Msgf(s, args...)
}

func (l *logger) Warn(_ context.Context, s string, args ...any) {
	l.Logger.Warn().Msgf(s, args...)
}

func (l *logger) Error(_ context.Context, s string, args ...any) {
	l.Logger.Error().Msgf(s, args...)
}

func (l *logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	event := l.Logger.Debug()
	switch {
	case err != nil && !errors.Is(err, ErrResourceNotFound) && !errors.Is(err, ErrGeneral):
		event = l.Logger.Error().Err(err)
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold:
		event = l.Logger.Warn().Dur("threshold", l.SlowThreshold)
	}

	event.Str("sql", sql).Int64("rows", rows).Dur("duration", elapsed).Msg("[GORM] query")
}
