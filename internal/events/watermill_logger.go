package events

import (
	"github.com/ThreeDotsLabs/watermill"

	"busbackend/internal/logger"
)

// watermillLogger adapts the app logger to watermill.LoggerAdapter.
type watermillLogger struct {
	log    logger.Logger
	fields watermill.LogFields
}

func newWatermillLogger(log logger.Logger) watermill.LoggerAdapter {
	return watermillLogger{log: log}
}

func (l watermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	kv := l.flatten(fields)
	if err != nil {
		kv = append(kv, "error", err.Error())
	}
	l.log.Error(msg, kv...)
}

func (l watermillLogger) Info(msg string, fields watermill.LogFields) {
	l.log.Debug(msg, l.flatten(fields)...)
}

func (l watermillLogger) Debug(msg string, fields watermill.LogFields) {
	l.log.Debug(msg, l.flatten(fields)...)
}

func (l watermillLogger) Trace(msg string, fields watermill.LogFields) {
	l.log.Debug(msg, l.flatten(fields)...)
}

func (l watermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return watermillLogger{log: l.log, fields: l.fields.Add(fields)}
}

func (l watermillLogger) flatten(fields watermill.LogFields) []interface{} {
	merged := l.fields.Add(fields)
	out := make([]interface{}, 0, len(merged)*2)
	for k, v := range merged {
		out = append(out, k, v)
	}
	return out
}
