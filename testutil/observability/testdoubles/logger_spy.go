package testdoubles

import (
	"context"
	"sync"

	"github.com/staybook/reservation-engine/reservation"
)

// Log levels recorded by LoggerSpy.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// SpyLogRecord represents one recorded log call.
// Contextual is false for calls through the plain Logger methods, Context is nil then.
type SpyLogRecord struct {
	Level      string
	Message    string
	Args       []any
	Context    context.Context
	Contextual bool
}

// LoggerSpy implements both reservation.Logger and reservation.ContextualLogger and records every call.
type LoggerSpy struct {
	records     []SpyLogRecord
	mu          sync.Mutex
	recordCalls bool
}

// NewLoggerSpy creates a new LoggerSpy. Set recordCalls to false for a silent logger.
func NewLoggerSpy(recordCalls bool) *LoggerSpy {
	return &LoggerSpy{recordCalls: recordCalls}
}

func (s *LoggerSpy) record(r SpyLogRecord) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, r)
}

func (s *LoggerSpy) Debug(msg string, args ...any) {
	s.record(SpyLogRecord{Level: LevelDebug, Message: msg, Args: args})
}

func (s *LoggerSpy) Info(msg string, args ...any) {
	s.record(SpyLogRecord{Level: LevelInfo, Message: msg, Args: args})
}

func (s *LoggerSpy) Warn(msg string, args ...any) {
	s.record(SpyLogRecord{Level: LevelWarn, Message: msg, Args: args})
}

func (s *LoggerSpy) Error(msg string, args ...any) {
	s.record(SpyLogRecord{Level: LevelError, Message: msg, Args: args})
}

func (s *LoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.record(SpyLogRecord{Level: LevelDebug, Message: msg, Args: args, Context: ctx, Contextual: true})
}

func (s *LoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.record(SpyLogRecord{Level: LevelInfo, Message: msg, Args: args, Context: ctx, Contextual: true})
}

func (s *LoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.record(SpyLogRecord{Level: LevelWarn, Message: msg, Args: args, Context: ctx, Contextual: true})
}

func (s *LoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.record(SpyLogRecord{Level: LevelError, Message: msg, Args: args, Context: ctx, Contextual: true})
}

// Records returns a copy of all records.
func (s *LoggerSpy) Records() []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyLogRecord(nil), s.records...)
}

// Reset clears all recorded log calls.
func (s *LoggerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
}

// HasLog checks if a log with the given level and message exists.
func (s *LoggerSpy) HasLog(level, message string) bool {
	return s.CountLogs(level, message) > 0
}

// HasDebugLog checks if a debug log with the specified message exists.
func (s *LoggerSpy) HasDebugLog(message string) bool { return s.HasLog(LevelDebug, message) }

// HasInfoLog checks if an info log with the specified message exists.
func (s *LoggerSpy) HasInfoLog(message string) bool { return s.HasLog(LevelInfo, message) }

// HasWarnLog checks if a warn log with the specified message exists.
func (s *LoggerSpy) HasWarnLog(message string) bool { return s.HasLog(LevelWarn, message) }

// HasErrorLog checks if an error log with the specified message exists.
func (s *LoggerSpy) HasErrorLog(message string) bool { return s.HasLog(LevelError, message) }

// CountLogs counts the logs with the given level and message.
func (s *LoggerSpy) CountLogs(level, message string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, r := range s.records {
		if r.Level == level && r.Message == message {
			count++
		}
	}

	return count
}

// HasContextualLog checks if a log with the given level and message was written through a context aware method.
func (s *LoggerSpy) HasContextualLog(level, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.Level == level && r.Message == message && r.Contextual {
			return true
		}
	}

	return false
}

var (
	_ reservation.Logger           = (*LoggerSpy)(nil)
	_ reservation.ContextualLogger = (*LoggerSpy)(nil)
)
