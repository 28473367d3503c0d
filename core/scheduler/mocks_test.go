package scheduler

import (
	"context"
	"sync"
	"sync/atomic"

	"ai-news-api/core/pipeline"
)

// mockRunner is a mock implementation of the Runner interface
type mockRunner struct {
	runFunc func(ctx context.Context) (pipeline.RunResult, error)
	calls   atomic.Int32
}

func (m *mockRunner) Run(ctx context.Context) (pipeline.RunResult, error) {
	m.calls.Add(1)
	if m.runFunc != nil {
		return m.runFunc(ctx)
	}
	return pipeline.RunResult{}, nil
}

type logEntry struct {
	level string
	msg   string
}

// recordingLogger keeps every entry for assertions
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg})
}

func (l *recordingLogger) Debug(msg string, _ map[string]interface{}) { l.add("debug", msg) }
func (l *recordingLogger) Info(msg string, _ map[string]interface{})  { l.add("info", msg) }
func (l *recordingLogger) Warn(msg string, _ map[string]interface{})  { l.add("warn", msg) }
func (l *recordingLogger) Error(msg string, _ map[string]interface{}) { l.add("error", msg) }

func (l *recordingLogger) has(level, msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.level == level && e.msg == msg {
			return true
		}
	}
	return false
}
