// Package logging provides topic-gated debug logging on top of log/slog.
// Scans touch thousands of views, so hot-path tracing must cost a single
// bool check when it is switched off.
//
// Topics are enabled via the DEBUG_TOPICS env var, e.g.
// DEBUG_TOPICS=catalog,filter or DEBUG_TOPICS=all.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

var enabledTopics = parseTopics(os.Getenv("DEBUG_TOPICS"))

func parseTopics(raw string) map[string]bool {
	topics := make(map[string]bool)
	if raw == "" {
		return topics
	}
	if raw == "all" {
		topics["*"] = true
	} else {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				topics[t] = true
			}
		}
	}
	if len(topics) > 0 {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	return topics
}

// Logger emits for a single topic; construct once per package.
type Logger struct {
	topic   string
	enabled bool
}

func New(topic string) *Logger {
	return &Logger{
		topic:   topic,
		enabled: enabledTopics["*"] || enabledTopics[topic],
	}
}

func (l *Logger) Enabled() bool {
	return l.enabled
}

func (l *Logger) Debug(msg string, args ...any) {
	if !l.enabled {
		return
	}
	slog.Debug(msg, append([]any{"topic", l.topic}, args...)...)
}

func (l *Logger) Info(msg string, args ...any) {
	if !l.enabled {
		return
	}
	slog.Info(msg, append([]any{"topic", l.topic}, args...)...)
}
