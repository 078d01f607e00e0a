// Package progress defines the collaborator a valuation run reports its
// progress to. The engine only ever calls it; nothing is read back.
package progress

import (
	"github.com/rs/zerolog"
)

type Reporter interface {
	SetTaskTitle(title string)
	IncrementCompletionPercent(n int)
	SetCompletionPercent(n int)
}

// Nop discards progress.
type Nop struct{}

func (Nop) SetTaskTitle(string)            {}
func (Nop) IncrementCompletionPercent(int) {}
func (Nop) SetCompletionPercent(int)       {}

// LogReporter writes progress as structured log lines.
type LogReporter struct {
	logger  zerolog.Logger
	title   string
	percent int
}

func NewLogReporter(logger zerolog.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

func (r *LogReporter) SetTaskTitle(title string) {
	r.title = title
	r.logger.Info().Str("task", title).Int("percent", r.percent).Msg("progress")
}

func (r *LogReporter) IncrementCompletionPercent(n int) {
	r.SetCompletionPercent(r.percent + n)
}

func (r *LogReporter) SetCompletionPercent(n int) {
	r.percent = min(max(n, 0), 100)
	r.logger.Debug().Str("task", r.title).Int("percent", r.percent).Msg("progress")
}

// Percent returns the last reported completion.
func (r *LogReporter) Percent() int {
	return r.percent
}
