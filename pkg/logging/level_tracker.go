package logging

import (
	"go.uber.org/atomic"
	"go.uber.org/zap/zapcore"
)

// LevelTracker is a write-nothing zapcore.Core recording whether any warnings or errors
// were logged, so CLIs can pick an exit code after the fact.
type LevelTracker struct {
	hadWarnings *atomic.Bool
	hadErrors   *atomic.Bool
}

func NewLevelTracker() *LevelTracker {
	return &LevelTracker{
		hadWarnings: atomic.NewBool(false),
		hadErrors:   atomic.NewBool(false),
	}
}

func (t *LevelTracker) Enabled(lvl zapcore.Level) bool {
	return lvl >= zapcore.WarnLevel
}

func (t *LevelTracker) With([]zapcore.Field) zapcore.Core {
	return t
}

func (t *LevelTracker) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if t.Enabled(ent.Level) {
		return ce.AddCore(ent, t)
	}
	return ce
}

func (t *LevelTracker) Write(ent zapcore.Entry, _ []zapcore.Field) error {
	if ent.Level >= zapcore.WarnLevel {
		t.hadWarnings.Store(true)
	}
	if ent.Level >= zapcore.ErrorLevel {
		t.hadErrors.Store(true)
	}
	return nil
}

func (t *LevelTracker) Sync() error {
	return nil
}

func (t *LevelTracker) HadWarnings() bool {
	return t.hadWarnings.Load()
}

func (t *LevelTracker) HadErrors() bool {
	return t.hadErrors.Load()
}
