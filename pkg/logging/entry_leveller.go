package logging

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

// EntryLeveller is a zapcore.Core that filters log entries based on the logger name,
// similar to Log4j or python's logging module. The most specific dotted prefix of the
// logger name that has a level configured decides; "" configures the root.
type EntryLeveller struct {
	zapcore.Core

	levels map[string]zapcore.Level
}

func NewEntryLeveller(core zapcore.Core, levels map[string]zapcore.Level) *EntryLeveller {
	el := &EntryLeveller{Core: core, levels: make(map[string]zapcore.Level, len(levels))}
	for k, v := range levels {
		el.levels[k] = v
	}
	return el
}

func (el *EntryLeveller) With(f []zapcore.Field) zapcore.Core {
	return &EntryLeveller{
		Core:   el.Core.With(f),
		levels: el.levels,
	}
}

func (el *EntryLeveller) levelFor(name string) (zapcore.Level, bool) {
	for name != "" {
		if lvl, ok := el.levels[name]; ok {
			return lvl, true
		}
		i := strings.LastIndexByte(name, '.')
		if i < 0 {
			break
		}
		name = name[:i]
	}
	lvl, ok := el.levels[""]
	return lvl, ok
}

func (el *EntryLeveller) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	level, ok := el.levelFor(e.LoggerName)
	if !ok {
		return el.Core.Check(e, ce)
	}
	if e.Level < level {
		return ce
	}
	// bypass the wrapped core's own level so modules can be more verbose than the root
	return ce.AddCore(e, el)
}
