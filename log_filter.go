package cryptopals

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// LevelOff disables a module. Nothing in this module logs at panic level,
// so a module filtered to it stays silent.
const LevelOff = logrus.PanicLevel

type logDirective struct {
	module string // "" matches every module
	level  logrus.Level
}

// LogFilter is a parsed CRYPTOPALS_LOG value: a comma separated list of
// "module=level" directives, bare "module" names enabled at debug, and at
// most one bare "level" default.
//
//	cryptopals=debug
//	cryptopals
//	cryptopals=info,cryptopals/set1=debug
//	warn
type LogFilter struct {
	directives []logDirective // most specific first
}

// ParseLogFilter parses a filter string. An empty string yields a filter
// that silences everything.
func ParseLogFilter(spec string) (*LogFilter, error) {
	f := &LogFilter{}
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		i := strings.IndexByte(part, '=')
		if i < 0 {
			// A bare word is a default level, or else a module name.
			if level, err := parseLogLevel(part); err == nil {
				f.directives = append(f.directives, logDirective{level: level})
			} else {
				f.directives = append(f.directives, logDirective{module: strings.Trim(part, "/"), level: logrus.DebugLevel})
			}
			continue
		}

		module := strings.Trim(strings.TrimSpace(part[:i]), "/")
		if module == "" {
			return nil, fmt.Errorf("%w: empty module in log directive %q", ErrInvalidConfiguration, part)
		}
		level, err := parseLogLevel(strings.TrimSpace(part[i+1:]))
		if err != nil {
			return nil, fmt.Errorf("%w: log directive %q: %v", ErrInvalidConfiguration, part, err)
		}
		f.directives = append(f.directives, logDirective{module: module, level: level})
	}

	// Longest module first; a later duplicate overrides an earlier one.
	sort.SliceStable(f.directives, func(i, j int) bool {
		return len(f.directives[i].module) > len(f.directives[j].module)
	})
	f.directives = dedupeDirectives(f.directives)
	return f, nil
}

func parseLogLevel(name string) (logrus.Level, error) {
	switch strings.ToLower(name) {
	case "off", "none":
		return LevelOff, nil
	}
	return logrus.ParseLevel(name)
}

func dedupeDirectives(in []logDirective) []logDirective {
	out := in[:0]
	index := make(map[string]int, len(in))
	for _, d := range in {
		if i, ok := index[d.module]; ok {
			out[i] = d
			continue
		}
		index[d.module] = len(out)
		out = append(out, d)
	}
	return out
}

// LevelFor returns the level in force for module: the level of the
// longest directive that names the module or one of its parents.
func (f *LogFilter) LevelFor(module string) logrus.Level {
	if f == nil {
		return LevelOff
	}
	for _, d := range f.directives {
		if d.module == "" || module == d.module || strings.HasPrefix(module, d.module+"/") {
			return d.level
		}
	}
	return LevelOff
}

// Enabled reports whether a message at level would be emitted for module.
func (f *LogFilter) Enabled(module string, level logrus.Level) bool {
	threshold := f.LevelFor(module)
	return threshold != LevelOff && level <= threshold
}

// MaxLevel returns the most verbose level any directive asks for.
func (f *LogFilter) MaxLevel() logrus.Level {
	most := LevelOff
	if f == nil {
		return most
	}
	for _, d := range f.directives {
		if d.level > most {
			most = d.level
		}
	}
	return most
}

// String renders the filter back into CRYPTOPALS_LOG syntax.
func (f *LogFilter) String() string {
	if f == nil {
		return ""
	}
	parts := make([]string, 0, len(f.directives))
	for _, d := range f.directives {
		name := d.level.String()
		if d.level == LevelOff {
			name = "off"
		}
		if d.module == "" {
			parts = append(parts, name)
			continue
		}
		parts = append(parts, d.module+"="+name)
	}
	return strings.Join(parts, ",")
}
