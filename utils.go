package cryptopals

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/go-i2p/logger"
)

var configRegex = regexp.MustCompile(`^\s*([\w.]+)\s*=\s*(.*?)\s*;\s*$`)

// LogInit installs filter for every Logger and points the go-i2p logger
// backend at stderr, at the most verbose level the filter needs.
func LogInit(filter *LogFilter) {
	logInitTo(filter, os.Stderr)
}

// logInitTo is LogInit with the backend writing to out. The backend reads
// DEBUG_I2P once, in its own init, so it is configured here directly.
func logInitTo(filter *LogFilter, out io.Writer) {
	activeFilter.Store(filter)

	backend := logger.GetGoI2PLogger()
	level := filter.MaxLevel()
	if level <= LevelOff {
		backend.SetOutput(io.Discard)
		backend.SetLevel(logger.PanicLevel)
		return
	}
	backend.SetOutput(out)
	backend.SetLevel(logger.Level(level))
}

// LogInitFromEnv parses CRYPTOPALS_LOG and calls LogInit.
func LogInitFromEnv() (*LogFilter, error) {
	filter, err := ParseLogFilter(os.Getenv(LogEnvVar))
	if err != nil {
		return nil, err
	}
	LogInit(filter)
	return filter, nil
}

// ParseConfig reads a "key=value;" configuration file and calls cb for
// each pair. Lines that do not match, such as comments, are skipped.
func ParseConfig(path string, cb func(key, value string) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	defer file.Close()

	log.Debugf("Parsing config file '%s'", path)
	scan := bufio.NewScanner(file)
	line := 0
	for scan.Scan() {
		line++
		groups := configRegex.FindStringSubmatch(scan.Text())
		if len(groups) != 3 {
			continue
		}
		if err := cb(groups[1], groups[2]); err != nil {
			return fmt.Errorf("%s:%d: %w", path, line, err)
		}
	}
	if err := scan.Err(); err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	return nil
}
