// LoggerCallbacks struct definition
package cryptopals

import "github.com/sirupsen/logrus"

// LoggerCallbacks diverts filtered log lines away from the go-i2p logger,
// for example into a test buffer.
type LoggerCallbacks struct {
	Opaque interface{}
	OnLog  func(l *Logger, level logrus.Level, message string)
}
