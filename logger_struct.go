// Logger struct definition
package cryptopals

// Logger writes diagnostics for one module of the logging namespace.
// Its effective level is looked up in the installed LogFilter on every
// call, so package-level loggers created before LogInit still honour
// CRYPTOPALS_LOG.
type Logger struct {
	module    string
	callbacks *LoggerCallbacks
}
