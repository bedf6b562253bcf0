package neat

import "log/slog"

var engineLogger *slog.Logger

// SetLogger redirects engine logging. A nil logger falls back to slog.Default().
func SetLogger(l *slog.Logger) {
	engineLogger = l
}

func logger() *slog.Logger {
	if engineLogger != nil {
		return engineLogger
	}
	return slog.Default()
}
