package app

import (
	"log/slog"

	"github.com/treykane/cli-sheets/internal/logging"
)

// appLog is the structured logger for the app package. Output goes to
// stderr so it never lands in the Bubble Tea frame on stdout.
var appLog = logging.New("app")

// setStatusError shows status in the footer and logs err with attrs.
//
// The status text is user-facing; err and the slog-style key-value attrs only
// reach the log.
//
//	m.setStatusError("Export failed", err, "path", path)
func (m *Model) setStatusError(status string, err error, attrs ...any) {
	m.status = status
	fields := make([]any, 0, len(attrs)+2)
	fields = append(fields, slog.Any("error", err))
	fields = append(fields, attrs...)
	appLog.Error(status, fields...)
}
