package tui

import "strings"

// LogWriter adapts App.Log to an io.Writer so a *log.Logger can write
// straight into the progress view instead of stderr.
type LogWriter struct {
	app *App
}

// NewLogWriter wraps app as an io.Writer.
func NewLogWriter(app *App) *LogWriter {
	return &LogWriter{app: app}
}

func (w *LogWriter) Write(p []byte) (int, error) {
	w.app.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
