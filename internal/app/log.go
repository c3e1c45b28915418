package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"scout/internal/config"
	"scout/internal/util"
)

// OpenLog opens <tmp>/<name>-YYYY-MM-DD.log and returns a logger writing to it
// and, when console is non-nil, to console as well. The logger becomes the
// slog default.
func OpenLog(name string, cfg config.Logging, console io.Writer) (*slog.Logger, func() error, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("%s-%s.log", name, time.Now().Format("2006-01-02")))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	var w io.Writer = f
	if console != nil {
		w = io.MultiWriter(console, f)
	}
	logger := util.NewLogger(cfg.Level, cfg.Format, w)
	util.SetDefault(logger)
	return logger, f.Close, nil
}
