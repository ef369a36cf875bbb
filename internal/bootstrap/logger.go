package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osse101/catchbot/internal/config"
	"github.com/osse101/catchbot/internal/logger"
)

// SetupLogger writes logs to stdout and a timestamped session file under
// cfg.LogDir, pruning older session files. The caller closes the file.
func SetupLogger(cfg *config.Config) (*os.File, error) {
	if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
		return nil, fmt.Errorf(ErrMsgCreateLogDirFailed, err)
	}

	cleanupLogs(cfg.LogDir, LogFileRetentionCount-1)

	name := filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, time.Now().Format(LogFileTimestampFormat)))
	logFile, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgOpenLogFileFailed, err)
	}

	log := logger.InitLoggerWithWriter(
		logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment),
		io.MultiWriter(os.Stdout, logFile),
	)

	log.Info(LogMsgLoggingInitialized, "file", name)
	log.Info(LogMsgStarting, "environment", cfg.Environment, "version", cfg.Version)
	log.Debug(LogMsgConfigurationLoaded,
		"db_driver", cfg.DBDriver,
		"rate_limit_backend", cfg.RateLimitBackend,
		"port", cfg.Port)

	return logFile, nil
}

// cleanupLogs deletes the oldest session logs until at most keep remain.
// Session file names sort chronologically.
func cleanupLogs(dir string, keep int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), LogFileExtension) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for len(names) > keep {
		if err := os.Remove(filepath.Join(dir, names[0])); err != nil {
			slog.Default().Warn(LogMsgDeleteOldLogFailed, "file", names[0], "error", err)
		}
		names = names[1:]
	}
}
