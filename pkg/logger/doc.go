// Package logger provides the structured logging interface used across igdebugger.
//
// It wraps zerolog. Console output is human readable; when a log file is
// configured, JSON lines go to the file instead.
//
// Basic Usage:
//
//	cfg := &config.LoggingConfig{Level: "debug", File: "igdebugger.log"}
//	if err := logger.Initialize(cfg, os.Stderr); err != nil {
//	    return err
//	}
//
//	log := logger.GetLogger().WithField("endpoint", "stories")
//	log.InfoWithFields("fetch succeeded", map[string]interface{}{
//	    "username": "alice",
//	    "bytes":    2048,
//	})
//
// Components take a Logger in their options and fall back to GetLogger when
// none is given. Tests use NewNopLogger or NewTestLogger.
//
// Levels: debug, info, warn, error and disabled.
package logger
