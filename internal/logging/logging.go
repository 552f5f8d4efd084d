// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the debug logger. The panel owns the terminal
// while running, so log output goes to a file named by EXTVIEW_DEBUG and is
// discarded entirely when the variable is unset.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Setup returns the application logger. When EXTVIEW_DEBUG names a file,
// records are appended there; otherwise everything is discarded.
func Setup() *log.Logger {
	path := os.Getenv("EXTVIEW_DEBUG")
	if path == "" {
		return log.New(io.Discard)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return log.New(io.Discard)
	}

	logger := log.New(f)
	logger.SetLevel(log.DebugLevel)
	logger.SetReportTimestamp(true)
	return logger
}
