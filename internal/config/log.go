package config

import (
	"fmt"
	"io"
	"log"
	"os"
)

// SetupLogging creates ~/.rollcall and points the standard logger at
// rollcall.log inside it. The returned closer restores stderr output.
func SetupLogging() (io.Closer, error) {
	if err := EnsureGlobalDir(); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	path, err := LogFile()
	if err != nil {
		return nil, err
	}
	return setupLogging(path)
}

func setupLogging(path string) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetPrefix("[rollcall] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	return logFile{f}, nil
}

type logFile struct{ *os.File }

func (l logFile) Close() error {
	log.SetOutput(os.Stderr)
	return l.File.Close()
}
