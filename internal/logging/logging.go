package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

// Setup настраивает стандартный логгер: stdout и, если задан, файл.
// В режиме debug добавляется файл и строка.
func Setup(debug bool, logFile string) io.Closer {
	flags := log.Ldate | log.Ltime | log.Lmsgprefix
	if debug {
		flags |= log.Lshortfile
	}

	writers := []io.Writer{os.Stdout}
	var closer io.Closer = nopCloser{}

	if logFile != "" {
		if dir := filepath.Dir(logFile); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				log.Printf("Error creating log dir %s: %v", dir, err)
			}
		}

		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Printf("Error opening log file %s: %v", logFile, err)
		} else {
			writers = append(writers, f)
			closer = f
		}
	}

	log.SetOutput(io.MultiWriter(writers...))
	log.SetFlags(flags)
	return closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
