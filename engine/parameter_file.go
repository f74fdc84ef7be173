package engine

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// watch starts the parameter file watcher when one is configured.
//
// Returns:
//   - func(): stops the watcher; a no-op when nothing is watched
//   - error: an error if the file cannot be read or watched
func (e *engine) watch() (func(), error) {
	if e.parameterFile == "" {
		return func() {}, nil
	}
	stop, err := watchParameterFile(e.parameterFile, e.logger, e.SetParameters)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return stop, nil
}

// readParameterFile returns the trimmed contents of path.
func readParameterFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// watchParameterFile sends the contents of path to send now and after every change to the file.
// The parent directory is watched so editors that replace the file by rename are followed.
//
// Parameters:
//   - path: the parameter file
//   - logger: receives read and watch errors
//   - send: called from the watcher goroutine with the trimmed file contents
//
// Returns:
//   - func(): stops the watcher and waits for its goroutine
//   - error: an error if the first read or the watch fails
func watchParameterFile(path string, logger *slog.Logger, send func(string)) (func(), error) {
	path = filepath.Clean(path)
	raw, err := readParameterFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading parameter file: %w", err)
	}
	send(raw)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watching parameter file: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching parameter file: %w", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				raw, err := readParameterFile(path)
				if err != nil {
					logger.Warn("parameter file unreadable", "path", path, "error", err)
					continue
				}
				logger.Debug("parameter file changed", "path", path)
				send(raw)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("parameter file watch error", "path", path, "error", err)
			}
		}
	}()

	return func() {
		watcher.Close()
		<-done
	}, nil
}
