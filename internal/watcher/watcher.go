package watcher

import (
	"fmt"
	"path/filepath"

	"github.com/bilgehannal/dnsredir/internal/utils"
	"github.com/fsnotify/fsnotify"
)

// Watcher watches the hosts directory for changes and triggers a reload
type Watcher struct {
	hostsDir string
	logger   *utils.Logger
	watcher  *fsnotify.Watcher
	onChange func() error
}

// NewWatcher creates a new watcher on the hosts directory. onChange is
// invoked whenever a hosts file is written, created or renamed into place.
func NewWatcher(hostsDir string, logger *utils.Logger, onChange func() error) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		hostsDir: hostsDir,
		logger:   logger,
		watcher:  fw,
		onChange: onChange,
	}

	// Watch the directory; hosts files may appear and disappear, so
	// watching individual files would miss atomic renames.
	if err := w.watcher.Add(hostsDir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch hosts directory: %w", err)
	}

	return w, nil
}

// Start starts watching for file changes
func (w *Watcher) Start() {
	go w.watch()
}

// watch monitors file system events
func (w *Watcher) watch() {
	w.logger.Info("Started watching hosts directory: %s", w.hostsDir)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Ignore events outside the hosts directory
			if filepath.Dir(event.Name) != w.hostsDir {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.logger.Info("Hosts file changed (%s), reloading...", filepath.Base(event.Name))
				if err := w.onChange(); err != nil {
					w.logger.Error("Failed to reload redirections: %v", err)
				} else {
					w.logger.Info("Redirections reloaded successfully")
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error: %v", err)
		}
	}
}

// Close stops the watcher
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
