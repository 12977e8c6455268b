package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors the configuration file and invokes onChange with the
// freshly loaded config whenever it is rewritten. The watcher covers
// the config directory rather than the file itself so editors that
// replace the file atomically are still picked up. Blocks until ctx is
// cancelled.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	// Debounce timer: editors commonly emit several events per save
	var pending *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-watcher.Events:
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(100*time.Millisecond, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})
		case <-reload:
			loaded, err := LoadFrom(path)
			if err != nil {
				log.Printf("Failed to reload config: %v", err)
				continue
			}
			if err := loaded.Validate(); err != nil {
				log.Printf("Ignoring invalid config: %v", err)
				continue
			}
			onChange(loaded)
		case err := <-watcher.Errors:
			log.Printf("Config watcher error: %v", err)
		}
	}
}
