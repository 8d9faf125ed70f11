package lumen

import (
	"context"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
)

// ManifestSource observes a manifest location for changes and emits raw
// bytes on a channel. Implementations must emit the current value
// immediately upon Watch() being called to support initial loading.
type ManifestSource interface {
	// Watch begins observing the source and returns a channel that emits
	// raw bytes when changes occur. The channel is closed when the context
	// is canceled or an unrecoverable error occurs.
	Watch(ctx context.Context) (<-chan []byte, error)
}

// ManifestWatcher watches a manifest file for changes and emits its
// contents.
type ManifestWatcher struct {
	path string
}

// NewManifestWatcher creates a ManifestWatcher for the given file path.
func NewManifestWatcher(path string) *ManifestWatcher {
	return &ManifestWatcher{path: path}
}

// Watch begins watching the manifest file and returns a channel that emits
// the file contents whenever the file is written. The current contents are
// emitted immediately to support initial loading.
func (w *ManifestWatcher) Watch(ctx context.Context) (<-chan []byte, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if err := watcher.Add(w.path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch manifest %s: %w", w.path, err)
	}

	out := make(chan []byte)

	go func() {
		defer close(out)
		defer watcher.Close()

		// Emit initial contents
		if data, err := os.ReadFile(w.path); err == nil {
			select {
			case out <- data:
			case <-ctx.Done():
				return
			}
		}

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				// Only emit on write or create events
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}

				data, err := os.ReadFile(w.path)
				if err != nil {
					continue
				}

				select {
				case out <- data:
				case <-ctx.Done():
					return
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Continue watching despite errors
			}
		}
	}()

	return out, nil
}

// ChannelSource wraps an existing byte channel as a ManifestSource.
// Useful for testing and custom sources that already produce bytes.
type ChannelSource struct {
	ch <-chan []byte
}

// NewChannelSource creates a ChannelSource that returns the source channel
// directly. Use with SyncMode() for deterministic testing.
func NewChannelSource(ch <-chan []byte) *ChannelSource {
	return &ChannelSource{ch: ch}
}

// Watch returns the wrapped channel.
func (s *ChannelSource) Watch(_ context.Context) (<-chan []byte, error) {
	return s.ch, nil
}
