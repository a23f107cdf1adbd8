package emit

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watch calls onChange with absolute name of the file every time one of the
// files is written until ctx is cancelled. Errors from onChange are logged,
// watching continues.
func watch(ctx context.Context, log *zap.Logger, files []string, onChange func(name string) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to create watcher: %w", err)
	}
	defer w.Close()

	for _, f := range files {
		name, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		if err := w.Add(name); err != nil {
			return fmt.Errorf("unable to watch '%s': %w", f, err)
		}
	}
	log.Info("Watching for changes", zap.Strings("files", files))

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopped watching")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				// editors saving by rename replace the inode, file may come back
				_ = w.Add(ev.Name)
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			log.Debug("File changed", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
			if err := onChange(ev.Name); err != nil {
				log.Error("Unable to process change, keeping previous output", zap.String("file", ev.Name), zap.Error(err))
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Error("Watcher error", zap.Error(err))
		}
	}
}
