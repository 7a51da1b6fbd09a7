package trackfile

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/HisarCS/MusicCo/model"
	"github.com/HisarCS/MusicCo/notation"
)

// Read returns the whole contents of a track file.
func Read(path string) (string, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "could not read track file %v", path)
	}
	return string(dat), nil
}

// Load reads and parses a track file in the core dialect.
func Load(path string) ([]model.NoteRecord, error) {
	text, err := Read(path)
	if err != nil {
		return nil, err
	}
	return notation.Parse(text)
}

// LoadEnsemble reads and parses a track file in the ensemble dialect.
func LoadEnsemble(path string) ([]model.NoteRecord, error) {
	text, err := Read(path)
	if err != nil {
		return nil, err
	}
	return notation.ParseEnsemble(text)
}

// Write serializes records to the wire format and writes them out.
func Write(path string, records []model.NoteRecord) error {
	err := os.WriteFile(path, []byte(notation.Format(records)), 0644)
	return errors.Wrapf(err, "could not write track file %v", path)
}

// Watch invokes fn with freshly parsed records every time the track file
// changes, until ctx is done. Parse failures are logged and skipped since the
// file is likely mid-edit; watcher failures end the watch.
func Watch(ctx context.Context, path string, fn func([]model.NoteRecord)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "could not create watcher")
	}
	defer watcher.Close()

	// watch the directory: editors replace files on save, which would
	// drop a watch on the file itself
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return errors.Wrapf(err, "could not watch %v", dir)
	}

	reload := func() {
		records, err := Load(path)
		if err != nil {
			logrus.Warnf("skipping reload of %v: %v", path, err)
			return
		}
		fn(records)
	}

	debounced := debounce.New(100 * time.Millisecond)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				debounced(reload)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return errors.Wrap(err, "watch failed")
		}
	}
}
