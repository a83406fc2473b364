package base

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/caffeine-storm/isoroom/logging"
	"github.com/fsnotify/fsnotify"
)

// Writes to the same file within this window are reported once.
const watchDebounce = 100 * time.Millisecond

// A DirWatcher reports changes to files with a given suffix inside a set of
// directories. Names of changed files are sent on Events.
type DirWatcher struct {
	watcher *fsnotify.Watcher
	suffix  string
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func WatchDirs(suffix string, dirs ...string) (*DirWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	dw := &DirWatcher{
		watcher: w,
		suffix:  strings.ToLower(suffix),
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go dw.run()
	return dw, nil
}

func (dw *DirWatcher) Close() error {
	var err error
	dw.once.Do(func() {
		close(dw.closeCh)
		err = dw.watcher.Close()
		<-dw.done
		close(dw.Events)
		close(dw.Errors)
	})
	return err
}

func (dw *DirWatcher) run() {
	defer close(dw.done)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !strings.HasSuffix(strings.ToLower(filepath.Base(event.Name)), dw.suffix) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < watchDebounce {
				continue
			}
			last[event.Name] = now
			logging.Debug("DirWatcher", "event", event.Op.String(), "name", event.Name)
			select {
			case dw.Events <- event.Name:
			case <-dw.closeCh:
				return
			}
		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			select {
			case dw.Errors <- err:
			default:
				logging.Warn("DirWatcher dropped error", "err", err)
			}
		case <-dw.closeCh:
			return
		}
	}
}
