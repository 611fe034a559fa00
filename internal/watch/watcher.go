// Package watch observes a git repository's reference state and triggers
// changelog regeneration when tags or branches move. It uses fsnotify for
// efficient change detection and debounces event bursts, since a single
// git operation touches several files under .git.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last event
// before firing.
const DefaultDebounce = 500 * time.Millisecond

// Watcher triggers a callback when the repository's refs change.
type Watcher struct {
	gitDir   string
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period required before firing.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// New creates a Watcher over the given .git directory. The refs
// directories are registered individually because fsnotify watches are
// not recursive.
func New(gitDir string, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &Watcher{
		gitDir:   gitDir,
		debounce: DefaultDebounce,
		watcher:  fsw,
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, dir := range []string{
		gitDir,
		filepath.Join(gitDir, "refs"),
		filepath.Join(gitDir, "refs", "tags"),
		filepath.Join(gitDir, "refs", "heads"),
	} {
		if _, statErr := os.Stat(dir); statErr != nil {
			continue
		}
		if addErr := fsw.Add(dir); addErr != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, addErr)
		}
	}

	return w, nil
}

// Run blocks, invoking onChange after each debounced burst of ref
// changes. It returns nil when the context is cancelled, or the first
// error from onChange or the underlying watcher.
func (w *Watcher) Run(ctx context.Context, onChange func() error) error {
	defer w.watcher.Close()

	var timerC <-chan time.Time
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			// An expired-but-undrained timer would deliver a stale tick
			// right after Reset, firing before the quiet period elapses.
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
			timerC = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching repository: %w", err)

		case <-timerC:
			timerC = nil
			if err := onChange(); err != nil {
				return err
			}
		}
	}
}

// relevant filters events down to reference movement: loose refs,
// packed-refs rewrites and HEAD updates.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	base := filepath.Base(ev.Name)
	if base == "packed-refs" || base == "HEAD" {
		return true
	}
	return strings.Contains(ev.Name, string(filepath.Separator)+"refs"+string(filepath.Separator)) ||
		base == "refs"
}
