package stub

import (
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/pubfindco/pubfind/pkg/search"
)

// fixtureFile is the on-disk shape of a record fixture set.
type fixtureFile struct {
	Records []map[string]any `toml:"records"`
}

// FixtureStore holds the records the stub serves, loaded from a TOML file.
// The store can watch its file and hot-reload on change, so fixtures can be
// edited while a demo session is running.
type FixtureStore struct {
	path   string
	logger *zap.Logger

	mu      sync.RWMutex
	records []search.Record

	watcher   *fsnotify.Watcher
	done      chan struct{}
	closeOnce sync.Once
}

// NewFixtureStore loads records from the given TOML file.
func NewFixtureStore(path string, logger *zap.Logger) (*FixtureStore, error) {
	s := &FixtureStore{
		path:   path,
		logger: logger,
		done:   make(chan struct{}),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FixtureStore) load() error {
	var f fixtureFile
	if _, err := toml.DecodeFile(s.path, &f); err != nil {
		return fmt.Errorf("load fixtures %s: %w", s.path, err)
	}

	records := make([]search.Record, len(f.Records))
	for i, r := range f.Records {
		records[i] = search.Record(r)
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	s.logger.Info("fixtures loaded",
		zap.String("path", s.path),
		zap.Int("records", len(records)),
	)
	return nil
}

// Match returns the records whose name matches the query, case-insensitively
// in either direction. Unnamed records never match.
func (s *FixtureStore) Match(query string) []search.Record {
	q := strings.ToLower(strings.TrimSpace(query))

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []search.Record
	for _, r := range s.records {
		name, ok := r.Attr(search.AttrName)
		if !ok {
			continue
		}
		n := strings.ToLower(name)
		if strings.Contains(q, n) || strings.Contains(n, q) {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of loaded records.
func (s *FixtureStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Watch reloads the fixture file whenever it changes. It returns after the
// watch is established; reloads happen in the background until Close.
func (s *FixtureStore) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(s.path); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", s.path, err)
	}
	s.watcher = watcher

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
					if err := s.load(); err != nil {
						s.logger.Warn("fixture reload failed", zap.Error(err))
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("fixture watcher error", zap.Error(err))
			case <-s.done:
				return
			}
		}
	}()

	return nil
}

// Close stops the watcher, if any. Safe to call more than once.
func (s *FixtureStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}
