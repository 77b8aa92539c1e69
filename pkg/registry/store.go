package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/cpritcha/meillionen/pkg/call"
	"github.com/cpritcha/meillionen/pkg/iface"
)

// ErrModuleNotFound reports a lookup or dispatch against a module name
// nobody published.
var ErrModuleNotFound = errors.New("registry: module not found")

// Store keeps published module interfaces by name. Readers work on an
// immutable snapshot that writers replace atomically, so Lookup and
// Dispatch never block behind a publisher; a reader mid-dispatch keeps
// the snapshot it started with.
type Store struct {
	mu   sync.Mutex // serializes writers
	snap atomic.Pointer[map[string]*iface.ModuleInterface]

	publishes  atomic.Uint64
	removals   atomic.Uint64
	lookups    atomic.Uint64
	misses     atomic.Uint64
	dispatches atomic.Uint64
}

func NewStore() *Store {
	s := &Store{}
	empty := make(map[string]*iface.ModuleInterface)
	s.snap.Store(&empty)
	return s
}

func (s *Store) snapshot() map[string]*iface.ModuleInterface { return *s.snap.Load() }

// Publish registers a module interface under name, replacing any
// earlier version. Names are whitespace-trimmed here and on every
// other store operation, so one key reaches the same entry throughout.
func (s *Store) Publish(name string, m *iface.ModuleInterface) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("registry: missing module name")
	}
	if m == nil {
		return fmt.Errorf("registry: nil module interface for %s", name)
	}
	s.mu.Lock()
	next := mapCopy(s.snapshot())
	next[name] = m
	s.snap.Store(&next)
	s.mu.Unlock()
	s.publishes.Add(1)
	zap.L().Info("module published", zap.String("module", name), zap.Int("classes", len(m.Classes())))
	return nil
}

// Remove drops a module. Returns false when the name was not present.
func (s *Store) Remove(name string) bool {
	name = strings.TrimSpace(name)
	s.mu.Lock()
	cur := s.snapshot()
	if _, ok := cur[name]; !ok {
		s.mu.Unlock()
		return false
	}
	next := mapCopy(cur)
	delete(next, name)
	s.snap.Store(&next)
	s.mu.Unlock()
	s.removals.Add(1)
	zap.L().Info("module removed", zap.String("module", name))
	return true
}

// Lookup returns the published module interface for name.
func (s *Store) Lookup(name string) (*iface.ModuleInterface, error) {
	name = strings.TrimSpace(name)
	s.lookups.Add(1)
	m, ok := s.snapshot()[name]
	if !ok {
		s.misses.Add(1)
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, name)
	}
	return m, nil
}

// Names lists published module names in sorted order.
func (s *Store) Names() []string {
	cur := s.snapshot()
	names := make([]string, 0, len(cur))
	for name := range cur {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch routes a request to a published module's method.
func (s *Store) Dispatch(ctx context.Context, module string, req *call.Request) (any, error) {
	m, err := s.Lookup(module)
	if err != nil {
		return nil, err
	}
	s.dispatches.Add(1)
	return m.Dispatch(ctx, req)
}

// Metrics is a point-in-time snapshot of store counters.
type Metrics struct {
	Publishes  uint64
	Removals   uint64
	Lookups    uint64
	Misses     uint64
	Dispatches uint64
}

func (s *Store) Metrics() Metrics {
	return Metrics{
		Publishes:  s.publishes.Load(),
		Removals:   s.removals.Load(),
		Lookups:    s.lookups.Load(),
		Misses:     s.misses.Load(),
		Dispatches: s.dispatches.Load(),
	}
}

// ---------- helpers ----------

func mapCopy[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
