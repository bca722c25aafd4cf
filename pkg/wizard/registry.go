package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registry holds the open wizards of one flow, keyed by a random id.
type Registry[S any] struct {
	flow *Flow[S]
	log  *zap.Logger
	now  func() time.Time

	mu   sync.Mutex
	open map[string]*Wizard[S]
}

func NewRegistry[S any](flow Flow[S], log *zap.Logger) *Registry[S] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry[S]{
		flow: &flow,
		log:  log.Named("wizard").With(zap.String("fluxo", flow.Nome)),
		now:  time.Now,
		open: map[string]*Wizard[S]{},
	}
}

func (r *Registry[S]) Flow() *Flow[S] { return r.flow }

func (r *Registry[S]) Open() *Wizard[S] {
	w := newWizard(uuid.NewString(), r.flow, r.now)
	r.mu.Lock()
	r.open[w.id] = w
	r.mu.Unlock()
	r.log.Debug("wizard aberto", zap.String("id", w.id))
	return w
}

func (r *Registry[S]) Get(id string) (*Wizard[S], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.open[id]
	return w, ok
}

// Close disposes the wizard. It reports whether id was open.
func (r *Registry[S]) Close(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.open[id]
	delete(r.open, id)
	return ok
}

func (r *Registry[S]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.open)
}

// Sweep closes wizards idle for longer than ttl and returns how many.
func (r *Registry[S]) Sweep(ttl time.Duration) int {
	limite := r.now().Add(-ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, w := range r.open {
		if w.idleSince().Before(limite) {
			delete(r.open, id)
			n++
		}
	}
	return n
}

// Janitor sweeps every interval until ctx is done.
func (r *Registry[S]) Janitor(ctx context.Context, every, ttl time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.Sweep(ttl); n > 0 {
				r.log.Info("wizards expirados", zap.Int("n", n))
			}
		}
	}
}
