// Package wizard keeps multi-step form state on the server. Each open
// wizard owns its state; nothing is shared between wizards of the same
// kind.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cacau/pkg/validacao"
)

var ErrPasso = errors.New("passo inválido")

// Flow describes one kind of wizard.
type Flow[S any] struct {
	Nome  string
	Steps int
	// Empty returns the fully defaulted initial state.
	Empty func() S
	// Apply merges submitted form fields into s.
	Apply func(s *S, fields map[string]any)
	// Clone copies s so snapshots do not alias the live state. Optional.
	Clone    func(S) S
	Validate func(s S) []string
	Submit   func(ctx context.Context, s S) (uint, error)
	// ClearOnSubmit resets the state after a successful submission.
	ClearOnSubmit bool
}

func (f *Flow[S]) clone(s S) S {
	if f.Clone == nil {
		return s
	}
	return f.Clone(s)
}

type Snapshot[S any] struct {
	ID     string `json:"id"`
	Fluxo  string `json:"fluxo"`
	Passo  int    `json:"passo"`
	Passos int    `json:"passos"`
	Estado S      `json:"estado"`
}

// Wizard is one in-progress record. Steps are 1-based.
type Wizard[S any] struct {
	mu       sync.Mutex
	id       string
	flow     *Flow[S]
	passo    int
	state    S
	now      func() time.Time
	lastUsed time.Time
}

func newWizard[S any](id string, flow *Flow[S], now func() time.Time) *Wizard[S] {
	return &Wizard[S]{id: id, flow: flow, passo: 1, state: flow.Empty(), now: now, lastUsed: now()}
}

func (w *Wizard[S]) ID() string { return w.id }

func (w *Wizard[S]) touch() { w.lastUsed = w.now() }

func (w *Wizard[S]) idleSince() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastUsed
}

func (w *Wizard[S]) Snapshot() Snapshot[S] {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshot()
}

func (w *Wizard[S]) snapshot() Snapshot[S] {
	return Snapshot[S]{ID: w.id, Fluxo: w.flow.Nome, Passo: w.passo, Passos: w.flow.Steps, Estado: w.flow.clone(w.state)}
}

// Update merges fields into the state without moving.
func (w *Wizard[S]) Update(fields map[string]any) Snapshot[S] {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.flow.Apply(&w.state, fields)
	w.touch()
	return w.snapshot()
}

// Goto moves to passo. Any step may be visited in any order.
func (w *Wizard[S]) Goto(passo int) (Snapshot[S], error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if passo < 1 || passo > w.flow.Steps {
		return w.snapshot(), fmt.Errorf("%w: %d (1..%d)", ErrPasso, passo, w.flow.Steps)
	}
	w.passo = passo
	w.touch()
	return w.snapshot(), nil
}

// Next and Back stop at the first and last step.
func (w *Wizard[S]) Next() Snapshot[S] {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.passo < w.flow.Steps {
		w.passo++
	}
	w.touch()
	return w.snapshot()
}

func (w *Wizard[S]) Back() Snapshot[S] {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.passo > 1 {
		w.passo--
	}
	w.touch()
	return w.snapshot()
}

// Reset restores the initial state and step.
func (w *Wizard[S]) Reset() Snapshot[S] {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset()
	return w.snapshot()
}

func (w *Wizard[S]) reset() {
	w.state = w.flow.Empty()
	w.passo = 1
	w.touch()
}

// Submit validates and hands the accumulated record to the flow. On any
// failure the state is kept as it was.
func (w *Wizard[S]) Submit(ctx context.Context) (uint, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touch()
	if msgs := w.flow.Validate(w.state); len(msgs) > 0 {
		return 0, validacao.Err(msgs)
	}
	id, err := w.flow.Submit(ctx, w.flow.clone(w.state))
	if err != nil {
		return 0, err
	}
	if w.flow.ClearOnSubmit {
		w.reset()
	}
	return id, nil
}
