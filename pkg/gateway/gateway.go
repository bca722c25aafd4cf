// Package gateway holds what the entity services share: the remote-first
// decision, the fallback warning and the generic local error.
package gateway

import (
	"time"

	"go.uber.org/zap"

	"cacau/pkg/apperr"
	"cacau/pkg/metrics"
	"cacau/pkg/remote"
)

type Base struct {
	// label used in logs and metrics, e.g. "planta"
	Entidade string
	Log      *zap.Logger
	Metrics  *metrics.Gateway
	Now      func() time.Time
}

func NewBase(entidade string, log *zap.Logger, m *metrics.Gateway) Base {
	if log == nil {
		log = zap.NewNop()
	}
	return Base{Entidade: entidade, Log: log.Named(entidade), Metrics: m, Now: time.Now}
}

// Use reports whether the remote answer should be returned. A failed
// attempt is logged with aviso and counted as a fallback; the caller then
// serves the request locally.
func Use[T any](b *Base, op, aviso string, r remote.Result[T]) bool {
	if r.Outcome == remote.Skipped {
		return false
	}
	b.Metrics.Remote(b.Entidade, op, r.Outcome.String())
	if r.Ok() {
		return true
	}
	fields := []zap.Field{zap.String("op", op), zap.Error(r.Err)}
	if title := remote.Title(r.Err); title != "" {
		fields = append(fields, zap.String("pagina", title))
	}
	b.Log.Warn(aviso, fields...)
	b.Metrics.Fallback(b.Entidade, op)
	return false
}

// Mirror logs a failed local copy of a remote answer. Mirroring never fails
// the operation.
func (b *Base) Mirror(op string, err error) {
	if err != nil {
		b.Log.Debug("espelho local falhou", zap.String("op", op), zap.Error(err))
	}
}

// Fail logs the local cause and returns the generic "Falha ao <op> <noun>".
func (b *Base) Fail(op, noun string, err error) error {
	b.Log.Error("Erro ao "+op+" "+noun, zap.Error(err))
	return apperr.Falha(op, noun)
}
