package remote

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Resource is one collection of the remote API (/plantas, /fazendas,
// /funcionarios). Responses are decoded through adapt, so either record
// shape the server sends ends up canonical.
type Resource[T any] struct {
	c     *Client
	path  string
	adapt func(map[string]any) T
}

func For[T any](c *Client, path string, adapt func(map[string]any) T) Resource[T] {
	return Resource[T]{c: c, path: path, adapt: adapt}
}

func (r Resource[T]) Enabled() bool { return r.c.Enabled() }

func (r Resource[T]) Create(ctx context.Context, body any) Result[T] {
	if !r.Enabled() {
		return skipped[T]()
	}
	out, err := r.c.do(ctx, http.MethodPost, r.path, nil, body)
	if err != nil {
		return failed[T](err)
	}
	return r.one(out, false)
}

// List fetches the collection, filtered by query when given.
func (r Resource[T]) List(ctx context.Context, query map[string]string) Result[[]T] {
	if !r.Enabled() {
		return skipped[[]T]()
	}
	out, err := r.c.do(ctx, http.MethodGet, r.path, query, nil)
	if err != nil {
		return failed[[]T](err)
	}
	items, ok := out.([]any)
	if !ok {
		return failed[[]T](fmt.Errorf("%s: esperado array, recebido %T", r.path, out))
	}
	list := make([]T, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		list = append(list, r.adapt(m))
	}
	return succeeded(list)
}

// Find is a lookup by query parameter. The API may answer with an array or
// a single object; the first record accepted by match wins and nil means
// no match. A nil match accepts anything.
func (r Resource[T]) Find(ctx context.Context, query map[string]string, match func(T) bool) Result[*T] {
	if !r.Enabled() {
		return skipped[*T]()
	}
	out, err := r.c.do(ctx, http.MethodGet, r.path, query, nil)
	if err != nil {
		return failed[*T](err)
	}
	var items []any
	switch v := out.(type) {
	case []any:
		items = v
	case map[string]any:
		items = []any{v}
	}
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		rec := r.adapt(m)
		if match == nil || match(rec) {
			return succeeded(&rec)
		}
	}
	return succeeded[*T](nil)
}

func (r Resource[T]) Get(ctx context.Context, id uint) Result[T] {
	if !r.Enabled() {
		return skipped[T]()
	}
	out, err := r.c.do(ctx, http.MethodGet, r.item(id), nil, nil)
	if err != nil {
		return failed[T](err)
	}
	return r.one(out, true)
}

func (r Resource[T]) Update(ctx context.Context, id uint, body any) Result[T] {
	if !r.Enabled() {
		return skipped[T]()
	}
	out, err := r.c.do(ctx, http.MethodPut, r.item(id), nil, body)
	if err != nil {
		return failed[T](err)
	}
	return r.one(out, true)
}

func (r Resource[T]) Delete(ctx context.Context, id uint) Result[struct{}] {
	if !r.Enabled() {
		return skipped[struct{}]()
	}
	if _, err := r.c.do(ctx, http.MethodDelete, r.item(id), nil, nil); err != nil {
		return failed[struct{}](err)
	}
	return succeeded(struct{}{})
}

func (r Resource[T]) item(id uint) string { return fmt.Sprintf("%s/%d", r.path, id) }

// one decodes a single record. Get and Update answers must carry the id,
// otherwise the body is not a record (e.g. {"updated": 1}).
func (r Resource[T]) one(out any, needID bool) Result[T] {
	m, ok := out.(map[string]any)
	if !ok {
		return failed[T](fmt.Errorf("%s: esperado objeto, recebido %T", r.path, out))
	}
	if needID && !hasID(m) {
		return failed[T](fmt.Errorf("%s: resposta sem id", r.path))
	}
	return succeeded(r.adapt(m))
}

func hasID(m map[string]any) bool {
	switch v := m["id"].(type) {
	case float64:
		return v > 0
	case string:
		return strings.TrimSpace(v) != ""
	}
	return false
}
