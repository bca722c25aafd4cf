package record

import "time"

// Opt marks a value as explicitly provided.
type Opt[T any] struct {
	Set bool
	Val T
}

func Some[T any](v T) Opt[T] { return Opt[T]{Set: true, Val: v} }

// campo binds one canonical field of T to its input keys. secao is empty
// for top-level fields. flat lists the keys read from flat input; it
// defaults to chave.
type campo[T any] struct {
	secao  string
	chave  string
	flat   []string
	coerce func(any) any
	set    func(*T, any)
}

func (c campo[T]) flatKeys() []string {
	if len(c.flat) == 0 {
		return []string{c.chave}
	}
	return c.flat
}

func texto[T any](secao, chave string, dst func(*T) *string, flat ...string) campo[T] {
	return campo[T]{
		secao:  secao,
		chave:  chave,
		flat:   flat,
		coerce: func(v any) any { return asString(v) },
		set:    func(t *T, v any) { *dst(t) = v.(string) },
	}
}

func textoOpcional[T any](secao, chave string, dst func(*T) **string) campo[T] {
	return campo[T]{
		secao:  secao,
		chave:  chave,
		coerce: func(v any) any { return asOptionalString(v) },
		set:    func(t *T, v any) { *dst(t) = v.(*string) },
	}
}

func numero[T any](secao, chave string, dst func(*T) **float64) campo[T] {
	return campo[T]{
		secao:  secao,
		chave:  chave,
		coerce: func(v any) any { return ParseNumber(v) },
		set:    func(t *T, v any) { *dst(t) = v.(*float64) },
	}
}

func logico[T any](secao, chave string, dst func(*T) *bool) campo[T] {
	return campo[T]{
		secao:  secao,
		chave:  chave,
		coerce: func(v any) any { return asBool(v) },
		set:    func(t *T, v any) { *dst(t) = v.(bool) },
	}
}

func lista[T any](secao, chave string, dst func(*T) *[]string) campo[T] {
	return campo[T]{
		secao:  secao,
		chave:  chave,
		coerce: func(v any) any { return asStrings(v) },
		set:    func(t *T, v any) { *dst(t) = asStrings(v) },
	}
}

func referencia[T any](secao, chave string, dst func(*T) **uint) campo[T] {
	return campo[T]{
		secao:  secao,
		chave:  chave,
		coerce: func(v any) any { return asOptionalID(v) },
		set:    func(t *T, v any) { *dst(t) = v.(*uint) },
	}
}

// tabela describes how raw input of both shapes maps onto T.
type tabela[T any] struct {
	campos  []campo[T]
	vazio   func() T
	sistema func(t *T, id uint, criado, atualizado time.Time)
}

func (tb tabela[T]) lookup(raw map[string]any, shape Shape, c campo[T]) (any, bool) {
	if c.secao == "" {
		v, ok := raw[c.chave]
		return v, ok
	}
	if shape == ShapeFlat {
		for _, k := range c.flatKeys() {
			if v, ok := raw[k]; ok {
				return v, true
			}
		}
		return nil, false
	}
	sec, ok := raw[c.secao].(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := sec[c.chave]
	return v, ok
}

func (tb tabela[T]) normalize(raw map[string]any, shape Shape) T {
	out := tb.vazio()
	for _, c := range tb.campos {
		if v, ok := tb.lookup(raw, shape, c); ok {
			c.set(&out, c.coerce(v))
		}
	}
	id, ok := asID(raw["id"])
	if !ok {
		id, _ = asID(raw["_id"])
	}
	tb.sistema(&out, id, asTime(raw["createdAt"]), asTime(raw["updatedAt"]))
	return out
}

func (tb tabela[T]) patch(raw map[string]any, shape Shape) Patch[T] {
	p := Patch[T]{tabela: &tb}
	for i, c := range tb.campos {
		if v, ok := tb.lookup(raw, shape, c); ok {
			p.valores = append(p.valores, valor{campo: i, v: c.coerce(v)})
		}
	}
	if v, ok := raw["updatedAt"]; ok {
		if t := asTime(v); !t.IsZero() {
			p.UpdatedAt = Some(t)
		}
	}
	return p
}

type valor struct {
	campo int
	v     any
}

// Patch is a partial update: only the fields present in the input.
type Patch[T any] struct {
	tabela    *tabela[T]
	valores   []valor
	UpdatedAt Opt[time.Time]
}

// Empty reports whether the patch sets no field.
func (p Patch[T]) Empty() bool { return len(p.valores) == 0 && !p.UpdatedAt.Set }

// Apply writes the present fields into t. Timestamps are left alone.
func (p Patch[T]) Apply(t *T) {
	for _, v := range p.valores {
		p.tabela.campos[v.campo].set(t, v.v)
	}
}

// Lookup returns the coerced value of one field when present.
func (p Patch[T]) Lookup(secao, chave string) (any, bool) {
	for _, v := range p.valores {
		c := p.tabela.campos[v.campo]
		if c.secao == secao && c.chave == chave {
			return v.v, true
		}
	}
	return nil, false
}

// Replace swaps the value of a present field. It is a no-op when the field
// is absent.
func (p Patch[T]) Replace(secao, chave string, v any) {
	for i := range p.valores {
		c := p.tabela.campos[p.valores[i].campo]
		if c.secao == secao && c.chave == chave {
			p.valores[i].v = c.coerce(v)
		}
	}
}

// Body renders the normalized partial record sent on remote updates.
func (p Patch[T]) Body() map[string]any {
	body := map[string]any{}
	for _, v := range p.valores {
		c := p.tabela.campos[v.campo]
		if c.secao == "" {
			body[c.chave] = v.v
			continue
		}
		sec, ok := body[c.secao].(map[string]any)
		if !ok {
			sec = map[string]any{}
			body[c.secao] = sec
		}
		sec[c.chave] = v.v
	}
	if p.UpdatedAt.Set {
		body["updatedAt"] = p.UpdatedAt.Val
	}
	return body
}
