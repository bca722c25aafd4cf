package relatorio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"cacau/pkg/record"
)

var ErrNaoArray = errors.New("Dados inválidos: deve ser um array de plantas")

// ExportarPlantas writes every plant as indented JSON or as YAML with the
// same keys.
func (s *Servico) ExportarPlantas(ctx context.Context, w io.Writer, formato string) error {
	plantas, err := s.plantas.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("Falha ao exportar dados: %w", err)
	}
	switch formato {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(plantas)
	case "yaml", "yml":
		b, err := json.Marshal(plantas)
		if err != nil {
			return fmt.Errorf("Falha ao exportar dados: %w", err)
		}
		var generic []any
		if err := json.Unmarshal(b, &generic); err != nil {
			return fmt.Errorf("Falha ao exportar dados: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("formato desconhecido %q", formato)
}

// ImportarPlantas reads a JSON array of plants in either shape and
// creates each one. Ids in the input are ignored. It returns how many
// were created before any failure.
func (s *Servico) ImportarPlantas(ctx context.Context, r io.Reader) (int, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return 0, fmt.Errorf("Falha ao importar dados: %w", err)
	}
	items, ok := doc.([]any)
	if !ok {
		return 0, fmt.Errorf("Falha ao importar dados: %w", ErrNaoArray)
	}
	n := 0
	for i, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			return n, fmt.Errorf("Falha ao importar dados: item %d não é um objeto", i)
		}
		p := record.NormalizePlanta(raw)
		p.ID = 0
		if _, err := s.plantas.Create(ctx, p); err != nil {
			return n, fmt.Errorf("Falha ao importar dados: item %d: %w", i, err)
		}
		n++
	}
	return n, nil
}
