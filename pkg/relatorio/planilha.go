package relatorio

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"cacau/entities"
)

var (
	cabecalhoPlantas = []any{"ID", "Código", "Espécie", "Tipo da muda", "Altura", "Diâmetro de copa", "Diâmetro de tronco",
		"Lote", "Localização", "Situação", "Data do plantio", "Idade", "Adubo", "Última adubação", "Última inspeção",
		"Produtividade", "Última colheita", "Observações"}
	cabecalhoFazendas     = []any{"ID", "Nome", "CNPJ", "Proprietário", "Área de cultivo", "Espécie predominante", "Sistema produtivo", "Divisão do plantio"}
	cabecalhoFuncionarios = []any{"ID", "Nome", "Usuário", "Email", "CPF", "Celular", "Rua", "Número", "Bairro", "Cidade", "UF", "Fazenda"}
)

// Planilha writes an XLSX workbook with one sheet per collection.
func (s *Servico) Planilha(ctx context.Context, w io.Writer) error {
	var (
		plantas      []entities.Planta
		fazendas     []entities.Fazenda
		funcionarios []entities.Funcionario
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { plantas, err = s.plantas.GetAll(gctx); return })
	g.Go(func() (err error) { fazendas, err = s.fazendas.GetAll(gctx); return })
	g.Go(func() (err error) { funcionarios, err = s.funcionarios.GetAll(gctx); return })
	if err := g.Wait(); err != nil {
		return err
	}

	nomes := make(map[uint]string, len(fazendas))
	for _, f := range fazendas {
		nomes[f.ID] = f.Nome
	}

	x := excelize.NewFile()
	defer x.Close()

	plantaRows := make([][]any, len(plantas))
	for i, p := range plantas {
		v := s.plantaView(p)
		plantaRows[i] = []any{v.ID, v.Codigo, v.Especie, v.TipoMuda, v.Altura, v.DiametroCopa, v.DiametroTronco,
			v.Lote, v.Localizacao, v.Situacao, v.DataPlantio, v.Idade, v.Adubo, v.UltimaAdubacao, v.UltimaInspecao,
			v.Produtividade, v.DataUltimaColheita, v.Observacoes}
	}
	fazendaRows := make([][]any, len(fazendas))
	for i, f := range fazendas {
		v := fazendaView(f)
		fazendaRows[i] = []any{v.ID, v.Nome, v.CNPJ, v.Proprietario, v.AreaCultivo, v.EspeciePredominante, v.SistemaProdutivo, v.DivisaoPlantio}
	}
	funcionarioRows := make([][]any, len(funcionarios))
	for i, f := range funcionarios {
		v := funcionarioView(f)
		if f.FazendaID != nil && nomes[*f.FazendaID] != "" {
			v.Fazenda = nomes[*f.FazendaID]
		}
		e := v.Endereco
		funcionarioRows[i] = []any{v.ID, v.Nome, v.Usuario, v.Email, v.CPF, v.Celular, e.Rua, e.Numero, e.Bairro, e.Cidade, e.UF, v.Fazenda}
	}

	if err := sheet(x, "Plantas", cabecalhoPlantas, plantaRows); err != nil {
		return err
	}
	if err := sheet(x, "Fazendas", cabecalhoFazendas, fazendaRows); err != nil {
		return err
	}
	if err := sheet(x, "Funcionarios", cabecalhoFuncionarios, funcionarioRows); err != nil {
		return err
	}
	if err := x.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	if idx, err := x.GetSheetIndex("Plantas"); err == nil {
		x.SetActiveSheet(idx)
	}
	return x.Write(w)
}

func sheet(x *excelize.File, nome string, cabecalho []any, rows [][]any) error {
	if _, err := x.NewSheet(nome); err != nil {
		return fmt.Errorf("planilha %s: %w", nome, err)
	}
	if err := x.SetSheetRow(nome, "A1", &cabecalho); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := x.SetSheetRow(nome, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
