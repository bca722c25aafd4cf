package controllerImp

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"cacau/pkg/relatorio"
	"cacau/pkg/relatorio/controller"
	"cacau/pkg/resposta"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type relatorioCtrl struct{ s *relatorio.Servico }

func New(s *relatorio.Servico) controller.RelatorioController { return &relatorioCtrl{s: s} }

func (h *relatorioCtrl) Register(e *echo.Echo) {
	g := e.Group("/relatorios")
	g.GET("/resumo", h.resumo)
	g.GET("/plantas/:codigo", h.planta)
	g.GET("/fazendas", h.fazenda)
	g.GET("/funcionarios/:cpf", h.funcionario)
	g.GET("/planilha.xlsx", h.planilha)
}

func (h *relatorioCtrl) resumo(c echo.Context) error {
	r, err := h.s.Resumo(c.Request().Context())
	if err != nil {
		return resposta.Erro(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *relatorioCtrl) planta(c echo.Context) error {
	r, err := h.s.Planta(c.Request().Context(), c.Param("codigo"))
	if err != nil {
		return resposta.Erro(c, err)
	}
	if r == nil {
		return resposta.NaoEncontrado(c)
	}
	return c.JSON(http.StatusOK, r)
}

// fazenda takes ?cnpj= since a formatted CNPJ carries a slash.
func (h *relatorioCtrl) fazenda(c echo.Context) error {
	cnpj := c.QueryParam("cnpj")
	if cnpj == "" {
		return resposta.BadRequest(c, "cnpj is required")
	}
	r, err := h.s.Fazenda(c.Request().Context(), cnpj)
	if err != nil {
		return resposta.Erro(c, err)
	}
	if r == nil {
		return resposta.NaoEncontrado(c)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *relatorioCtrl) funcionario(c echo.Context) error {
	r, err := h.s.Funcionario(c.Request().Context(), c.Param("cpf"))
	if err != nil {
		return resposta.Erro(c, err)
	}
	if r == nil {
		return resposta.NaoEncontrado(c)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *relatorioCtrl) planilha(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.s.Planilha(c.Request().Context(), &buf); err != nil {
		return resposta.Erro(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="cacau.xlsx"`)
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}
