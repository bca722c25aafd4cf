package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cacau/pkg/fazenda/controller"
	"cacau/pkg/fazenda/service"
	"cacau/pkg/record"
	"cacau/pkg/resposta"
	"cacau/pkg/validacao"
)

type fazendaCtrl struct{ s service.FazendaService }

func New(s service.FazendaService) controller.FazendaController { return &fazendaCtrl{s: s} }

func (h *fazendaCtrl) Register(e *echo.Echo) {
	g := e.Group("/fazendas")
	g.GET("", h.list)
	g.POST("", h.create)
	g.DELETE("", h.clear)
	g.GET("/contagem", h.count)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *fazendaCtrl) list(c echo.Context) error {
	ctx := c.Request().Context()
	if cnpj := c.QueryParam("cnpj"); cnpj != "" {
		f, err := h.s.GetByCnpj(ctx, cnpj)
		if err != nil {
			return resposta.Erro(c, err)
		}
		if f == nil {
			return resposta.NaoEncontrado(c)
		}
		return c.JSON(http.StatusOK, f)
	}

	filtro := record.FazendaFiltro{
		Nome:                c.QueryParam("nome"),
		Proprietario:        c.QueryParam("proprietario"),
		EspeciePredominante: c.QueryParam("especiePredominante"),
		SistemaProdutivo:    c.QueryParam("sistemaProdutivo"),
	}
	if len(filtro.Query()) > 0 {
		out, err := h.s.Search(ctx, filtro)
		if err != nil {
			return resposta.Erro(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}

	out, err := h.s.GetAll(ctx)
	if err != nil {
		return resposta.Erro(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *fazendaCtrl) create(c echo.Context) error {
	raw, err := resposta.Corpo(c)
	if err != nil {
		return resposta.BadRequest(c, err.Error())
	}
	f := record.NormalizeFazenda(raw)
	if err := validacao.Err(validacao.Fazenda(f)); err != nil {
		return resposta.Erro(c, err)
	}
	ctx := c.Request().Context()
	id, err := h.s.Create(ctx, f)
	if err != nil {
		return resposta.Erro(c, err)
	}
	stored, err := h.s.GetByID(ctx, id)
	if err != nil || stored == nil {
		f.ID = id
		return c.JSON(http.StatusCreated, f)
	}
	return c.JSON(http.StatusCreated, stored)
}

func (h *fazendaCtrl) get(c echo.Context) error {
	id, err := resposta.ParamID(c, "id")
	if err != nil {
		return resposta.BadRequest(c, err.Error())
	}
	f, err := h.s.GetByID(c.Request().Context(), id)
	if err != nil {
		return resposta.Erro(c, err)
	}
	if f == nil {
		return resposta.NaoEncontrado(c)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *fazendaCtrl) update(c echo.Context) error {
	id, err := resposta.ParamID(c, "id")
	if err != nil {
		return resposta.BadRequest(c, err.Error())
	}
	raw, err := resposta.Corpo(c)
	if err != nil {
		return resposta.BadRequest(c, err.Error())
	}
	ctx := c.Request().Context()
	if _, err := h.s.Update(ctx, id, record.FazendaPatchFrom(raw)); err != nil {
		return resposta.Erro(c, err)
	}
	f, err := h.s.GetByID(ctx, id)
	if err != nil {
		return resposta.Erro(c, err)
	}
	if f == nil {
		return resposta.NaoEncontrado(c)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *fazendaCtrl) delete(c echo.Context) error {
	id, err := resposta.ParamID(c, "id")
	if err != nil {
		return resposta.BadRequest(c, err.Error())
	}
	n, err := h.s.Delete(c.Request().Context(), id)
	if err != nil {
		return resposta.Erro(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": n})
}

func (h *fazendaCtrl) count(c echo.Context) error {
	n, err := h.s.Count(c.Request().Context())
	if err != nil {
		return resposta.Erro(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": n})
}

func (h *fazendaCtrl) clear(c echo.Context) error {
	if err := h.s.Clear(c.Request().Context()); err != nil {
		return resposta.Erro(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
