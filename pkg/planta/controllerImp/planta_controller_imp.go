package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cacau/pkg/planta/controller"
	"cacau/pkg/planta/service"
	"cacau/pkg/record"
	"cacau/pkg/resposta"
	"cacau/pkg/validacao"
)

type plantaCtrl struct{ s service.PlantaService }

func New(s service.PlantaService) controller.PlantaController { return &plantaCtrl{s: s} }

func (h *plantaCtrl) Register(e *echo.Echo) {
	g := e.Group("/plantas")
	g.GET("", h.list)
	g.POST("", h.create)
	g.DELETE("", h.clear)
	g.GET("/contagem", h.count)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

// list serves ?codigo_individual= lookups (?codigo= also works), filtered
// searches and the full list.
func (h *plantaCtrl) list(c echo.Context) error {
	ctx := c.Request().Context()
	codigo := c.QueryParam("codigo_individual")
	if codigo == "" {
		codigo = c.QueryParam("codigo")
	}
	if codigo != "" {
		p, err := h.s.GetByCodigo(ctx, codigo)
		if err != nil {
			return resposta.Erro(c, err)
		}
		if p == nil {
			return resposta.NaoEncontrado(c)
		}
		return c.JSON(http.StatusOK, p)
	}

	f := record.PlantaFiltro{
		Especie:     c.QueryParam("especie"),
		Situacao:    c.QueryParam("situacao"),
		Lote:        c.QueryParam("lote"),
		Localizacao: c.QueryParam("localizacao"),
		DataInicio:  c.QueryParam("data_plantio_inicio"),
		DataFim:     c.QueryParam("data_plantio_fim"),
	}
	if len(f.Query()) > 0 {
		out, err := h.s.Search(ctx, f)
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

func (h *plantaCtrl) create(c echo.Context) error {
	raw, err := resposta.Corpo(c)
	if err != nil {
		return resposta.BadRequest(c, err.Error())
	}
	p := record.NormalizePlanta(raw)
	if err := validacao.Err(validacao.Planta(p)); err != nil {
		return resposta.Erro(c, err)
	}
	ctx := c.Request().Context()
	id, err := h.s.Create(ctx, p)
	if err != nil {
		return resposta.Erro(c, err)
	}
	stored, err := h.s.GetByID(ctx, id)
	if err != nil || stored == nil {
		p.ID = id
		return c.JSON(http.StatusCreated, p)
	}
	return c.JSON(http.StatusCreated, stored)
}

func (h *plantaCtrl) get(c echo.Context) error {
	id, err := resposta.ParamID(c, "id")
	if err != nil {
		return resposta.BadRequest(c, err.Error())
	}
	p, err := h.s.GetByID(c.Request().Context(), id)
	if err != nil {
		return resposta.Erro(c, err)
	}
	if p == nil {
		return resposta.NaoEncontrado(c)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *plantaCtrl) update(c echo.Context) error {
	id, err := resposta.ParamID(c, "id")
	if err != nil {
		return resposta.BadRequest(c, err.Error())
	}
	raw, err := resposta.Corpo(c)
	if err != nil {
		return resposta.BadRequest(c, err.Error())
	}
	ctx := c.Request().Context()
	if _, err := h.s.Update(ctx, id, record.PlantaPatchFrom(raw)); err != nil {
		return resposta.Erro(c, err)
	}
	p, err := h.s.GetByID(ctx, id)
	if err != nil {
		return resposta.Erro(c, err)
	}
	if p == nil {
		return resposta.NaoEncontrado(c)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *plantaCtrl) delete(c echo.Context) error {
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

func (h *plantaCtrl) count(c echo.Context) error {
	n, err := h.s.Count(c.Request().Context())
	if err != nil {
		return resposta.Erro(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": n})
}

func (h *plantaCtrl) clear(c echo.Context) error {
	if err := h.s.Clear(c.Request().Context()); err != nil {
		return resposta.Erro(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
