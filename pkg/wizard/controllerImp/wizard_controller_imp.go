package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cacau/pkg/resposta"
	"cacau/pkg/wizard"
	"cacau/pkg/wizard/controller"
)

type wizardCtrl[S any] struct {
	prefix string
	reg    *wizard.Registry[S]
}

// New serves the wizards of reg under prefix, e.g. "/wizard/plantas".
func New[S any](prefix string, reg *wizard.Registry[S]) controller.WizardController {
	return &wizardCtrl[S]{prefix: prefix, reg: reg}
}

func (h *wizardCtrl[S]) Register(e *echo.Echo) {
	g := e.Group(h.prefix)
	g.POST("", h.open)
	g.GET("/:sid", h.get)
	g.PATCH("/:sid/passo/:n", h.passo)
	g.POST("/:sid/concluir", h.submit)
	g.POST("/:sid/limpar", h.reset)
	g.DELETE("/:sid", h.close)
}

func (h *wizardCtrl[S]) lookup(c echo.Context) (*wizard.Wizard[S], error) {
	w, ok := h.reg.Get(c.Param("sid"))
	if !ok {
		return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "wizard não encontrado"})
	}
	return w, nil
}

func (h *wizardCtrl[S]) open(c echo.Context) error {
	return c.JSON(http.StatusCreated, h.reg.Open().Snapshot())
}

func (h *wizardCtrl[S]) get(c echo.Context) error {
	w, err := h.lookup(c)
	if w == nil {
		return err
	}
	return c.JSON(http.StatusOK, w.Snapshot())
}

// passo merges the submitted fields and then moves to step n. An empty
// body only moves.
func (h *wizardCtrl[S]) passo(c echo.Context) error {
	w, err := h.lookup(c)
	if w == nil {
		return err
	}
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil {
		return resposta.BadRequest(c, "invalid passo")
	}
	if c.Request().ContentLength != 0 {
		fields, err := resposta.Corpo(c)
		if err != nil {
			return resposta.BadRequest(c, err.Error())
		}
		w.Update(fields)
	}
	snap, err := w.Goto(n)
	if errors.Is(err, wizard.ErrPasso) {
		return resposta.BadRequest(c, err.Error())
	}
	return c.JSON(http.StatusOK, snap)
}

func (h *wizardCtrl[S]) submit(c echo.Context) error {
	w, err := h.lookup(c)
	if w == nil {
		return err
	}
	id, err := w.Submit(c.Request().Context())
	if err != nil {
		return resposta.Erro(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "wizard": w.Snapshot()})
}

func (h *wizardCtrl[S]) reset(c echo.Context) error {
	w, err := h.lookup(c)
	if w == nil {
		return err
	}
	return c.JSON(http.StatusOK, w.Reset())
}

func (h *wizardCtrl[S]) close(c echo.Context) error {
	if !h.reg.Close(c.Param("sid")) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "wizard não encontrado"})
	}
	return c.NoContent(http.StatusNoContent)
}
