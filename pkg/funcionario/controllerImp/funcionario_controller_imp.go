package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cacau/entities"
	"cacau/pkg/funcionario/controller"
	"cacau/pkg/funcionario/service"
	"cacau/pkg/record"
	"cacau/pkg/resposta"
	"cacau/pkg/validacao"
)

type funcionarioCtrl struct{ s service.FuncionarioService }

func New(s service.FuncionarioService) controller.FuncionarioController {
	return &funcionarioCtrl{s: s}
}

func (h *funcionarioCtrl) Register(e *echo.Echo) {
	g := e.Group("/funcionarios")
	g.GET("", h.list)
	g.POST("", h.create)
	g.DELETE("", h.clear)
	g.GET("/contagem", h.count)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

// publico hides the password hash from responses.
func publico(f entities.Funcionario) entities.Funcionario {
	f.Senha = ""
	return f
}

func publicos(fs []entities.Funcionario) []entities.Funcionario {
	out := make([]entities.Funcionario, len(fs))
	for i, f := range fs {
		out[i] = publico(f)
	}
	return out
}

func (h *funcionarioCtrl) one(c echo.Context, f *entities.Funcionario, err error) error {
	if err != nil {
		return resposta.Erro(c, err)
	}
	if f == nil {
		return resposta.NaoEncontrado(c)
	}
	return c.JSON(http.StatusOK, publico(*f))
}

func (h *funcionarioCtrl) many(c echo.Context, fs []entities.Funcionario, err error) error {
	if err != nil {
		return resposta.Erro(c, err)
	}
	return c.JSON(http.StatusOK, publicos(fs))
}

func (h *funcionarioCtrl) list(c echo.Context) error {
	ctx := c.Request().Context()
	if cpf := c.QueryParam("cpf"); cpf != "" {
		f, err := h.s.GetByCpf(ctx, cpf)
		return h.one(c, f, err)
	}

	filtro := record.FuncionarioFiltro{
		Nome:    c.QueryParam("nome"),
		Usuario: c.QueryParam("usuario"),
		Email:   c.QueryParam("email"),
		Cidade:  c.QueryParam("cidade"),
	}
	if v := c.QueryParam("fazenda_id"); v != "" {
		id, err := resposta.ParamValue(v)
		if err != nil {
			return resposta.BadRequest(c, "invalid fazenda_id")
		}
		if len(filtro.Query()) == 0 {
			fs, err := h.s.GetByFazenda(ctx, id)
			return h.many(c, fs, err)
		}
		filtro.FazendaID = &id
	}
	if len(filtro.Query()) > 0 {
		fs, err := h.s.Search(ctx, filtro)
		return h.many(c, fs, err)
	}
	fs, err := h.s.GetAll(ctx)
	return h.many(c, fs, err)
}

// create accepts the optional confirmarSenha field of the form.
func (h *funcionarioCtrl) create(c echo.Context) error {
	raw, err := resposta.Corpo(c)
	if err != nil {
		return resposta.BadRequest(c, err.Error())
	}
	f := record.NormalizeFuncionario(raw)
	confirmar, _ := raw["confirmarSenha"].(string)
	if err := validacao.Err(validacao.Funcionario(f, confirmar)); err != nil {
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
		return c.JSON(http.StatusCreated, publico(f))
	}
	return c.JSON(http.StatusCreated, publico(*stored))
}

func (h *funcionarioCtrl) get(c echo.Context) error {
	id, err := resposta.ParamID(c, "id")
	if err != nil {
		return resposta.BadRequest(c, err.Error())
	}
	f, err := h.s.GetByID(c.Request().Context(), id)
	return h.one(c, f, err)
}

func (h *funcionarioCtrl) update(c echo.Context) error {
	id, err := resposta.ParamID(c, "id")
	if err != nil {
		return resposta.BadRequest(c, err.Error())
	}
	raw, err := resposta.Corpo(c)
	if err != nil {
		return resposta.BadRequest(c, err.Error())
	}
	ctx := c.Request().Context()
	if _, err := h.s.Update(ctx, id, record.FuncionarioPatchFrom(raw)); err != nil {
		return resposta.Erro(c, err)
	}
	f, err := h.s.GetByID(ctx, id)
	return h.one(c, f, err)
}

func (h *funcionarioCtrl) delete(c echo.Context) error {
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

func (h *funcionarioCtrl) count(c echo.Context) error {
	n, err := h.s.Count(c.Request().Context())
	if err != nil {
		return resposta.Erro(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": n})
}

func (h *funcionarioCtrl) clear(c echo.Context) error {
	if err := h.s.Clear(c.Request().Context()); err != nil {
		return resposta.Erro(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
