// Package resposta holds the request and response helpers shared by the
// HTTP controllers.
package resposta

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cacau/pkg/apperr"
	"cacau/pkg/validacao"
)

// Erro maps err to a JSON error response: validation 422, not found 404,
// anything else 500.
func Erro(c echo.Context, err error) error {
	var ve *validacao.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "dados inválidos", "errors": ve.Erros})
	case apperr.IsNotFound(err):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}

func NaoEncontrado(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{"error": "registro não encontrado"})
}

func BadRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

// Corpo decodes the request body as a JSON object. Numbers keep their
// literal text so the normalizer decides how to read them.
func Corpo(c echo.Context) (map[string]any, error) {
	dec := json.NewDecoder(c.Request().Body)
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

func ParamID(c echo.Context, name string) (uint, error) {
	id, err := ParamValue(c.Param(name))
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

func ParamValue(s string) (uint, error) {
	n, err := parseUint(s)
	return uint(n), err
}

func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
