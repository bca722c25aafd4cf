package controller

import "github.com/labstack/echo/v4"

type RelatorioController interface {
	Register(e *echo.Echo)
}
