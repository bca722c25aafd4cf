package controller

import "github.com/labstack/echo/v4"

type FazendaController interface {
	Register(e *echo.Echo)
}
