package controller

import "github.com/labstack/echo/v4"

type FuncionarioController interface {
	Register(e *echo.Echo)
}
