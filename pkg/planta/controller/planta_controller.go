package controller

import "github.com/labstack/echo/v4"

type PlantaController interface {
	Register(e *echo.Echo)
}
