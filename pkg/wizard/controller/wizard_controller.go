package controller

import "github.com/labstack/echo/v4"

type WizardController interface {
	Register(e *echo.Echo)
}
