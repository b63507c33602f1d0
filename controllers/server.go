package controllers

import (
	"net/http"

	"atelierapi/models"
	"atelierapi/services"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		// Optionally, you could return the error to give each route more control over the status code
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func SetupServer(
	generationService services.GenerationServiceProvider,
	notifier services.AdminNotifier,
) *echo.Echo {

	e := echo.New()
	v := validator.New()
	v.RegisterValidation("colortoken", models.ValidateColorToken)
	e.Validator = &CustomValidator{validator: v}

	e.Use(RequestIDMiddleware)
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	designsController := DesignsController{Generation: generationService}
	designsGroup := e.Group("/api/designs")
	designsController.DesignRoutes(designsGroup)

	feedbackController := FeedbackController{Notifier: notifier}
	feedbackGroup := e.Group("/api/feedback")
	feedbackController.FeedbackRoutes(feedbackGroup)

	return e
}
