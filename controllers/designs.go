package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"atelierapi/models"
	"atelierapi/services"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
)

type DesignCreatedResponse struct {
	Design models.GenerationResult `json:"design"`
}

type DesignsController struct {
	Generation services.GenerationServiceProvider
}

func (controller *DesignsController) DesignRoutes(g *echo.Group) {
	g.POST("", controller.CreateDesign)
	g.GET("/options", controller.ListOptions)
}

// CreateDesign never answers 5xx for provider trouble: the orchestrator
// resolves those to a placeholder result. 400 only for a bad payload.
func (controller *DesignsController) CreateDesign(c echo.Context) error {
	var req models.DesignRequestIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	// Validation happens in the PreferenceSet factory, the single boundary
	// for design input.
	result, err := controller.Generation.GenerateDesign(c.Request().Context(), req)
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			return c.JSON(http.StatusBadRequest, validationErr)
		}
		fmt.Printf("[Request %v] Unexpected generation error: %v\n", c.Get("__requestid"), err)
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong, please try again"})
	}

	return c.JSON(http.StatusOK, DesignCreatedResponse{Design: *result})
}

func (controller *DesignsController) ListOptions(c echo.Context) error {
	return c.JSON(http.StatusOK, models.DesignOptionsCatalog())
}
