package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"atelierapi/models"
	"atelierapi/services"

	"github.com/labstack/echo/v4"
)

type FeedbackController struct {
	Notifier services.AdminNotifier
}

func (controller *FeedbackController) FeedbackRoutes(g *echo.Group) {
	g.POST("", controller.SubmitFeedback)
}

// SubmitFeedback relays user feedback to the admin channel. Nothing is
// persisted, this is relay only.
func (controller *FeedbackController) SubmitFeedback(c echo.Context) error {
	var req models.FeedbackIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📝 Design feedback %s", strings.Repeat("⭐", req.Rating))
	if req.Email != nil && *req.Email != "" {
		fmt.Fprintf(&b, "\nFrom: %s", *req.Email)
	}
	if req.Comment != nil && *req.Comment != "" {
		fmt.Fprintf(&b, "\n%s", *req.Comment)
	}
	if controller.Notifier != nil {
		controller.Notifier.Notify(b.String())
	}

	return c.JSON(http.StatusAccepted, echo.Map{"message": "Thanks for the feedback!"})
}
