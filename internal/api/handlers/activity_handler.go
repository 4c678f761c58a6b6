package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mergington/school-management/internal/models"
	"github.com/mergington/school-management/internal/services"
)

type ActivityHandler struct {
	activityService services.ActivityService
}

func NewActivityHandler(activityService services.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// GetActivities は全アクティビティと参加者メール一覧を返します。
func (h *ActivityHandler) GetActivities(c *gin.Context) {
	activities, err := h.activityService.ListActivities(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, activities)
}

// SignUp は生徒を指定アクティビティに登録します。
func (h *ActivityHandler) SignUp(c *gin.Context) {
	activityName := c.Param("name")

	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	if err := h.activityService.SignUp(c.Request.Context(), activityName, email); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Signed up %s for %s", email, activityName),
	})
}

// Unregister は生徒の登録を指定アクティビティから解除します。
func (h *ActivityHandler) Unregister(c *gin.Context) {
	activityName := c.Param("name")

	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	if err := h.activityService.Unregister(c.Request.Context(), activityName, email); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Unregistered %s from %s", email, activityName),
	})
}

// writeServiceError はサービス層のエラーをHTTPステータスへ対応付けます。
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrActivityNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
	case errors.Is(err, models.ErrAlreadyRegistered):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Student is already signed up"})
	case errors.Is(err, models.ErrNotRegistered):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Student is not signed up for this activity"})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Database timeout"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
