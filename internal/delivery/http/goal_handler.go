package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/macrotrack/backend/internal/domain"
)

// GetUserGoals handles GET /user-goals/:userId. Defaults are created on first read
func (h *Handler) GetUserGoals(c *gin.Context) {
	userID, err := pathUint(c, "userId")
	if err != nil {
		h.respondError(c, err)
		return
	}

	goal, err := h.goals.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

// UpsertUserGoals handles POST /user-goals
func (h *Handler) UpsertUserGoals(c *gin.Context) {
	var goal domain.UserGoal
	if err := bindJSON(c, &goal); err != nil {
		h.respondError(c, err)
		return
	}
	goal.ID = 0

	saved, err := h.goals.Upsert(c.Request.Context(), &goal)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// PatchUserGoals handles PATCH /user-goals/:userId
func (h *Handler) PatchUserGoals(c *gin.Context) {
	userID, err := pathUint(c, "userId")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var patch domain.GoalPatch
	if err := bindJSON(c, &patch); err != nil {
		h.respondError(c, err)
		return
	}

	goal, err := h.goals.Patch(c.Request.Context(), userID, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}
