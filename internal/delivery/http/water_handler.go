package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/macrotrack/backend/internal/domain"
)

// GetWaterIntake handles GET /water-intake?userId&date.
// A day with no record reports the default without saving it
func (h *Handler) GetWaterIntake(c *gin.Context) {
	userID, err := optionalQueryUint(c, "userId")
	if err != nil {
		h.respondError(c, err)
		return
	}

	intake, err := h.water.Get(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, intake)
}

// UpsertWaterIntake handles POST /water-intake
func (h *Handler) UpsertWaterIntake(c *gin.Context) {
	var req domain.WaterUpsert
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	intake, err := h.water.Upsert(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, intake)
}

// PatchWaterIntake handles PATCH /water-intake/:id
func (h *Handler) PatchWaterIntake(c *gin.Context) {
	id, err := pathUint(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var patch domain.WaterPatch
	if err := bindJSON(c, &patch); err != nil {
		h.respondError(c, err)
		return
	}

	intake, err := h.water.Patch(c.Request.Context(), id, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, intake)
}
