package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/macrotrack/backend/internal/domain"
)

// ListIndianFoods handles GET /indian-foods
func (h *Handler) ListIndianFoods(c *gin.Context) {
	foods, err := h.catalog.ListCurated(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, foods)
}

// SearchIndianFoods handles GET /indian-foods/search?query
func (h *Handler) SearchIndianFoods(c *gin.Context) {
	foods, err := h.catalog.SearchCurated(c.Request.Context(), c.Query("query"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, foods)
}

// GetIndianFood handles GET /indian-foods/:id
func (h *Handler) GetIndianFood(c *gin.Context) {
	id, err := pathUint(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	food, err := h.catalog.GetCurated(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

// CreateIndianFood handles POST /indian-foods
func (h *Handler) CreateIndianFood(c *gin.Context) {
	var food domain.CuratedFood
	if err := bindJSON(c, &food); err != nil {
		h.respondError(c, err)
		return
	}
	food.ID = 0

	created, err := h.catalog.CreateCurated(c.Request.Context(), &food)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// CreateIndianFoodBatch handles POST /indian-foods/batch. Either every food
// is stored or none is
func (h *Handler) CreateIndianFoodBatch(c *gin.Context) {
	var foods []domain.CuratedFood
	if err := bindJSON(c, &foods); err != nil {
		h.respondError(c, err)
		return
	}
	for i := range foods {
		foods[i].ID = 0
	}

	created, err := h.catalog.CreateCuratedBatch(c.Request.Context(), foods)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListCustomFoods handles GET /custom-foods?userId
func (h *Handler) ListCustomFoods(c *gin.Context) {
	userID, err := queryUint(c, "userId")
	if err != nil {
		h.respondError(c, err)
		return
	}

	foods, err := h.catalog.ListCustom(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, foods)
}

// SearchCustomFoods handles GET /custom-foods/search?userId&query
func (h *Handler) SearchCustomFoods(c *gin.Context) {
	userID, err := queryUint(c, "userId")
	if err != nil {
		h.respondError(c, err)
		return
	}

	foods, err := h.catalog.SearchCustom(c.Request.Context(), userID, c.Query("query"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, foods)
}

// GetCustomFood handles GET /custom-foods/:id?userId
func (h *Handler) GetCustomFood(c *gin.Context) {
	id, err := pathUint(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	userID, err := queryUint(c, "userId")
	if err != nil {
		h.respondError(c, err)
		return
	}

	food, err := h.catalog.GetCustom(c.Request.Context(), userID, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

// CreateCustomFood handles POST /custom-foods
func (h *Handler) CreateCustomFood(c *gin.Context) {
	var food domain.CustomFood
	if err := bindJSON(c, &food); err != nil {
		h.respondError(c, err)
		return
	}
	food.ID = 0

	created, err := h.catalog.CreateCustom(c.Request.Context(), &food)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// DeleteCustomFood handles DELETE /custom-foods/:id?userId
func (h *Handler) DeleteCustomFood(c *gin.Context) {
	id, err := pathUint(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	userID, err := queryUint(c, "userId")
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.catalog.DeleteCustom(c.Request.Context(), userID, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
