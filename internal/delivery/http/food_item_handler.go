package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/macrotrack/backend/internal/domain"
	"github.com/macrotrack/backend/internal/usecase"
)

// ListFoodItems handles GET /food-items?userId&date
func (h *Handler) ListFoodItems(c *gin.Context) {
	userID, err := optionalQueryUint(c, "userId")
	if err != nil {
		h.respondError(c, err)
		return
	}

	entries, err := h.foodLog.ListEntries(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// ListFoodItemsByMeal handles GET /food-items/meal?userId&date&mealType
func (h *Handler) ListFoodItemsByMeal(c *gin.Context) {
	userID, err := optionalQueryUint(c, "userId")
	if err != nil {
		h.respondError(c, err)
		return
	}

	meal := domain.MealSlot(c.Query("mealType"))
	entries, err := h.foodLog.ListEntriesByMeal(c.Request.Context(), userID, c.Query("date"), meal)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// DailySummary handles GET /food-items/summary?userId&date
func (h *Handler) DailySummary(c *gin.Context) {
	userID, err := optionalQueryUint(c, "userId")
	if err != nil {
		h.respondError(c, err)
		return
	}

	summary, err := h.foodLog.DailySummary(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// CreateFoodItem handles POST /food-items
func (h *Handler) CreateFoodItem(c *gin.Context) {
	var entry domain.FoodEntry
	if err := bindJSON(c, &entry); err != nil {
		h.respondError(c, err)
		return
	}
	entry.ID = 0

	created, err := h.foodLog.CreateEntry(c.Request.Context(), &entry)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// LogFromSearch handles POST /food-items/from-search
func (h *Handler) LogFromSearch(c *gin.Context) {
	var req usecase.LogFromSearchRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	created, err := h.foodLog.LogFromSearch(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// DeleteFoodItem handles DELETE /food-items/:id
func (h *Handler) DeleteFoodItem(c *gin.Context) {
	id, err := pathUint(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.foodLog.DeleteEntry(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
