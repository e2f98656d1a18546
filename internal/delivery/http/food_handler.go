package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/macrotrack/backend/internal/usecase"
)

// SearchNutrition handles GET /nutrition/search?query, the cached USDA proxy
func (h *Handler) SearchNutrition(c *gin.Context) {
	resp, err := h.nutrition.SearchFoods(c.Request.Context(), c.Query("query"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetNutritionFood handles GET /nutrition/food/:fdcId
func (h *Handler) GetNutritionFood(c *gin.Context) {
	food, err := h.nutrition.GetFood(c.Request.Context(), c.Param("fdcId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

// SearchFoods handles GET /foods/search?query&mode&userId.
// A failing source in a single-source search still answers 200 with an error message
func (h *Handler) SearchFoods(c *gin.Context) {
	userID, err := optionalQueryUint(c, "userId")
	if err != nil {
		h.respondError(c, err)
		return
	}

	mode, err := usecase.ParseSearchMode(c.Query("mode"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	outcome, err := h.search.Search(c.Request.Context(), usecase.SearchRequest{
		Query:  c.Query("query"),
		Mode:   mode,
		UserID: userID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// ServingPreview handles GET /foods/serving?foodId&quantity&unit&userId
func (h *Handler) ServingPreview(c *gin.Context) {
	userID, err := optionalQueryUint(c, "userId")
	if err != nil {
		h.respondError(c, err)
		return
	}
	quantity, err := queryFloat(c, "quantity")
	if err != nil {
		h.respondError(c, err)
		return
	}

	preview, err := h.resolver.Preview(c.Request.Context(), c.Query("foodId"), userID, quantity, c.Query("unit"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}
