package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/macrotrack/backend/internal/domain"
	"go.uber.org/zap"
)

const internalErrorMessage = "Internal server error"

// errorResponse is the body of every non-2xx response
type errorResponse struct {
	Message string `json:"message"`
}

// respondError maps domain errors onto status codes. Unexpected errors are
// logged and reported without detail
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := internalErrorMessage

	switch {
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrSourceDisabled):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrUSDAAPIFailure):
		message = err.Error()
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("request_id", requestID(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, errorResponse{Message: message})
}

// bindJSON decodes the body into obj. Decoding failures are invalid requests
func bindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return domain.Invalidf("invalid request body: %v", err)
	}
	return nil
}

func parseUintValue(name, raw string) (uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, domain.Invalidf("%s is required", name)
	}
	v, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || v == 0 {
		return 0, domain.Invalidf("%s must be a positive integer", name)
	}
	return uint(v), nil
}

// pathUint reads a required positive integer path parameter
func pathUint(c *gin.Context, name string) (uint, error) {
	return parseUintValue(name, c.Param(name))
}

// queryUint reads a required positive integer query parameter
func queryUint(c *gin.Context, name string) (uint, error) {
	return parseUintValue(name, c.Query(name))
}

// optionalQueryUint reads an optional positive integer query parameter; absent gives 0
func optionalQueryUint(c *gin.Context, name string) (uint, error) {
	if strings.TrimSpace(c.Query(name)) == "" {
		return 0, nil
	}
	return queryUint(c, name)
}

// queryFloat reads a required finite number query parameter
func queryFloat(c *gin.Context, name string) (float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, domain.Invalidf("%s is required", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, domain.Invalidf("%s must be a number", name)
	}
	return v, nil
}
