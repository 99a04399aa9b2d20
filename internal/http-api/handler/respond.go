package handler

import (
	"errors"
	"net/http"
	"strconv"

	"forumhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// Response conventions: domain failures (not found, forbidden, bad
// input, duplicates) come back as HTTP 200 with {"status":"fail"} and a
// message, so API clients branch on the envelope rather than the HTTP
// code. 401 is reserved for the auth middleware, 429 for the rate
// limiter and 500 for genuinely unexpected faults.

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": data})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": message})
}

func respondFail(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"status": "fail", "message": message})
}

// respondError classifies a service error into the envelope.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrNameInUse),
		errors.Is(err, service.ErrEmailInUse),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUserBanned),
		errors.Is(err, service.ErrWrongCode):
		respondFail(c, err.Error())
	case errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrExpiredToken):
		c.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "internal server error"})
	}
}

// currentUserID reads the identity set by the auth middleware.
func currentUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}
	return userID.(string)
}

// pathID parses a numeric path parameter, reporting ok=false after
// writing the fail envelope.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		respondFail(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// queryFilters collects single-value query parameters as repository
// filters. Pagination keys are stripped; unknown fields are ignored by
// the repository allow-lists.
func queryFilters(c *gin.Context) map[string]string {
	filters := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if key == "page" || key == "page_size" {
			continue
		}
		if len(values) > 0 {
			filters[key] = values[0]
		}
	}
	return filters
}
