package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"doabli/internal/repositories"
	"doabli/internal/services"
)

const (
	ctxUserID = "user_id"
	ctxUser   = "user"
)

// currentUserID returns the id set by the session middleware.
func currentUserID(c *gin.Context) string {
	if v, ok := c.Get(ctxUserID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// parseID reads a positive integer path parameter, answering 400 otherwise.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// optionalID reads a positive integer query parameter. Absent means nil.
func optionalID(c *gin.Context, name string) (*int64, bool) {
	v, ok := c.GetQuery(name)
	if !ok || v == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return nil, false
	}
	return &id, true
}

func badRequest(c *gin.Context, tag string, err error) {
	log.Printf("%s[bind][err] %v", tag, err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// respondError maps a service or storage error to a status code and logs it under tag, e.g. "[task][create]".
func respondError(c *gin.Context, tag string, err error) {
	status, msg := classify(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s[err] %v", tag, err)
	} else {
		log.Printf("%s[%d] %v", tag, status, err)
	}
	c.JSON(status, gin.H{"error": msg})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, repositories.ErrNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrProjectNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidPosition),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrParentNotFound),
		errors.Is(err, services.ErrPageCycle):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, err.Error()
	case errors.Is(err, services.ErrUnauthenticated),
		errors.Is(err, services.ErrInvalidToken):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, services.ErrAlreadyOnboarded):
		return http.StatusConflict, err.Error()
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23503":
			return http.StatusBadRequest, "invalid reference"
		case "23505":
			return http.StatusConflict, "already exists"
		case "23514", "22P02":
			return http.StatusBadRequest, "invalid value"
		}
	}
	return http.StatusInternalServerError, "internal error"
}
