package middleware

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"doabli/internal/authz"
	"doabli/internal/models"
)

type MemberLookup interface {
	Get(ctx context.Context, projectID int64, userID string) (*models.ProjectMember, error)
}

type ProjectLookup interface {
	GetByID(ctx context.Context, id int64) (*models.Project, error)
}

func projectParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

func memberRole(c *gin.Context, members MemberLookup, projectID int64) (string, error) {
	userID, _ := c.Get("user_id")
	uid, _ := userID.(string)
	m, err := members.Get(c.Request.Context(), projectID, uid)
	if err != nil || m == nil {
		return "", err
	}
	return m.Role, nil
}

// ReadOnlyGuard rejects unsafe methods on /:id project routes for viewer members.
func ReadOnlyGuard(members MemberLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		projectID, ok := projectParam(c)
		if !ok {
			c.Next()
			return
		}
		role, err := memberRole(c, members, projectID)
		if err != nil {
			log.Printf("[authz][readonly][err] %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "membership lookup failed"})
			return
		}
		if authz.IsReadOnly(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "read-only role"})
			return
		}
		c.Next()
	}
}

// RequireProjectAdmin lets through the project owner and admin members.
func RequireProjectAdmin(projects ProjectLookup, members MemberLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := projectParam(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		p, err := projects.GetByID(c.Request.Context(), projectID)
		if err != nil {
			log.Printf("[authz][admin][err] %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "project lookup failed"})
			return
		}
		if p == nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		if uid, _ := c.Get("user_id"); uid == p.OwnerID {
			c.Next()
			return
		}
		role, err := memberRole(c, members, projectID)
		if err != nil {
			log.Printf("[authz][admin][err] %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "membership lookup failed"})
			return
		}
		if !authz.IsElevated(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
