package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doabli/internal/models"
	"doabli/internal/realtime"
	"doabli/internal/repositories"
	"doabli/internal/services"
)

func init() { gin.SetMode(gin.TestMode) }

func ptr[T any](v T) *T { return &v }

// newRouter mounts routes behind a stub session that authenticates as userID.
func newRouter(userID string, mount func(r gin.IRoutes)) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(ctxUserID, userID)
			c.Set(ctxUser, &models.User{ID: userID})
		}
		c.Next()
	})
	mount(r)
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rd = bytes.NewBufferString(b)
		default:
			raw, _ := json.Marshal(b)
			rd = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type capture struct{ events []realtime.Event }

func (c *capture) Publish(ev realtime.Event) { c.events = append(c.events, ev) }

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{repositories.ErrNotFound, http.StatusNotFound, repositories.ErrNotFound.Error()},
		{services.ErrTaskNotFound, http.StatusNotFound, "task not found"},
		{services.ErrInvalidStatus, http.StatusBadRequest, "invalid status"},
		{services.ErrPageCycle, http.StatusBadRequest, services.ErrPageCycle.Error()},
		{services.ErrParentNotFound, http.StatusBadRequest, "parent page not found"},
		{services.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "file too large"},
		{services.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
		{services.ErrAlreadyOnboarded, http.StatusConflict, services.ErrAlreadyOnboarded.Error()},
		{services.ErrForbidden, http.StatusForbidden, services.ErrForbidden.Error()},
		{&pq.Error{Code: "23503"}, http.StatusBadRequest, "invalid reference"},
		{&pq.Error{Code: "23505"}, http.StatusConflict, "already exists"},
		{&pq.Error{Code: "08006"}, http.StatusInternalServerError, "internal error"},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError, "internal error"},
	}
	for _, tc := range cases {
		code, msg := classify(tc.err)
		assert.Equal(t, tc.code, code, tc.err.Error())
		assert.Equal(t, tc.msg, msg)
	}
}

func TestParseHelpers(t *testing.T) {
	r := newRouter("", func(r gin.IRoutes) {
		r.GET("/x/:id", func(c *gin.Context) {
			id, ok := parseID(c, "id")
			if !ok {
				return
			}
			p, ok := optionalID(c, "projectId")
			if !ok {
				return
			}
			c.JSON(http.StatusOK, gin.H{"id": id, "project": p})
		})
	})

	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodGet, "/x/abc", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodGet, "/x/0", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodGet, "/x/3?projectId=z", nil).Code)

	w := doJSON(r, http.MethodGet, "/x/3?projectId=8", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":3,"project":8}`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/x/3", nil)
	assert.JSONEq(t, `{"id":3,"project":null}`, w.Body.String())
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "", currentUserID(c))
	c.Set(ctxUserID, "abc")
	assert.Equal(t, "abc", currentUserID(c))
}
