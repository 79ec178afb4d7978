package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"doabli/internal/models"
	"doabli/internal/services"
)

// CookieOptions controls the session cookie written on login.
type CookieOptions struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

type AuthHandler struct {
	auth   services.AuthService
	cookie CookieOptions
}

func NewAuthHandler(auth services.AuthService, cookie CookieOptions) *AuthHandler {
	return &AuthHandler{auth: auth, cookie: cookie}
}

type callbackRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// @Summary      Identity provider callback
// @Description  Verifies the provider ID token, upserts the user and opens a session cookie
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      callbackRequest  true  "ID token"
// @Success      200   {object}  models.User
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/callback [post]
func (h *AuthHandler) Callback(c *gin.Context) {
	var req callbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "[auth][callback]", err)
		return
	}

	user, sess, err := h.auth.Login(c.Request.Context(), strings.TrimSpace(req.IDToken))
	if err != nil {
		respondError(c, "[auth][callback]", err)
		return
	}
	h.setCookie(c, sess.SID, int(h.cookie.TTL.Seconds()))
	log.Printf("[auth][callback][ok] user=%s", user.ID)
	c.JSON(http.StatusOK, user)
}

// @Summary  Log out
// @Tags     Auth
// @Success  302
// @Router   /api/logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	if sid, err := c.Cookie(h.cookie.Name); err == nil && sid != "" {
		if err := h.auth.Logout(c.Request.Context(), sid); err != nil {
			log.Printf("[auth][logout][warn] %v", err)
		}
	}
	h.setCookie(c, "", -1)
	c.Redirect(http.StatusFound, "/")
}

// @Summary   Current user
// @Tags      Auth
// @Produce   json
// @Success   200  {object}  models.User
// @Failure   401  {object}  map[string]string
// @Router    /api/auth/user [get]
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	v, ok := c.Get(ctxUser)
	user, _ := v.(*models.User)
	if !ok || user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}
