package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/truck-tco-calculator/internal/dto"
	"github.com/anyulbade/truck-tco-calculator/internal/middleware"
)

type AuthLinks interface {
	LoginURL(returnURL string) string
	SignupURL() string
	LogoutURL() string
}

type SessionHandler struct {
	links AuthLinks
}

func NewSessionHandler(links AuthLinks) *SessionHandler {
	return &SessionHandler{links: links}
}

func (h *SessionHandler) Get(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	c.JSON(http.StatusOK, dto.SessionResponse{
		Authenticated: sess.Authenticated,
		User:          sess.User,
		LoginURL:      h.links.LoginURL(returnURL(c)),
		SignupURL:     h.links.SignupURL(),
		LogoutURL:     h.links.LogoutURL(),
	})
}

// Login sends the browser to the Moodle login page, which redirects back to return_to
// once the session is established.
func (h *SessionHandler) Login(c *gin.Context) {
	c.Redirect(http.StatusFound, h.links.LoginURL(returnURL(c)))
}

func returnURL(c *gin.Context) string {
	if v := c.Query("return_to"); v != "" {
		return v
	}
	if ref := c.GetHeader("Referer"); ref != "" {
		return ref
	}
	return "/"
}
