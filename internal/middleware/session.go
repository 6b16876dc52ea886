package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	"github.com/anyulbade/truck-tco-calculator/internal/model"
)

const (
	sessionKey = "tco_session"

	// ClientCookie carries the browser's local history id.
	ClientCookie       = "tco_client"
	clientCookieMaxAge = 365 * 24 * 60 * 60
)

type SessionChecker interface {
	CheckSession(ctx context.Context, cookie string) model.Session
}

// Session resolves the caller's Moodle session once per request from the forwarded
// Cookie header and attaches the browser's client id, issuing one when missing.
func Session(checker SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := checker.CheckSession(c.Request.Context(), c.GetHeader("Cookie"))
		sess.ClientID = clientID(c)
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func clientID(c *gin.Context) string {
	if id, err := c.Cookie(ClientCookie); err == nil {
		if _, err := ulid.ParseStrict(id); err == nil {
			return id
		}
	}

	id := ulid.Make().String()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ClientCookie, id, clientCookieMaxAge, "/", "", false, true)
	return id
}

func SessionFrom(c *gin.Context) model.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(model.Session); ok {
			return sess
		}
	}
	return model.Guest()
}
