package web

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "sid"
	tokenKey      = "session_token"
)

// withSession resolves the visitor's cookie to a session token, issuing a
// fresh one when the cookie is absent or its signature does not verify. The
// cookie carries "<token>.<hmac>" so a tampered token is never accepted.
func (h *Handler) withSession(c *gin.Context) {
	token := ""

	if raw, err := c.Cookie(sessionCookie); err == nil {
		token = h.verifyCookie(raw)
	}

	if token == "" {
		token = uuid.NewString()
		c.SetCookie(sessionCookie, h.signCookie(token), int(h.sessionTTL/time.Second), "/", "", false, true)
	}

	c.Set(tokenKey, token)
	c.Next()
}

func (h *Handler) signCookie(token string) string {
	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write([]byte(token))
	return token + "." + hex.EncodeToString(mac.Sum(nil))
}

func (h *Handler) verifyCookie(raw string) string {
	token, _, ok := strings.Cut(raw, ".")
	if !ok {
		return ""
	}

	if !hmac.Equal([]byte(h.signCookie(token)), []byte(raw)) {
		return ""
	}

	return token
}

func sessionToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}

// requestLogger logs one line per request, slog-style.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	}
}
