package middleware

import (
	"context"
	"strings"

	"github.com/Domenick1991/tripavista/internal/domain"
	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Session, error)
}

// Session resolves the bearer token, if any, into a session. Requests
// without a valid token carry the anonymous session; handlers decide
// whether that is enough.
func Session(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := domain.AnonymousSession()
		if token := BearerToken(c); token != "" {
			if s, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				session = s
			}
		}
		SetSession(c, session)
		c.Next()
	}
}

func SetSession(c *gin.Context, session domain.Session) {
	c.Set(sessionKey, session)
}

func GetSession(c *gin.Context) domain.Session {
	if s, ok := c.Get(sessionKey); ok {
		if session, ok := s.(domain.Session); ok {
			return session
		}
	}
	return domain.AnonymousSession()
}

func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
