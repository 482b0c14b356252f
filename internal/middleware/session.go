package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"spendwise/internal/logger"
	"spendwise/internal/models"
)

const (
	currentUserKey  = "currentUser"
	sessionTokenKey = "sessionToken"
)

// SessionResolver maps a session token to its user.
type SessionResolver interface {
	Resolve(token string) (*models.User, error)
}

// Session returns a Gin middleware that resolves the session token from the
// named cookie or an "Authorization: Bearer" header and stores the user on
// the context. The cookie is tried first; when it does not resolve, the
// bearer token is tried. Requests without a valid session continue
// anonymously; services decide whether that is allowed.
func Session(resolver SessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokens := tokensFromRequest(c, cookieName)
		if len(tokens) == 0 {
			c.Next()
			return
		}
		c.Set(sessionTokenKey, tokens[0])

		for _, token := range tokens {
			user, err := resolver.Resolve(token)
			if err != nil {
				logger.Get().Debugw("session not resolved", "error", err, "path", c.Request.URL.Path)
				continue
			}
			c.Set(sessionTokenKey, token)
			c.Set(currentUserKey, user)
			break
		}
		c.Next()
	}
}

// tokensFromRequest returns the distinct session tokens of the request,
// cookie first.
func tokensFromRequest(c *gin.Context, cookieName string) []string {
	var tokens []string
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		tokens = append(tokens, cookie)
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		if bearer := strings.TrimSpace(parts[1]); bearer != "" && (len(tokens) == 0 || tokens[0] != bearer) {
			tokens = append(tokens, bearer)
		}
	}
	return tokens
}

// CurrentUser returns the user of the request's session, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// SetCurrentUser stores user as the request's acting user.
func SetCurrentUser(c *gin.Context, user *models.User) {
	c.Set(currentUserKey, user)
}

// SessionToken returns the raw session token sent with the request, if any.
func SessionToken(c *gin.Context) string {
	return c.GetString(sessionTokenKey)
}
