package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/VictorRuuan/Finance-Control/internal/auth"
	"github.com/VictorRuuan/Finance-Control/internal/models"
	"github.com/VictorRuuan/Finance-Control/internal/store"
	"github.com/VictorRuuan/Finance-Control/internal/util"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// TokenFromRequest extracts the session token. Sources in order:
//  1. Header: Authorization: Bearer xxx
//  2. Query param ?token=xxx (for download links that can't set headers)
//  3. Session cookie (browser flows)
func TokenFromRequest(c *gin.Context, cookieName string) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	if token := c.Query("token"); token != "" {
		return token
	}

	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie
	}
	return ""
}

// RequireUser authenticates API requests. Missing or invalid sessions
// get a 401 envelope; a failed lookup is a 500, not a logout.
func RequireUser(sessions *auth.SessionManager, users *store.UserStore, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveUser(c, sessions, users, cookieName)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthenticated) {
				util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
			} else {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "session lookup failed")
			}
			c.Abort()
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireUserOrRedirect authenticates browser requests. Missing or
// invalid sessions get a redirect to the login page, not an error body.
func RequireUserOrRedirect(sessions *auth.SessionManager, users *store.UserStore, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveUser(c, sessions, users, cookieName)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthenticated) {
				c.Redirect(http.StatusSeeOther, "/login")
			} else {
				c.String(http.StatusInternalServerError, "server error")
			}
			c.Abort()
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// resolveUser maps the request token to an existing user. A session
// whose user no longer exists authorizes nothing, but a database
// failure during the lookup must not look like a logged-out session.
func resolveUser(c *gin.Context, sessions *auth.SessionManager, users *store.UserStore, cookieName string) (*models.User, error) {
	token := TokenFromRequest(c, cookieName)
	if token == "" {
		return nil, auth.ErrUnauthenticated
	}

	userID, err := sessions.Resolve(token)
	if err != nil {
		return nil, err
	}

	user, err := users.FindByID(userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, auth.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CurrentUser returns the authenticated user placed by the middleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
