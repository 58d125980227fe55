package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/VictorRuuan/Finance-Control/internal/auth"
	"github.com/VictorRuuan/Finance-Control/internal/middleware"
	"github.com/VictorRuuan/Finance-Control/internal/store"
	"github.com/VictorRuuan/Finance-Control/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler owns the register/login/logout flows, both the browser
// form surface and the JSON API.
type AuthHandler struct {
	Auth       *auth.Authenticator
	Sessions   *auth.SessionManager
	CookieName string
	CookieTTL  time.Duration
}

func NewAuthHandler(a *auth.Authenticator, sessions *auth.SessionManager, cookieName string, expireHours int) *AuthHandler {
	if expireHours <= 0 {
		expireHours = 24
	}
	return &AuthHandler{
		Auth:       a,
		Sessions:   sessions,
		CookieName: cookieName,
		CookieTTL:  time.Duration(expireHours) * time.Hour,
	}
}

// ---------- browser flows ----------

// Index sends the client to the dashboard or the login page depending
// on session state.
func (h *AuthHandler) Index(c *gin.Context) {
	token := middleware.TokenFromRequest(c, h.CookieName)
	if token != "" {
		if _, err := h.Sessions.Resolve(token); err == nil {
			c.Redirect(http.StatusSeeOther, "/dashboard")
			return
		}
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Title": "Finance Control - Login",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	token, _, err := h.Auth.Login(email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.HTML(http.StatusUnauthorized, "login.html", gin.H{
				"Title": "Finance Control - Login",
				"Error": "Invalid email or password",
			})
			return
		}
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"Title": "Finance Control - Login",
			"Error": "Something went wrong, please try again",
		})
		return
	}

	h.setSessionCookie(c, token)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{
		"Title": "Finance Control - Register",
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")

	if name == "" || email == "" || password == "" {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"Title": "Finance Control - Register",
			"Error": "Name, email and password are required",
		})
		return
	}

	if _, err := h.Auth.Register(name, email, password); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			c.HTML(http.StatusBadRequest, "register.html", gin.H{
				"Title": "Finance Control - Register",
				"Error": "Email already registered",
			})
			return
		}
		c.HTML(http.StatusInternalServerError, "register.html", gin.H{
			"Title": "Finance Control - Register",
			"Error": "Something went wrong, please try again",
		})
		return
	}

	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if token := middleware.TokenFromRequest(c, h.CookieName); token != "" {
		_ = h.Sessions.Logout(token)
	}
	h.clearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/login")
}

// ---------- JSON API ----------

type registerReq struct {
	Name     string `json:"name" binding:"required,max=64"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=64"`
}

func (h *AuthHandler) APIRegister(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	user, err := h.Auth.Register(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "email already registered")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create user failed")
		return
	}

	util.Success(c, util.Response{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) APILogin(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	token, user, err := h.Auth.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid email or password")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "login failed")
		return
	}

	util.Success(c, util.Response{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

func (h *AuthHandler) APILogout(c *gin.Context) {
	if token := middleware.TokenFromRequest(c, h.CookieName); token != "" {
		_ = h.Sessions.Logout(token)
	}
	util.Success(c, util.Response{
		"message": "logged out",
	})
}

// APIMe returns the current authenticated user.
func (h *AuthHandler) APIMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	util.Success(c, util.Response{
		"user": gin.H{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"created_at": user.CreatedAt,
		},
	})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(h.CookieName, token, int(h.CookieTTL.Seconds()), "/", "", false, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(h.CookieName, "", -1, "/", "", false, true)
}
