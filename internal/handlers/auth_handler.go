package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/uniease-api/internal/httperr"
	"github.com/BruksfildServices01/uniease-api/internal/httpresp"
	"github.com/BruksfildServices01/uniease-api/internal/middleware"
	uc "github.com/BruksfildServices01/uniease-api/internal/usecase/identity"
)

type AuthHandler struct {
	register *uc.Register
	login    *uc.Login
	me       *uc.Me
}

func NewAuthHandler(register *uc.Register, login *uc.Login, me *uc.Me) *AuthHandler {
	return &AuthHandler{register: register, login: login, me: me}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("invalid_request"))
		return
	}

	out, err := h.register.Execute(c.Request.Context(), uc.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, out)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("invalid_request"))
		return
	}

	out, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *AuthHandler) Me(c *gin.Context) {
	out, err := h.me.Execute(c.Request.Context(), middleware.PrincipalFrom(c).UserID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}
