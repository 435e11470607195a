package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nearby/internal/models/request_models"
	"nearby/pkg/config"
	"nearby/pkg/utils"
)

// TokenController mints bearer tokens for vote callers. Identity
// verification belongs to an upstream gateway; this surface only binds
// a caller-supplied user id to a signed token.
type TokenController struct {
	secret []byte
}

func NewTokenController(cfg *config.Config) *TokenController {
	return &TokenController{secret: []byte(cfg.JWTSecret)}
}

func (t *TokenController) IssueToken(c *gin.Context) {
	var req request_models.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "user_id is required")
		return
	}

	token, err := utils.CreateToken(t.secret, req.UserID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Could not issue token")
		return
	}

	utils.RespondSuccess(c, gin.H{"token": token}, "Token issued")
}
