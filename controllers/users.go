package controllers

import (
	"net/http"
	"strings"

	"finquery/internal/auth"
	"finquery/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UsersController struct {
	DB     *gorm.DB
	Tokens *auth.TokenIssuer
	Logger *zap.SugaredLogger
}

func (u UsersController) Register(c *gin.Context) {
	type registerParams struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var payload registerParams
	if err := c.BindJSON(&payload); err != nil {
		RespondBadRequestErr(c, err)
		return
	}

	hashed, err := auth.HashPassword(payload.Password)
	if err != nil {
		u.Logger.Errorf("Error hashing password: %v", err)
		RespondInternalErr(c)
		return
	}

	_, err = models.CreateUser(u.DB, payload.Username, payload.Email, &hashed, "")
	if err != nil {
		// Duplicate registration is a client error, anything else is ours.
		if models.IsDuplicateKeyError(err) {
			RespondBadRequestErr(c, ErrDuplicateUser)
			return
		}

		u.Logger.Errorf("Error creating user: %v", err)
		RespondInternalErr(c)
		return
	}

	token, err := u.Tokens.Issue(payload.Email)
	if err != nil {
		u.Logger.Errorf("Error issuing token: %v", err)
		RespondInternalErr(c)
		return
	}

	RespondOK(c, gin.H{"token": token})
}

func (u UsersController) Login(c *gin.Context) {
	type loginParams struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var payload loginParams
	if err := c.BindJSON(&payload); err != nil {
		RespondBadRequestErr(c, err)
		return
	}

	user, err := models.GetUserByEmail(u.DB, payload.Email)
	if err != nil {
		u.Logger.Errorf("Error getting user: %v", err)
		RespondInternalErr(c)
		return
	}

	// OAuth-only accounts have no hash and cannot log in with a password.
	if user == nil || user.HashedPassword == nil || !auth.CheckPassword(*user.HashedPassword, payload.Password) {
		RespondUnauthorizedErr(c, ErrInvalidCredentials)
		return
	}

	token, err := u.Tokens.Issue(payload.Email)
	if err != nil {
		u.Logger.Errorf("Error issuing token: %v", err)
		RespondInternalErr(c)
		return
	}

	RespondOK(c, gin.H{"token": token})
}

// Logout acknowledges a valid token. Tokens are stateless and not
// server-tracked, so there is nothing to revoke.
func (u UsersController) Logout(c *gin.Context) {
	RespondOK(c, gin.H{"message": "Successfully logged out"})
}

// OAuth registers an externally-authenticated user, or returns the
// existing one. Idempotent on email.
func (u UsersController) OAuth(c *gin.Context) {
	type oauthParams struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name" binding:"required"`
		Provider string `json:"provider" binding:"required"`
	}

	var payload oauthParams
	if err := c.BindJSON(&payload); err != nil {
		RespondBadRequestErr(c, err)
		return
	}

	existing, err := models.GetUserByEmail(u.DB, payload.Email)
	if err != nil {
		u.Logger.Errorf("Error getting user: %v", err)
		RespondInternalErr(c)
		return
	}

	if existing != nil {
		RespondOK(c, gin.H{"message": "User already exists", "user_id": existing.ID})
		return
	}

	// Derive a unique username from the display name and email prefix.
	emailPrefix := strings.SplitN(payload.Email, "@", 2)[0]
	username := payload.Name + "_" + emailPrefix

	user, err := models.CreateUser(u.DB, username, payload.Email, nil, payload.Provider)
	if err != nil {
		if models.IsDuplicateKeyError(err) {
			RespondBadRequestErr(c, ErrDuplicateUser)
			return
		}

		u.Logger.Errorf("Error creating OAuth user: %v", err)
		RespondInternalErr(c)
		return
	}

	RespondOK(c, gin.H{"message": "User created successfully", "user_id": user.ID})
}

func (u UsersController) TrackCompanies(c *gin.Context) {
	type trackParams struct {
		CIKs []int64 `json:"ciks" binding:"required"`
	}

	var payload trackParams
	if err := c.BindJSON(&payload); err != nil {
		RespondBadRequestErr(c, err)
		return
	}

	user, ok := u.currentUser(c)
	if !ok {
		return
	}

	added, skipped, err := models.TrackCompanies(u.DB, user.ID, payload.CIKs)
	if err != nil {
		u.Logger.Errorf("Error tracking companies: %v", err)
		RespondInternalErr(c)
		return
	}

	RespondOK(c, gin.H{"message": "Companies processed", "added": added, "skipped": skipped})
}

func (u UsersController) UntrackCompany(c *gin.Context) {
	type untrackParams struct {
		CIK int64 `json:"cik" binding:"required"`
	}

	var payload untrackParams
	if err := c.BindJSON(&payload); err != nil {
		RespondBadRequestErr(c, err)
		return
	}

	user, ok := u.currentUser(c)
	if !ok {
		return
	}

	if err := models.UntrackCompany(u.DB, user.ID, payload.CIK); err != nil {
		u.Logger.Errorf("Error untracking company: %v", err)
		RespondInternalErr(c)
		return
	}

	RespondOK(c, gin.H{"message": "Company removed from tracking successfully"})
}

func (u UsersController) DeleteUser(c *gin.Context) {
	user, ok := u.currentUser(c)
	if !ok {
		return
	}

	if err := models.DeleteUser(u.DB, user.ID); err != nil {
		u.Logger.Errorf("Error deleting user: %v", err)
		RespondInternalErr(c)
		return
	}

	RespondOK(c, gin.H{"message": "User deleted successfully"})
}

// GetTrackedData returns the most recent reported financial period for
// each of the user's tracked companies.
func (u UsersController) GetTrackedData(c *gin.Context) {
	user, ok := u.currentUser(c)
	if !ok {
		return
	}

	ciks, err := models.GetTrackedCIKs(u.DB, user.ID)
	if err != nil {
		u.Logger.Errorf("Error getting tracked CIKs: %v", err)
		RespondInternalErr(c)
		return
	}

	financials, err := models.GetLatestFinancials(u.DB, ciks)
	if err != nil {
		u.Logger.Errorf("Error getting tracked financials: %v", err)
		RespondInternalErr(c)
		return
	}

	RespondOK(c, financials)
}

// currentUser resolves the authenticated user and writes the error
// response itself when resolution fails.
func (u UsersController) currentUser(c *gin.Context) (*models.User, bool) {
	user, err := CurrentUser(c, u.DB)
	if err != nil {
		u.Logger.Errorf("Error getting user: %v", err)
		RespondInternalErr(c)
		return nil, false
	}

	if user == nil {
		RespondError(c, http.StatusNotFound, ErrUserNotFound)
		return nil, false
	}

	return user, true
}
