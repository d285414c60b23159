package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Praveenkumarspk1/blog-wise/internal/auth"
	"github.com/Praveenkumarspk1/blog-wise/internal/models"
)

type SignupInput struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=30"`
	FullName string `json:"full_name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileInput struct {
	FullName  *string `json:"full_name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

// Signup registers a new profile and returns a bearer token for it.
func (e *Env) Signup(c *gin.Context) {
	var input SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var existing models.Profile
	if err := e.DB.Where("email = ? OR username = ?", input.Email, input.Username).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email or username already taken"})
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	profile := models.Profile{
		Email:        input.Email,
		Username:     input.Username,
		FullName:     input.FullName,
		PasswordHash: hash,
	}
	if err := e.DB.Create(&profile).Error; err != nil {
		respondError(c, err)
		return
	}

	token, err := auth.GenerateToken(profile.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "profile": profile})
}

// Login authenticates by email and password.
func (e *Env) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var profile models.Profile
	if err := e.DB.First(&profile, "email = ?", input.Email).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err := auth.CheckPassword(profile.PasswordHash, input.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(profile.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "profile": profile})
}

// GetMe returns the authenticated profile.
func (e *Env) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, currentProfile(c))
}

// UpdateProfile applies a partial update to the caller's own profile.
func (e *Env) UpdateProfile(c *gin.Context) {
	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	profile := currentProfile(c)
	updates := map[string]interface{}{"updated_at": time.Now()}
	if input.FullName != nil {
		updates["full_name"] = *input.FullName
	}
	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}
	if input.AvatarURL != nil {
		updates["avatar_url"] = *input.AvatarURL
	}
	if err := e.DB.Model(profile).Updates(updates).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
