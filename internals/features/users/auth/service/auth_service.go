package service

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mohitmore9417-afk/edua-ai/internals/features/users/auth/dto"
	authModel "github.com/mohitmore9417-afk/edua-ai/internals/features/users/auth/model"
	userModel "github.com/mohitmore9417-afk/edua-ai/internals/features/users/profile/model"
	helper "github.com/mohitmore9417-afk/edua-ai/internals/helpers"
)

// ========================== REGISTER ==========================
// Creates the user and its profile in one transaction (one profile per
// identity, created on signup).
func Register(db *gorm.DB, c *fiber.Ctx, input dto.RegisterRequest) error {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	role := userModel.ProfileRoleStudent
	if input.Role == "teacher" {
		role = userModel.ProfileRoleTeacher
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := userModel.UserModel{
		UserName: strings.TrimSpace(input.UserName),
		Email:    email,
		Password: string(hashed),
		IsActive: true,
	}

	err = db.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := userModel.ProfileModel{
			ProfileID:       user.ID,
			ProfileEmail:    email,
			ProfileFullName: strings.TrimSpace(input.FullName),
			ProfileRole:     role,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		if helper.IsDuplicateKeyError(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email is already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Account created", dto.AuthUser{
		ID:       user.ID,
		UserName: user.UserName,
		Email:    user.Email,
		FullName: strings.TrimSpace(input.FullName),
		Role:     string(role),
	})
}

// ========================== LOGIN ==========================
func Login(db *gorm.DB, c *fiber.Ctx, input dto.LoginRequest) error {
	ident := strings.ToLower(strings.TrimSpace(input.Identifier))

	var user userModel.UserModel
	if err := db.WithContext(c.Context()).
		Where("LOWER(email) = ? OR LOWER(user_name) = ?", ident, ident).
		First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	var profile userModel.ProfileModel
	if err := db.WithContext(c.Context()).
		First(&profile, "profile_id = ?", user.ID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Profile lookup failed")
	}

	accessToken, err := IssueAccessToken(user.ID, user.UserName, string(profile.ProfileRole))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}
	refreshToken, err := IssueRefreshToken(user.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue refresh token")
	}
	SetAuthCookies(c, accessToken, refreshToken)

	return helper.JsonOK(c, "Login successful", dto.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(AccessTTL.Seconds()),
		User: dto.AuthUser{
			ID:       user.ID,
			UserName: user.UserName,
			Email:    user.Email,
			FullName: profile.ProfileFullName,
			Role:     string(profile.ProfileRole),
		},
	})
}

// ========================== REFRESH TOKEN ==========================
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	refreshCookie := strings.TrimSpace(c.Cookies("refresh_token"))
	if refreshCookie == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Missing refresh token")
	}

	userID, err := ParseRefreshToken(refreshCookie)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	var user userModel.UserModel
	if err := db.WithContext(c.Context()).First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}

	var profile userModel.ProfileModel
	if err := db.WithContext(c.Context()).
		First(&profile, "profile_id = ?", user.ID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Profile lookup failed")
	}

	accessToken, err := IssueAccessToken(user.ID, user.UserName, string(profile.ProfileRole))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}
	newRefresh, err := IssueRefreshToken(user.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue refresh token")
	}
	SetAuthCookies(c, accessToken, newRefresh)

	return helper.JsonOK(c, "Token refreshed", fiber.Map{
		"access_token": accessToken,
		"token_type":   "Bearer",
		"expires_in":   int64(AccessTTL.Seconds()),
	})
}

// ========================== LOGOUT ==========================
// Blacklists the current access token until it would have expired.
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	if raw != "" {
		entry := authModel.TokenBlacklistModel{
			Token:     raw,
			ExpiredAt: time.Now().Add(AccessTTL),
		}
		if err := db.WithContext(c.Context()).Create(&entry).Error; err != nil && !helper.IsDuplicateKeyError(err) {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to revoke token")
		}
	}
	ClearAuthCookies(c)
	return helper.JsonOK(c, "Logged out", nil)
}

// ========================== CHANGE PASSWORD ==========================
func ChangePassword(db *gorm.DB, c *fiber.Ctx, input dto.ChangePasswordRequest) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var user userModel.UserModel
	if err := db.WithContext(c.Context()).First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Current password incorrect")
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash new password")
	}

	if err := db.WithContext(c.Context()).
		Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Update("password", string(newHash)).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}

	return helper.JsonUpdated(c, "Password changed successfully", nil)
}
