package endpoint

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/oficiossde/directorio-api/config"
	"github.com/oficiossde/directorio-api/middleware"
	"github.com/oficiossde/directorio-api/model"
	"github.com/oficiossde/directorio-api/util"
	"gorm.io/gorm"
)

const (
	maxFailedAttempts = 5
	lockoutDuration   = 15 * time.Minute
	sessionLifetime   = time.Hour
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@oficiossde.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type LoginResponse struct {
	Token  string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Role   string `json:"role" example:"Admin"`
	UserID uint   `json:"user_id" example:"1"`
}

// Login godoc
// @Summary      Admin login
// @Description  Authenticate an admin with email and password
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} util.APIResponse{data=LoginResponse} "Login successful"
// @Failure      400 {object} util.APIResponse "Invalid credentials or locked account"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request payload",
			Err: err,
		})
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	ip := c.ClientIP()
	agent := c.Request.UserAgent()

	var user model.User
	err := db.Where("email = ?", req.Email).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		util.LogLoginFailure(req.Email, ip, agent, "user not found")
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid email or password",
			Err: fmt.Errorf("user not found"),
		})
		return
	}
	if err != nil {
		util.LogLoginFailure(req.Email, ip, agent, "database error")
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database error",
			Err: err,
		})
		return
	}

	if user.LockedUntil != nil && user.LockedUntil.After(time.Now()) {
		util.LogLoginFailure(req.Email, ip, agent, "account locked")
		util.CallUserError(c, util.APIErrorParams{
			Msg: fmt.Sprintf("Account is locked until %s due to multiple failed login attempts", user.LockedUntil.Format(time.RFC3339)),
			Err: fmt.Errorf("account locked"),
		})
		return
	}

	match, err := util.VerifyPassword(req.Password, user.Password, user.PasswordSalt)
	if err != nil {
		util.LogLoginFailure(req.Email, ip, agent, "password verification error")
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Password verification failed",
			Err: err,
		})
		return
	}
	if !match {
		registerFailedAttempt(db, &user, ip, agent)
		util.LogLoginFailure(req.Email, ip, agent, "invalid password")
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid email or password",
			Err: fmt.Errorf("invalid password"),
		})
		return
	}

	if user.FailedAttempts > 0 || user.LockedUntil != nil {
		user.FailedAttempts = 0
		user.LockedUntil = nil
		if err := db.Save(&user).Error; err != nil {
			util.LogSecurityEvent(util.SecurityEvent{
				EventType: util.EventSuspiciousActivity,
				UserID:    fmt.Sprintf("%d", user.ID),
				Email:     user.Email,
				IP:        ip,
				Message:   fmt.Sprintf("Failed to reset failed attempts: %v", err),
			})
		}
	}

	var role model.Role
	if err := db.First(&role, user.RoleID).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Role not found",
			Err: err,
		})
		return
	}

	tokenString, err := createJWTToken(user)
	if err != nil {
		util.LogLoginFailure(req.Email, ip, agent, "token generation failed")
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Could not generate token",
			Err: err,
		})
		return
	}

	session := model.Session{
		UserID:       user.ID,
		SessionToken: tokenString,
		IPAddress:    ip,
		UserAgent:    agent,
		ExpiresAt:    time.Now().Add(sessionLifetime),
	}
	if err := db.Create(&session).Error; err != nil {
		util.LogLoginFailure(req.Email, ip, agent, "session creation failed")
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to record session",
			Err: err,
		})
		return
	}

	// Mirror the session in Redis for the auth middleware fast path.
	if rdb := config.GetRedisClient(); rdb != nil {
		exp := time.Until(session.ExpiresAt)
		val := fmt.Sprintf("%d:%d", user.ID, role.ID)
		_ = rdb.Set(context.Background(), fmt.Sprintf("session:%s", tokenString), val, exp).Err()
		_ = util.AddSessionToUserSet(user.ID, tokenString, exp)
	}

	util.UserEmailCacheSet(user.ID, user.Email)
	util.LogLoginSuccess(user.ID, user.Email, ip, agent)
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Login successful",
		Data: LoginResponse{Token: tokenString, Role: role.Name, UserID: user.ID},
	})
}

func registerFailedAttempt(db *gorm.DB, user *model.User, ip, agent string) {
	user.FailedAttempts++
	if user.FailedAttempts >= maxFailedAttempts {
		lockUntil := time.Now().Add(lockoutDuration)
		user.LockedUntil = &lockUntil
		util.LogAccountLocked(user.ID, user.Email, ip, "too many failed login attempts")
	}
	if err := db.Save(user).Error; err != nil {
		util.LogLoginFailure(user.Email, ip, agent, "failed to update failed attempts")
	}
}

func createJWTToken(user model.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": user.Email,
		"exp":   time.Now().Add(sessionLifetime).Unix(),
		"role":  user.RoleID,
	})
	return token.SignedString(util.GetJWTSecretByte())
}

// Logout godoc
// @Summary      Admin logout
// @Description  Invalidate the session token in MySQL and Redis
// @Tags         Authentication
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse "Logout successful"
// @Failure      400 {object} util.APIResponse "Session not found"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /logout [delete]
func Logout(c *gin.Context) {
	sessionToken := c.GetHeader("session-token")
	if sessionToken == "" {
		util.CallUserNotAuthorized(c, util.APIErrorParams{
			Msg: "Session token not provided",
			Err: fmt.Errorf("session token not provided"),
		})
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	var session model.Session
	if err := db.Where("session_token = ?", sessionToken).First(&session).Error; err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Session not found",
			Err: err,
		})
		return
	}

	var user model.User
	if err := db.First(&user, session.UserID).Error; err == nil {
		util.LogLogout(user.ID, user.Email, c.ClientIP(), c.Request.UserAgent())
	}

	if err := db.Where("session_token = ?", sessionToken).Delete(&session).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to delete session",
			Err: err,
		})
		return
	}

	if rdb := config.GetRedisClient(); rdb != nil {
		_ = rdb.Del(context.Background(), fmt.Sprintf("session:%s", sessionToken)).Err()
		_ = util.RemoveSessionTokenFromUserSet(session.UserID, sessionToken)
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Logout successful",
	})
}
