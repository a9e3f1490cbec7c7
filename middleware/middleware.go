package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oficiossde/directorio-api/config"
	"github.com/oficiossde/directorio-api/model"
	"github.com/oficiossde/directorio-api/util"
	"gorm.io/gorm"
)

const (
	dbContextKey     = "db"
	userIDContextKey = "user_id"
	roleIDContextKey = "role_id"
)

// CORSMiddleware configures CORS headers for incoming requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Authorization, session-token")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Content-Type", "application/json")

		// For preflight requests, respond with 204 and abort further processing.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// DatabaseMiddleware injects the gorm DB handle into the request context so
// handlers never touch the connection singleton directly.
func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbContextKey, db)
		c.Next()
	}
}

// GetDB returns the request-scoped DB handle, or nil when the middleware was
// not installed.
func GetDB(c *gin.Context) *gorm.DB {
	v, ok := c.Get(dbContextKey)
	if !ok {
		return nil
	}
	db, ok := v.(*gorm.DB)
	if !ok {
		return nil
	}
	return db
}

// GetUserID returns the authenticated admin's user id, if any.
func GetUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(userIDContextKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// GetRoleID returns the authenticated admin's role id, if any.
func GetRoleID(c *gin.Context) (uint32, bool) {
	v, ok := c.Get(roleIDContextKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint32)
	return id, ok
}

// SessionAuth gates the admin area on a valid, unexpired session token. The
// Redis mirror is consulted first; a miss falls back to the sessions table.
func SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("session-token")
		if token == "" {
			util.LogUnauthorizedAccess("", "", c.ClientIP(), c.Request.URL.Path, "missing session token")
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Session token required",
				Err: fmt.Errorf("missing session token"),
			})
			c.Abort()
			return
		}

		if userID, roleID, ok := sessionFromRedis(token); ok {
			c.Set(userIDContextKey, userID)
			c.Set(roleIDContextKey, roleID)
			c.Next()
			return
		}

		db := GetDB(c)
		if db == nil {
			util.CallServerError(c, util.APIErrorParams{
				Msg: "Database connection not available",
				Err: fmt.Errorf("db is nil"),
			})
			c.Abort()
			return
		}

		var result struct {
			model.Session
			RoleID uint32
		}
		err := db.Table("sessions").
			Select("sessions.*, users.role_id as role_id").
			Joins("JOIN users ON sessions.user_id = users.id").
			Where("session_token = ? AND expires_at > ? AND sessions.deleted_at IS NULL", token, time.Now()).
			First(&result).Error
		if err != nil {
			util.LogUnauthorizedAccess("", "", c.ClientIP(), c.Request.URL.Path, "invalid or expired session")
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Invalid or expired session",
				Err: fmt.Errorf("session not found"),
			})
			c.Abort()
			return
		}

		c.Set(userIDContextKey, result.UserID)
		c.Set(roleIDContextKey, result.RoleID)
		c.Next()
	}
}

// sessionFromRedis resolves "session:<token>" entries of the form
// "<userID>:<roleID>". Absent Redis or a miss returns ok=false.
func sessionFromRedis(token string) (uint, uint32, bool) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return 0, 0, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	val, err := rdb.Get(ctx, fmt.Sprintf("session:%s", token)).Result()
	if err != nil {
		return 0, 0, false
	}
	parts := strings.SplitN(val, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	var userID uint
	var roleID uint32
	if _, err := fmt.Sscanf(parts[0], "%d", &userID); err != nil {
		return 0, 0, false
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &roleID); err != nil {
		return 0, 0, false
	}
	return userID, roleID, true
}
