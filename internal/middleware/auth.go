package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/servquick/household-services/internal/httperr"
	"github.com/servquick/household-services/internal/models"
)

const (
	ContextUserID    = "userID"
	ContextUserRole  = "userRole"
	ContextProfileID = "profileID"
)

const (
	sessionUserID    = "user_id"
	sessionRole      = "user_role"
	sessionProfileID = "profile_id"
)

// SaveSession binds (user id, role, role-profile id) to the caller's session.
func SaveSession(c *gin.Context, user *models.User, profileID uint) error {
	sess := sessions.Default(c)
	sess.Set(sessionUserID, user.ID)
	sess.Set(sessionRole, string(user.Role))
	sess.Set(sessionProfileID, profileID)
	return sess.Save()
}

func ClearSession(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	return sess.Save()
}

// RequireSession gates any protected operation. It re-reads the user so a
// block applied after login takes effect on the next request, and a deleted
// account invalidates its session.
func RequireSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		userID, ok := sess.Get(sessionUserID).(uint)
		if !ok {
			httperr.Unauthorized(c, "not_authenticated", "Please login to continue.")
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			sess.Clear()
			_ = sess.Save()
			httperr.Unauthorized(c, "not_authenticated", "Please login to continue.")
			c.Abort()
			return
		}

		if user.IsBlocked {
			httperr.Forbidden(c, "account_blocked", "You are blocked by admin.")
			c.Abort()
			return
		}

		profileID, _ := sess.Get(sessionProfileID).(uint)

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserRole, user.Role)
		c.Set(ContextProfileID, profileID)

		c.Next()
	}
}

// RequireRole runs after RequireSession and narrows access to the given roles.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	roleSet := map[models.Role]struct{}{}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, ok := c.MustGet(ContextUserRole).(models.Role)
		if !ok {
			httperr.Unauthorized(c, "not_authenticated", "Please login to continue.")
			c.Abort()
			return
		}

		if _, ok := roleSet[role]; !ok {
			httperr.Forbidden(c, "forbidden", "You are not authorized to access this page.")
			c.Abort()
			return
		}
		c.Next()
	}
}
