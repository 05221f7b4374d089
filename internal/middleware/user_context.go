package middleware

import (
	"invoicebook/internal/models"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "CurrentUser"

func setCurrentUser(c *gin.Context, user *models.User) {
	c.Set(currentUserKey, user)
}

// CurrentUser returns the user resolved by RequireAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}
