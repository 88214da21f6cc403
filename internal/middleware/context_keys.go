package middleware

import "github.com/gin-gonic/gin"

// accountEmailKey is the key used to store the authenticated account's email
// in the request context.
const accountEmailKey = contextKey("accountEmail")

// GetAccountEmailFromContext retrieves the authenticated account email from
// the Gin context. It returns the email and a boolean indicating if it was
// found.
func GetAccountEmailFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(accountEmailKey); v != nil {
		email, ok := v.(string)
		return email, ok
	}
	return "", false
}
