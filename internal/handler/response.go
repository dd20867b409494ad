package handler

import (
	"github.com/gin-gonic/gin"
)

// fail writes the {success:false, error} body used by the frontend-facing routes.
func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}
