package utils

import "github.com/gin-gonic/gin"

func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// RespondWithRedirect tells the dashboard to drop its session and go to the
// given route.
func RespondWithRedirect(c *gin.Context, status int, message, location string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message, "redirect": location})
}
