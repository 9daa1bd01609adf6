package utils

import "github.com/gin-gonic/gin"

// Message writes the uniform `{"message": ...}` JSON body every endpoint
// uses for non-entity responses.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// AbortMessage writes a message body and stops the handler chain.
func AbortMessage(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}
