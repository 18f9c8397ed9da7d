package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse writes the status API's envelope: status code, human
// message and the payload under "data".
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError writes the error envelope, carrying the error text under
// "error" instead of a data payload.
func JSONError(c *gin.Context, status int, err error, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"error":   err.Error(),
	})
}
