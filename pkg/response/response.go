package response

import "github.com/gin-gonic/gin"

// Error sends the flat error body used by the upload-validation paths.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// BadRequest sends a 400 bad request response.
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message)
}

// AnalysisError sends the standardized analysis-failure envelope. The field
// names and the "Error" status string are part of the API contract.
func AnalysisError(c *gin.Context, message string) {
	c.JSON(500, gin.H{
		"error":    message,
		"status":   "Error",
		"feedback": []string{"Analysis error occurred"},
		"details":  []string{"Unable to process request"},
		"score":    0,
	})
}
