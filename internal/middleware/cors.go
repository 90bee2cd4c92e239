// cors.go
package middleware

import "github.com/gin-gonic/gin"

// CORS agrega los headers permisivos que esperan los clientes del
// dashboard. Responde los preflight OPTIONS directamente.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
