package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS - middleware для настройки Cross-Origin Resource Sharing.
// allowOrigins - список через запятую из CORS_ALLOW_ORIGINS.
func CORS(allowOrigins string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  allowOrigins,
		AllowMethods:  "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:  "Content-Type,Accept,Accept-Language,Authorization,X-Request-ID",
		ExposeHeaders: "X-Request-ID",
		// credentials несовместимы с "*"
		AllowCredentials: allowOrigins != "*",
	})
}
