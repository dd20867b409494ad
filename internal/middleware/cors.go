package middleware

import (
	"regexp"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var allowedOriginPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://localhost:\d+$`),
	regexp.MustCompile(`^https?://127\.0\.0\.1:\d+$`),
	regexp.MustCompile(`^https?://129\.226\.195\.19(:\d+)?$`),
	regexp.MustCompile(`^https://.*\.ngrok\.io$`),
	regexp.MustCompile(`^https://.*\.ngrok-free\.app$`),
	regexp.MustCompile(`^https://(www\.|app\.)?themoveasy\.com$`),
	regexp.MustCompile(`^https?://(www\.)?mytestkimxyz\.xyz$`),
}

// OriginAllowed reports whether a browser origin may call the API. extra holds
// exact origins added through configuration.
func OriginAllowed(origin string, extra []string) bool {
	for _, p := range allowedOriginPatterns {
		if p.MatchString(origin) {
			return true
		}
	}
	for _, o := range extra {
		if o == origin {
			return true
		}
	}
	return false
}

// CORS allows credentialed requests from the known frontends.
func CORS(extra []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if OriginAllowed(origin, extra) {
				return true
			}
			log.Warn().Str("origin", origin).Msg("CORS blocked origin")
			return false
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
