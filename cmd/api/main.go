package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"community/internal/config"
	"community/internal/database"
	"community/internal/middleware"
	"community/internal/modules/auth"
	"community/internal/modules/member"
	"community/internal/pkg/response"
	"community/internal/pkg/token"
	"community/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}

	cfg, err := config.LoadAuthConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	codec := token.NewCodec(cfg.SecretKey, cfg.Issuer)

	memberRepo := repository.NewMemberRepository(db)
	recordRepo := repository.NewRefreshRecordRepository(db)
	authenticator := member.NewAuthenticator(memberRepo)

	authService := auth.NewService(
		authenticator,
		recordRepo,
		codec,
		cfg.AccessTTL,
		cfg.RefreshTTL,
		cfg.PendingRefreshTTL,
	)
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		Secure:   cfg.CookieSecure,
		SameSite: sameSiteFrom(cfg.CookieSameSite),
	})

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.TokenGuard(codec))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// login, reissue, logout
	authHandler.RegisterRoutes(r)

	v1 := r.Group("/api/v1")
	{
		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth())
		{
			// Principal comes from token claims only; no DB lookup.
			protected.GET("/me", func(c *gin.Context) {
				principal, _ := middleware.PrincipalFrom(c)
				response.Success(c, http.StatusOK, gin.H{"principal": principal})
			})
		}
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}

func sameSiteFrom(value string) http.SameSite {
	switch value {
	case "None", "none":
		return http.SameSiteNoneMode
	case "Strict", "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}
