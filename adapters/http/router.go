package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/howlerhq/howler-api/internal/domain/library"
	"github.com/howlerhq/howler-api/internal/domain/source"
	"github.com/howlerhq/howler-api/pkg/auth"
	"github.com/howlerhq/howler-api/pkg/ratelimit"
)

type RouterDeps struct {
	Store     *library.Store
	Registry  *source.Registry
	JWTSvc    *auth.JWTService
	Limiter   *ratelimit.Limiter
	Auth      *AuthHandler
	Library   *LibraryHandler
	Accounts  *AccountHandler
	Scraper   *ScraperHandler
	Instagram *InstagramHandler
	Proxy     *ProxyHandler
}

// NewRouter assembles the full route table. Mutating scraper and
// library endpoints sit behind the admin JWT; the Instagram fetch path
// additionally sits behind the rate limiter.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.Default()
	router.Use(CORSMiddleware())

	authRequired := AuthMiddleware(deps.JWTSvc)
	rateLimited := RateLimitMiddleware(deps.Limiter)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "ok",
			"message":         "Howler API",
			"librarySize":     deps.Store.Len(),
			"trackedAccounts": deps.Registry.Len(),
		})
	})

	api := router.Group("/api")
	{
		api.POST("/admin/auth/login", deps.Auth.Login)

		api.GET("/instagram/:username", rateLimited, deps.Instagram.Lookup)
		api.GET("/proxy/image", deps.Proxy.Image)

		libraryGroup := api.Group("/library")
		{
			libraryGroup.GET("", deps.Library.List)
			libraryGroup.GET("/stats", deps.Library.Stats)
			libraryGroup.POST("/mark-used/:id", authRequired, deps.Library.MarkUsed)
			libraryGroup.DELETE("/:id", authRequired, deps.Library.Delete)
		}

		scraperGroup := api.Group("/scraper")
		{
			scraperGroup.GET("/config", deps.Scraper.GetConfig)
			scraperGroup.POST("/config", authRequired, deps.Scraper.UpdateConfig)
			scraperGroup.POST("/run", authRequired, deps.Scraper.Run)

			scraperGroup.GET("/accounts", deps.Accounts.List)
			scraperGroup.POST("/accounts", authRequired, deps.Accounts.Add)
			scraperGroup.DELETE("/accounts/:username", authRequired, deps.Accounts.Remove)
		}
	}

	return router
}
