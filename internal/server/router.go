// Package server wires services, handlers and middleware into the HTTP router.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"spendwise/internal/config"
	_ "spendwise/internal/docs" // Import swagger docs
	"spendwise/internal/handlers"
	"spendwise/internal/middleware"
	"spendwise/internal/services"
)

// Services bundles the business services the router depends on.
type Services struct {
	Users        services.UserServicer
	Sessions     services.SessionServicer
	Transactions services.TransactionServicer
	Tags         services.TagServicer
	Audit        services.AuditServicer
}

// NewServices builds the production services over db.
func NewServices(db *gorm.DB, cfg *config.Config) *Services {
	userService := services.NewUserService(db)
	tagService := services.NewTagService(db, userService)

	return &Services{
		Users:        userService,
		Sessions:     services.NewSessionService(db, cfg.SessionSecret, cfg.SessionTTL),
		Transactions: services.NewTransactionService(db, tagService),
		Tags:         tagService,
		Audit:        services.NewAuditService(db),
	}
}

// NewRouter returns the Gin engine serving the API.
func NewRouter(cfg *config.Config, svc *Services) *gin.Engine {
	cookie := handlers.CookieConfig{
		Name:   cfg.SessionCookieName,
		MaxAge: cfg.SessionTTL,
		Secure: cfg.SessionCookieSecure,
	}

	authHandler := handlers.NewAuthHandler(svc.Users, svc.Sessions, cookie)
	userHandler := handlers.NewUserHandler(svc.Users)
	transactionHandler := handlers.NewTransactionHandler(svc.Transactions, svc.Audit)
	tagHandler := handlers.NewTagHandler(svc.Tags)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSOrigin))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Every route sees the session; services decide what anonymous callers may do.
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Session(svc.Sessions, cfg.SessionCookieName))

	auth := v1.Group("/auth")
	auth.POST("/signup", authHandler.SignUp)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me)

	users := v1.Group("/users")
	users.GET("", userHandler.ListUsers)
	users.GET("/:id", userHandler.GetUser)
	users.GET("/:id/tags", tagHandler.UserTags)
	users.POST("/:id/tags", tagHandler.AddUserTag)
	users.DELETE("/:id/transactions", transactionHandler.DeleteAllTransactions)

	transactions := v1.Group("/transactions")
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PATCH("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	v1.GET("/statistics/categories", transactionHandler.CategoryStatistics)

	tags := v1.Group("/tags")
	tags.GET("", tagHandler.ListTags)
	tags.POST("", tagHandler.CreateTag)

	customTags := v1.Group("/custom-tags")
	customTags.GET("", tagHandler.ListCustomTags)
	customTags.POST("", tagHandler.CreateCustomTag)

	return router
}
