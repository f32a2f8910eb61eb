package router

import (
	"net/http"
	"time"

	"github.com/thiagofalasca/finance-api/internal/config"
	"github.com/thiagofalasca/finance-api/internal/handler"
	"github.com/thiagofalasca/finance-api/internal/middleware"
	"github.com/thiagofalasca/finance-api/internal/service"
	"github.com/thiagofalasca/finance-api/internal/token"
	"github.com/thiagofalasca/finance-api/internal/validation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires the middleware chain, services and routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.RequestID())
	// the responder must wrap everything that can push errors
	r.Use(middleware.ErrorResponder())

	tokens := token.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpireMinutes)*time.Minute)

	users := service.NewUserService(db, tokens, cfg.Security.BcryptCost)
	categories := service.NewCategoryService(db, users)
	transactions := service.NewTransactionService(db, users, categories,
		service.ParseAmountComparison(cfg.App.AmountComparison))

	userHandler := handler.NewUserHandler(users)
	categoryHandler := handler.NewCategoryHandler(categories)
	transactionHandler := handler.NewTransactionHandler(transactions)
	exportHandler := handler.NewExportHandler(transactions)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	auth := middleware.RequireAuth(tokens)
	admin := middleware.RequireAdmin(tokens)
	audit := middleware.Audit(db)

	// ====== users ======
	api.POST("/users/register",
		validation.Validate(validation.RegisterUserRules()...),
		userHandler.Register(false))
	api.POST("/users/login",
		validation.Validate(validation.LoginRules()...),
		userHandler.Login())
	api.GET("/users/me", auth, audit, userHandler.Me())
	api.PUT("/users/me", auth, audit,
		validation.Validate(validation.UpdateUserRules()...),
		userHandler.Update(false))

	api.GET("/users", admin, audit,
		validation.Validate(validation.ListUsersRules()...),
		userHandler.List())
	api.POST("/users/admins/register", admin, audit,
		validation.Validate(validation.RegisterUserRules()...),
		userHandler.Register(true))
	api.GET("/users/admins/:id", admin, audit,
		validation.Validate(validation.UserIDRules()...),
		userHandler.Get())
	api.PUT("/users/admins/:id", admin, audit,
		validation.Validate(validation.UpdateUserRules()...),
		userHandler.Update(true))
	api.DELETE("/users/admins/:id", admin, audit,
		validation.Validate(validation.UserIDRules()...),
		userHandler.Delete())

	// ====== categories ======
	api.GET("/categories", auth, audit,
		validation.Validate(validation.ListCategoriesRules()...),
		categoryHandler.List(false))
	api.POST("/categories", auth, audit,
		validation.Validate(validation.CreateCategoryRules()...),
		categoryHandler.Create(false))
	api.PUT("/categories/:id", auth, audit,
		validation.Validate(validation.UpdateCategoryRules()...),
		categoryHandler.Update(false))
	api.DELETE("/categories/:id", auth, audit,
		validation.Validate(validation.IDRule(validation.Param, false)),
		categoryHandler.Delete(false))

	api.GET("/admins/categories", admin, audit,
		validation.Validate(validation.ListCategoriesRules()...),
		categoryHandler.List(true))
	api.POST("/admins/categories", admin, audit,
		validation.Validate(validation.CreateCategoryRules()...),
		categoryHandler.Create(true))
	api.PUT("/admins/categories/:id", admin, audit,
		validation.Validate(validation.UpdateCategoryRules()...),
		categoryHandler.Update(true))
	api.DELETE("/admins/categories/:id", admin, audit,
		validation.Validate(validation.IDRule(validation.Param, false)),
		categoryHandler.Delete(true))

	// ====== transactions ======
	api.GET("/transactions", auth, audit,
		validation.Validate(validation.ListTransactionsRules()...),
		transactionHandler.List(false))
	api.POST("/transactions", auth, audit,
		validation.Validate(validation.CreateTransactionRules()...),
		transactionHandler.Create(false))
	api.PUT("/transactions/:id", auth, audit,
		validation.Validate(validation.UpdateTransactionRules()...),
		transactionHandler.Update(false))
	api.DELETE("/transactions/:id", auth, audit,
		validation.Validate(validation.IDRule(validation.Param, false)),
		transactionHandler.Delete(false))
	api.GET("/transactions/report", auth, audit,
		validation.Validate(validation.ReportRules()...),
		transactionHandler.Report())
	api.GET("/transactions/export/csv", auth, audit, exportHandler.CSV())
	api.GET("/transactions/export/xlsx", auth, audit, exportHandler.XLSX())

	api.GET("/admins/transactions", admin, audit,
		validation.Validate(validation.ListTransactionsRules()...),
		transactionHandler.List(true))
	api.POST("/admins/transactions", admin, audit,
		validation.Validate(validation.CreateTransactionRules()...),
		transactionHandler.Create(true))
	api.PUT("/admins/transactions/:id", admin, audit,
		validation.Validate(validation.UpdateTransactionRules()...),
		transactionHandler.Update(true))
	api.DELETE("/admins/transactions/:id", admin, audit,
		validation.Validate(validation.IDRule(validation.Param, false)),
		transactionHandler.Delete(true))

	return r
}
