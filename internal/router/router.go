package router

import (
	"net/http"
	"time"

	"github.com/NOTIVEAPP/notive-backend/internal/config"
	"github.com/NOTIVEAPP/notive-backend/internal/handler"
	"github.com/NOTIVEAPP/notive-backend/internal/middleware"
	"github.com/NOTIVEAPP/notive-backend/internal/service"
	"github.com/NOTIVEAPP/notive-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRouter wires services, middleware and the route table.
func SetupRouter(cfg *config.Config, db *gorm.DB, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	authSvc := service.NewAuthService(db, cfg.Security.BcryptCost)
	sessions := service.NewSessionService(db, cfg.Auth.SessionSecret, time.Duration(cfg.Auth.SessionHours)*time.Hour)
	lists := service.NewListService(db)
	items := service.NewItemService(db, lists)
	backups := service.NewBackupService(db, lists, items, cfg.Security.EncryptionKey, cfg.Backup.Dir)
	export := service.NewExportService(lists, items)

	r := gin.New()
	r.Use(
		middleware.Recovery(logger),
		middleware.Metrics(),
		middleware.RequestLogger(logger),
		middleware.Session(sessions, cfg.Auth.CookieName, logger),
		middleware.Audit(db, cfg.Security.EncryptionKey, logger),
	)

	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			logger.Error("health check", zap.Error(err))
			util.Error(c, http.StatusServiceUnavailable, "unavailable")
			return
		}
		util.Success(c, http.StatusOK, "ok", nil)
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := handler.NewAuthHandler(authSvc, sessions, cfg.Auth, cfg.Foursquare, logger)
	userHandler := handler.NewUserHandler(authSvc, logger)
	listHandler := handler.NewListHandler(lists, logger)
	itemHandler := handler.NewItemHandler(items, logger)
	logHandler := handler.NewLogHandler(db, cfg.Security.EncryptionKey, logger)
	exportHandler := handler.NewExportHandler(export, logger)
	backupHandler := handler.NewBackupHandler(backups, logger)

	// no key, no login
	r.GET("/auth/logout", authHandler.Logout)

	keyed := r.Group("", middleware.APIKey(cfg.Auth.APIKey))
	keyed.POST("/auth/register", authHandler.Register)
	keyed.POST("/auth/login", authHandler.Login)
	keyed.GET("/auth/fsq_access", authHandler.FoursquareAccess)

	protected := keyed.Group("", middleware.LoginRequired())

	protected.PUT("/auth/update_password", authHandler.UpdatePassword)
	protected.GET("/auth/me", userHandler.Me)
	protected.PUT("/auth/profile", userHandler.UpdateProfile)

	protected.GET("/list", listHandler.ListAll)
	protected.POST("/list", listHandler.Create)
	protected.GET("/list/:id", listHandler.Get)
	protected.PUT("/list/:id", listHandler.Rename)
	protected.DELETE("/list/:id", listHandler.Delete)
	protected.PUT("/list/:id/mute", listHandler.ToggleMute)
	protected.PUT("/list/:id/archive", listHandler.ToggleArchive)

	protected.POST("/item", itemHandler.Create)
	protected.PUT("/item/:list_id/:item_id", itemHandler.Update)
	protected.PUT("/item/:list_id/:item_id/check", itemHandler.ToggleDone)
	protected.DELETE("/item/:list_id/:item_id", itemHandler.Delete)

	protected.GET("/logs", logHandler.ListLogs)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	protected.POST("/backups", backupHandler.Create)
	protected.GET("/backups", backupHandler.List)
	protected.GET("/backups/:id/download", backupHandler.Download)
	protected.DELETE("/backups/:id", backupHandler.Delete)

	// item reads only need a login
	reads := r.Group("", middleware.LoginRequired())
	reads.GET("/item", itemHandler.ListAll)
	reads.GET("/item/:list_id", itemHandler.ListForList)
	reads.GET("/item/:list_id/:item_id", itemHandler.Get)

	return r
}
