package main

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Alphy12345/Alp-version-hal-cost-estimation/api"
	"github.com/Alphy12345/Alp-version-hal-cost-estimation/config"
	"github.com/Alphy12345/Alp-version-hal-cost-estimation/database"
	"github.com/Alphy12345/Alp-version-hal-cost-estimation/handlers"
	"github.com/Alphy12345/Alp-version-hal-cost-estimation/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}
	gin.SetMode(cfg.GinMode)

	if err := database.InitDB(cfg.DBPath, cfg.AdminUser, cfg.AdminPassword); err != nil {
		logrus.WithError(err).Fatal("init database")
	}

	client := api.NewClient(
		cfg.BackendURL,
		time.Duration(cfg.RequestTimeout)*time.Second,
		time.Duration(cfg.RefDataTTL)*time.Second,
	)
	h := handlers.New(client)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	r.LoadHTMLGlob("templates/*")

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("cost_console_session", store))

	r.GET("/login", handlers.ShowLogin)
	r.POST("/login", handlers.Login)
	r.GET("/logout", handlers.Logout)

	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/", h.ShowEstimate)
		authorized.GET("/estimate", h.ShowEstimate)
		authorized.GET("/estimate/machines", h.MachineOptions)
		authorized.POST("/estimate/calculate", h.Calculate)
		authorized.POST("/estimate/pdf", h.ExportPDF)

		admin := authorized.Group("/config")
		admin.Use(middleware.AdminRequired())
		{
			admin.GET("", h.ShowConfig)
			admin.POST("/machines", h.AddMachine)
			admin.POST("/machines/update", h.UpdateMachine)
			admin.POST("/machines/delete", h.DeleteMachine)
			admin.POST("/operation-types", h.AddOperationType)
			admin.POST("/operation-types/delete", h.DeleteOperationType)
			admin.POST("/mhr", h.AddMHR)
			admin.POST("/mhr/update", h.UpdateMHR)
			admin.POST("/mhr/delete", h.DeleteMHR)
		}
	}

	logrus.WithFields(logrus.Fields{
		"port":    cfg.Port,
		"backend": cfg.BackendURL,
	}).Info("starting cost console")

	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
