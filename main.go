package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"xmlrpc-cms/pkg/config"
	"xmlrpc-cms/pkg/handlers"
	"xmlrpc-cms/pkg/services"
)

func newLogger(env string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if env == "dev" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	return cfg.Build()
}

func main() {
	// Initialize config
	config.Init()

	log, err := newLogger(config.AppEnv)
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	store := services.NewContentStore(config.ContentRoot, log)
	files := services.NewFileStore(log)
	auth := services.NewAuthenticator(config.UsersDir)
	adapter := services.NewAdapter(store, files, auth, log)

	rpc := handlers.NewRPCServer(adapter, log)

	r := gin.Default()

	r.POST("/xmlrpc/api", handlers.XMLRPC(rpc))
	r.GET("/xmlrpc/rsd", handlers.RSD)
	r.Static(config.MediaURLPath, config.MediaDir)

	if err := r.Run(config.ListenAddr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
