package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"authcore/api/handler"
	apiMiddleware "authcore/api/middleware"
	"authcore/api/routes"
	"authcore/config"
	"authcore/internal/repository"
	"authcore/internal/service"
	"authcore/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("load config")
	}

	client, db, err := config.ConnectMongo(cfg.MongoURI, cfg.DatabaseName)
	if err != nil {
		logger.WithError(err).Fatal("connect database")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	if err := repository.EnsureIndexes(indexCtx, db); err != nil {
		cancelIndexes()
		logger.WithError(err).Fatal("ensure indexes")
	}
	cancelIndexes()

	tokens := utils.TokenManager{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		ResetTTL: cfg.ResetTokenTTL,
	}

	var emailSender service.EmailSender
	if cfg.ResendAPIKey != "" && cfg.EmailFrom != "" {
		emailSender = service.NewResendEmailSender(cfg.ResendAPIKey, cfg.EmailFrom)
	} else {
		logger.Warn("no resend api key configured, emails will be logged")
		emailSender = service.LogEmailSender{Logger: logger}
	}

	authService := service.NewAuthService(
		repository.NewUserRepository(db),
		repository.NewVerificationRepository(db),
		repository.NewGroupRepository(db),
		emailSender,
		service.BcryptPasswordHasher{Cost: cfg.BcryptCost},
		tokens,
		service.RealClock{},
		logger,
		service.AuthConfig{
			CodeLength: cfg.CodeLength,
			CodeTTL:    cfg.CodeTTL,
			AppBaseURL: cfg.AppBaseURL,
		},
	)

	validate := validator.New()
	authHandler := handler.NewAuthHandler(authService, validate, logger)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{Tokens: &tokens}
	router := routes.NewRouter(app, authHandler, authMiddleware)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", cfg.HTTPAddr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
