// Package http wires the gin router.
package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authusecases "iothub/internal/application/auth/usecases"
	deviceusecases "iothub/internal/application/device/usecases"
	measurementusecases "iothub/internal/application/measurement/usecases"
	notificationusecases "iothub/internal/application/notification/usecases"
	"iothub/internal/infrastructure/auth"
	"iothub/internal/infrastructure/repository"
	"iothub/internal/interfaces/http/handlers"
	"iothub/internal/interfaces/http/middleware"
	"iothub/internal/shared/config"
	"iothub/internal/shared/db"
	"iothub/internal/shared/logger"
)

// RouterDeps are the external dependencies the router needs.
type RouterDeps struct {
	DB     *gorm.DB
	Signer *auth.Signer
	Mail   authusecases.MailDispatcher
	Auth   *config.AuthConfig
	Mode   string
	Logger logger.Interface
}

// NewRouter builds the engine with all routes and middleware attached.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(ginMode(deps.Mode))

	engine := gin.New()
	engine.Use(
		middleware.Recovery(deps.Logger),
		middleware.RequestLogger(deps.Logger),
		middleware.CORS(),
	)

	users := repository.NewGormUserRepository(deps.DB)
	devices := repository.NewGormDeviceRepository(deps.DB)
	activations := repository.NewGormActivationTokenRepository(deps.DB)
	resets := repository.NewGormResetPasswordTokenRepository(deps.DB)
	notifications := repository.NewGormNotificationRepository(deps.DB)
	measurements := repository.NewGormMeasurementRepository(deps.DB)

	tx := db.NewTransactionManager(deps.DB)
	hasher := auth.NewPasswordHasher(deps.Auth.Password.BcryptCost)
	codes := auth.NewShortCodeGenerator()

	authHandler := handlers.NewAuthHandler(
		authusecases.NewRegisterUseCase(
			users, activations, hasher, codes, deps.Mail, tx,
			deps.Auth.Token.ActivationCodeLength, deps.Logger,
		),
		authusecases.NewLoginUseCase(users, hasher, deps.Signer, deps.Logger),
		authusecases.NewValidateSessionUseCase(users, deps.Signer),
		deps.Logger,
	)
	deviceAuthHandler := handlers.NewDeviceAuthHandler(
		authusecases.NewAuthenticateDeviceUseCase(users, devices, hasher, deps.Signer, deps.Logger),
		authusecases.NewRefreshDeviceTokenUseCase(users, devices, deps.Signer, deps.Logger),
		deps.Logger,
	)
	activationHandler := handlers.NewActivationHandler(
		authusecases.NewVerifyActivationUseCase(users, activations, tx, deps.Logger),
		deps.Logger,
	)
	resetHandler := handlers.NewResetPasswordHandler(
		authusecases.NewRequestPasswordResetUseCase(
			users, resets, codes, deps.Mail,
			deps.Auth.Token.ResetCodeLength,
			time.Duration(deps.Auth.Token.ResetExpiresMinutes)*time.Minute,
			deps.Logger,
		),
		authusecases.NewConfirmPasswordResetUseCase(
			users, resets, hasher, tx,
			deps.Auth.Token.ResetMaxAttempts, deps.Logger,
		),
		deps.Logger,
	)
	deviceHandler := handlers.NewDeviceHandler(
		deviceusecases.NewRegisterDeviceUseCase(users, devices, deps.Logger),
		deviceusecases.NewListDevicesUseCase(users, devices),
		deps.Logger,
	)
	notificationHandler := handlers.NewNotificationHandler(
		notificationusecases.NewListNotificationsUseCase(users, devices, notifications),
		deps.Logger,
	)
	measurementHandler := handlers.NewMeasurementHandler(
		measurementusecases.NewAddMeasurementUseCase(devices, measurements, deps.Logger),
		measurementusecases.NewListMeasurementsUseCase(users, devices, measurements),
		deps.Logger,
	)

	requireAuth := middleware.Auth(deps.Signer, deps.Logger)

	v1 := engine.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/is-token-valid", authHandler.IsTokenValid)
			authGroup.POST("/device", deviceAuthHandler.Login)
			authGroup.POST("/device/refresh", deviceAuthHandler.Refresh)
		}

		v1.POST("/activation-token/verify", activationHandler.Verify)

		resetGroup := v1.Group("/reset-password-token")
		{
			resetGroup.POST("/send", resetHandler.Send)
			resetGroup.POST("/reset", resetHandler.Reset)
		}

		userGroup := v1.Group("", requireAuth, middleware.RequireUser())
		{
			userGroup.GET("/devices", deviceHandler.List)
			userGroup.POST("/devices", deviceHandler.Register)
			userGroup.GET("/devices/:deviceId/notifications", notificationHandler.List)
			userGroup.GET("/devices/:deviceId/measurements", measurementHandler.List)
		}

		deviceGroup := v1.Group("", requireAuth, middleware.RequireDevice())
		{
			deviceGroup.POST("/measurements", measurementHandler.Add)
		}
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return engine
}

func ginMode(mode string) string {
	switch mode {
	case "release", "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
