// Package constants centralizes table names and context keys.
package constants

// Database table names.
const (
	TableUsers               = "users"
	TableDevices             = "devices"
	TableActivationTokens    = "activation_tokens"
	TableResetPasswordTokens = "reset_password_tokens"
	TableNotifications       = "notifications"
	TableMeasurements        = "measurements"
)

// Gin context keys set by the auth middleware.
const (
	ContextKeyUserEmail  = "user_email"
	ContextKeyIsDevice   = "is_device"
	ContextKeyDeviceUUID = "device_uuid"
)

// BearerPrefix is the Authorization scheme prefix for JWT credentials.
const BearerPrefix = "Bearer "
