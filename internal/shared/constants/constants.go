package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// gin context keys set by middleware
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"
	ContextKeyUserEmail = "user_email"

	AccessTokenCookie = "access_token"

	TableMenus               = "menus"
	TableSubscriptions       = "subscriptions"
	TableSubscriptionPeriods = "subscription_periods"
	TableDeliveries          = "deliveries"
)

// User roles carried in access tokens.
const (
	RoleSubscriber  = "subscriber"
	RoleChef        = "chef"
	RoleDeliveryman = "deliveryman"
	RoleAdmin       = "admin"
)
