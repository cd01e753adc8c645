package constants

// Viper configuration keys. AutomaticEnv maps them to upper-cased env vars
// (e.g. ViperDatabaseURL -> DATABASE_URL).
const (
	ViperHTTPAddr    = "http_addr"
	ViperDatabaseURL = "database_url"
	ViperRedisAddr   = "redis_addr"
	ViperCORSOrigin  = "cors_origin"

	ViperJWTSecret  = "jwt_secret"
	ViperAdminToken = "admin_api_token"

	ViperGroqAPIKey = "groq_api_key"
	ViperGroqModel  = "groq_model"
	ViperHFAPIKey   = "huggingface_api_key"
	ViperHFModel    = "hf_text_model"
	ViperHFEndpoint = "hf_endpoint"

	ViperBillingWebhookSecret = "billing_webhook_secret"
)

const (
	CtxKeyUserID    = "user_id"
	CtxKeyAPIClient = "api_client"

	CookieKeyAuthToken = "auth_token"

	HeaderAdminToken = "x-admin-token"
)
