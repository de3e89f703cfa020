package xapiclient

// API Base Configuration
const (
	// GAME proxy in front of the X API v2; accepts the token as x-api-key.
	GAME_API_HOST = "https://twitter.game-api.virtuals.io/tweets"
	// Direct X API v2 host; accepts the token as a bearer token.
	X_API_HOST = "https://api.x.com"
)

// Auth schemes
const (
	AUTH_SCHEME_API_KEY = "api_key"
	AUTH_SCHEME_BEARER  = "bearer"
)

// header keys
const (
	HEADER_API_KEY    = "x-api-key"
	HEADER_USER_AGENT = "User-Agent"
)

const (
	USER_AGENT = "xSmoke/1.0"
)

// v2 endpoints, relative to the API host
const (
	// User-related endpoints
	API_USERS_ME         = "/2/users/me"
	API_USER_BY_USERNAME = "/2/users/by/username/%s"
	API_USER_LIKES       = "/2/users/%s/likes"
	API_USER_MENTIONS    = "/2/users/%s/mentions"

	// Tweet-related endpoints
	API_TWEETS               = "/2/tweets"
	API_TWEETS_SEARCH_RECENT = "/2/tweets/search/recent"
)

// query parameter names
const (
	QUERY_USER_FIELDS = "user.fields"
	QUERY_QUERY       = "query"
	QUERY_MAX_RESULTS = "max_results"
)

// user.fields values
const (
	USER_FIELD_PUBLIC_METRICS = "public_metrics"
)

// Response Path Constants
const (
	PATH_ERRORS            = "errors"
	PATH_META_RESULT_COUNT = "meta.result_count"
	PATH_META_NEWEST_ID    = "meta.newest_id"
	PATH_META_OLDEST_ID    = "meta.oldest_id"
	PATH_META_NEXT_TOKEN   = "meta.next_token"
)

// rate limit headers
const (
	HEADER_RATE_LIMIT_LIMIT     = "X-Rate-Limit-Limit"
	HEADER_RATE_LIMIT_REMAINING = "X-Rate-Limit-Remaining"
	HEADER_RATE_LIMIT_RESET     = "X-Rate-Limit-Reset"
)
