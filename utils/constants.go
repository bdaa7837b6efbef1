package utils

import (
	"time"
)

// Token time constants
const (
	// AdminAccessTokenTTL is the default time-to-live for admin access tokens (12 hours)
	AdminAccessTokenTTL = 12 * time.Hour

	// AdminRefreshTokenTTL is the default time-to-live for admin refresh tokens (7 days)
	AdminRefreshTokenTTL = 7 * 24 * time.Hour
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Request handling constants
const (
	// RequestTimeout bounds every handler's business flow call
	RequestTimeout = 30 * time.Second

	// MaxAttachments is the number of file links accepted with a contact request
	MaxAttachments = 10

	// DefaultPageSize and MaxPageSize bound admin list endpoints
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Currency
const (
	RubleCurrency = "RUB"
)
