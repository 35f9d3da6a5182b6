package models

const (
	// HeaderUserID carries the caller's user id on every request.
	HeaderUserID = "X-Sharer-User-Id"

	// DefaultPageSize is used when a listing request omits size.
	DefaultPageSize = 10

	// ExportRowLimit caps the number of bookings written to one export.
	ExportRowLimit = 1000

	// RequestDescriptionMax is the longest accepted item request description.
	RequestDescriptionMax = 100

	// DefaultItemCacheTTL is the lifetime of a cached item in seconds.
	DefaultItemCacheTTL = 10 * 60

	// RateLimitRequests is the default number of requests per user in a window.
	RateLimitRequests = 100

	// RateLimitWindow is the default rate limit window in seconds.
	RateLimitWindow = 60
)
