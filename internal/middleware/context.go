package middleware

// Context keys used to store request metadata.
const (
	ContextKeyServiceName = "service_name"
	ContextKeyRequestID   = "request_id"
)
