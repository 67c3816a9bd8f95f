package apperror

type Kind string

const (
	// --- Request ---
	InvalidInput   Kind = "invalid_input"
	Unauthorised   Kind = "unauthorised"
	Forbidden      Kind = "forbidden"
	RequestTimeout Kind = "request_timeout"

	// --- Records ---
	AlreadyExists Kind = "already_exist"
	NotFound      Kind = "not_found"
	Conflict      Kind = "conflict"
	LimitReached  Kind = "limit_reached"

	// --- Infrastructure ---
	Internal    Kind = "internal"
	Dependency  Kind = "dependency_failure"
	DatabaseErr Kind = "database_error"
	StorageErr  Kind = "storage_error"
)
