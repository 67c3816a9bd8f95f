package utils

const (
	UserCreated  = "User created successfully"
	UserFetched  = "User retrieved"
	UserUpdated  = "User updated successfully"
	UserDeleted  = "User deleted successfully"
	TokenCreated = "Token issued"
	TokenFetched = "Token retrieved"
	TokenDeleted = "Token revoked"
	CheckCreated = "Check created successfully"
	CheckFetched = "Check retrieved"
	CheckUpdated = "Check updated successfully"
	CheckDeleted = "Check deleted successfully"
)
