package message

const (
	InvalidInput    = "Invalid input."
	InvalidURL      = "Invalid URL. Must start with http:// or https://"
	URLRequired     = "URL is required"
	LinkNotFound    = "URL not found"
	InvalidPassword = "Invalid password."
	InvalidToken    = "Invalid or missing token."
	EnvErrFmt       = "environment variable is not set: %s"
)
