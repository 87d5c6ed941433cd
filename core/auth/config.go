package auth

// Config holds the spreadsheet credentials.
type Config struct {
	// Token is a bearer token sent with every export request. Empty means anonymous.
	Token string `mapstructure:"token" default:""`
	// TimeoutSeconds bounds a single export request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
