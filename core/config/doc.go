// Package config provides configuration management for the identity service.
//
// Values are read from environment variables, optionally seeded from a .env file
// through godotenv, and decoded with Viper. Defaults come from the `default`
// struct tags of each section. LoadConfig validates the result and returns an
// error wrapping ErrInvalidConfig for an unusable port, driver or bucket.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP port and API key
//   - Log: logging level and format
//   - Storage: MinIO/S3 credentials for spreadsheet snapshots
//   - Database: settings database (sqlite or MySQL)
//   - Auth: spreadsheet access token
//   - Identity: seed manifests, cache and refresh intervals
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
