// Package config provides configuration management for the Bundle Manager.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, storefront origin)
//   - Database: session store connection (sqlite or MySQL)
//   - Storage: S3/MinIO credentials for the reconciliation report archive
//   - Shop: Admin GraphQL API version, timeout and an optional static shop token
//   - Discount: reconciliation settings such as tier identity
//   - Log: Logging level and format
//
// Environment variables map onto nested keys by replacing "." with "_",
// so SHOP_API_VERSION sets shop.api_version.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
