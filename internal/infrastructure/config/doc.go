// Package config handles loading and validating Slotboard configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// Dashboard options (the dashboard: block) are carried as-is into the
// strategy resolver; their defaults and deprecated-alias precedence live
// there, not here. Only entry selectors are validated at load time, so a
// broken selector fails at startup instead of rendering an error view
// forever.
//
// Security Considerations:
//   - Sensitive values (hub token, JWT secret) should be set via environment variables
//   - The config file should have restricted permissions (0600)
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Hub.URL)
package config
