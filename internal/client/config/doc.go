// Package config loads runtime configuration for the uploader CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. GOPHUPLOAD_* environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8090",
//	  "application_id": "mytestapp",
//	  "workspace_id": "1003452",
//	  "user_id": "1",
//	  "log_level": "debug",
//	  "interactive": true
//	}
//
// Arguments that are neither configuration flags nor their values are left
// for the caller; see Positional.
package config
