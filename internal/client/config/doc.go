// Package config loads runtime configuration for the bloglist CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. BLOGLIST_CLIENT_* environment variables.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the bloglist HTTP API
//	-i int      online status check interval (seconds)
//	-w int      request timeout (seconds)
//
// # JSON schema
//
// Durations are timex.Duration values, either strings like "3s" or integer
// nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:3003",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s"
//	}
package config
