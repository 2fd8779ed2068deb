// Package config handles application configuration loading and validation.
//
// Configuration is read from a YAML file and validated using struct tags.
// Every key is optional: a missing implicit config file yields Defaults(), and
// command line flags are applied on top by the caller.
package config
