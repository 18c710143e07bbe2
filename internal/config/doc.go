// Package config provides configuration loading, merging, and validation
// facilities for the sync engine.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win; later sources only fill fields still unset):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
package config
