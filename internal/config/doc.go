// Package config provides configuration loading, merging, and validation
// for both EchoTask processes.
//
// Configuration is assembled from multiple sources in the following
// priority order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file (path taken from sources 1 and 2)
//
// [GetServerConfig] builds the validated view for the sync server;
// [GetClientConfig] builds the validated view for the client sync agent.
package config
