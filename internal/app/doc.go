// Package app wires application dependencies for the CLI.
//
// It loads Config (defaults, then <home>/config.yaml, then SUICHAT_*
// environment variables; flags are applied by the CLI on top), and builds
// the concrete stores, collaborator clients and services, exposing them via
// the Wire struct for commands to use.
package app
