// Package config defines application configuration and loading logic.
package config
