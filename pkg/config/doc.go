// Package config loads typed configuration structs from environment
// variables and optional YAML files.
//
// Load fills a struct from `env` tags using github.com/caarlos0/env and
// bootstraps a local .env file with github.com/joho/godotenv on first use.
// LoadFile resolves the environment first and then overlays a YAML document
// (gopkg.in/yaml.v3, `yaml` tags), so a file can pin values for one deployment
// while secrets stay in the environment.
//
//	var cfg mbuzz.Config
//	if err := config.LoadFile("mbuzz.yaml", &cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Loaders return values; nothing is cached in package state, so each caller
// owns its configuration and can pass it explicitly to the components that
// need it.
package config
