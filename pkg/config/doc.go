// Package config loads typed configuration from environment variables.
//
// Struct fields are mapped with github.com/caarlos0/env tags; a .env file is
// read through github.com/joho/godotenv before the first parse. Every
// configuration type is parsed once per process and cached, so packages can
// call Load for their own config struct without coordinating.
package config
