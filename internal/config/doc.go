// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation. An
// optional dotenv file is loaded into the process environment before expansion, so the
// deployment .env (POKTPOOLDB_HOST, WAXTRAX_PASSWORD, APP_LOGIN_EMAIL, ...) can drive the
// same YAML template in every environment.
package config
