// Package config loads environment variables into typed structs and caches
// the result per type.
//
// Parsing is done by caarlos0/env; a .env file in the working directory is
// read once through joho/godotenv before the first parse.
//
//	var trackerCfg expiry.Config
//	if err := config.Load(&trackerCfg); err != nil {
//		return err
//	}
//
//	var redisCfg redis.Config
//	config.MustLoad(&redisCfg) // panics, for startup code
//
// Each type is parsed once; later Load calls for the same type return the
// cached value even if the environment changed. Tests that change the
// environment between loads call Reset.
package config
