package config

import "go.uber.org/zap"

// setLogger picks the zap configuration for the environment the api is running in
func setLogger(env string) (*zap.Logger, error) {
	switch env {
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	default:
		return zap.NewExample(), nil
	}
}
