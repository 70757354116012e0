/**
 * @description
 * Configuration management for the auth service. Settings come from
 * environment variables or a local .env file via Viper.
 *
 * @dependencies
 * - github.com/spf13/viper: For configuration management.
 */
package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	RabbitMQURL    string `mapstructure:"RABBITMQ_URL"`
	ServerPort     string `mapstructure:"SERVER_PORT"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	GoogleClientID string `mapstructure:"GOOGLE_CLIENT_ID"`
	// OTPExposeCode keeps the demo behavior of echoing the OTP in the HTTP
	// response. A real deployment turns this off and relies on the gateway
	// consuming otp.requested events.
	OTPExposeCode bool `mapstructure:"OTP_EXPOSE_CODE"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("JWT_SECRET", "dev-secret")
	viper.SetDefault("OTP_EXPOSE_CODE", true)

	// Bind envs explicitly so containers pick them up reliably
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("JWT_SECRET")
	_ = viper.BindEnv("GOOGLE_CLIENT_ID")
	_ = viper.BindEnv("OTP_EXPOSE_CODE")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: Error reading config file: %s", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
