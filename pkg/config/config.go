package config

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strconv"
)

func New() (Config, error) {
	privateKey, err := privateKeyFromEnv("PRIVATE_KEY")
	if err != nil {
		return Config{}, err
	}

	accessTokenExpiration, err := requireEnvAsInt("ACCESS_TOKEN_EXPIRATION_SECONDS")
	if err != nil {
		return Config{}, err
	}
	refreshTokenExpiration, err := requireEnvAsInt("REFRESH_TOKEN_EXPIRATION_SECONDS")
	if err != nil {
		return Config{}, err
	}
	refreshTokenSecretKey, err := requireEnv("REFRESH_TOKEN_SECRET_KEY")
	if err != nil {
		return Config{}, err
	}

	postgresql, err := newPostgresql()
	if err != nil {
		return Config{}, err
	}

	redis, err := newRedis()
	if err != nil {
		return Config{}, err
	}

	smtp, err := newSMTP()
	if err != nil {
		return Config{}, err
	}

	uiURL, err := requireEnv("UI_URL")
	if err != nil {
		return Config{}, err
	}

	return Config{
		UIURL:                         uiURL,
		PrivateKey:                    privateKey,
		AccessTokenExpirationSeconds:  accessTokenExpiration,
		RefreshTokenSecretKey:         refreshTokenSecretKey,
		RefreshTokenExpirationSeconds: refreshTokenExpiration,
		Postgresql:                    postgresql,
		Redis:                         redis,
		SMTP:                          smtp,
	}, nil
}

type Config struct {
	UIURL                         string
	PrivateKey                    *rsa.PrivateKey
	AccessTokenExpirationSeconds  int
	RefreshTokenSecretKey         string
	RefreshTokenExpirationSeconds int
	Postgresql                    Postgresql
	Redis                         Redis
	SMTP                          SMTP
}

type Postgresql struct {
	Host         string
	Port         int
	Username     string
	Password     string
	DatabaseName string
}

func newPostgresql() (Postgresql, error) {
	host, err := requireEnv("DATABASE_HOST")
	if err != nil {
		return Postgresql{}, err
	}
	port, err := requireEnvAsInt("DATABASE_PORT")
	if err != nil {
		return Postgresql{}, err
	}
	username, err := requireEnv("DATABASE_USERNAME")
	if err != nil {
		return Postgresql{}, err
	}
	password, err := requireEnv("DATABASE_PASSWORD")
	if err != nil {
		return Postgresql{}, err
	}
	name, err := requireEnv("DATABASE_NAME")
	if err != nil {
		return Postgresql{}, err
	}

	return Postgresql{
		Host:         host,
		Port:         port,
		Username:     username,
		Password:     password,
		DatabaseName: name,
	}, nil
}

type Redis struct {
	Host string
	Port int
}

func newRedis() (Redis, error) {
	host, err := requireEnv("REDIS_HOST")
	if err != nil {
		return Redis{}, err
	}
	port, err := requireEnvAsInt("REDIS_PORT")
	if err != nil {
		return Redis{}, err
	}
	return Redis{Host: host, Port: port}, nil
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
}

func newSMTP() (SMTP, error) {
	host, err := requireEnv("SMTP_HOST")
	if err != nil {
		return SMTP{}, err
	}
	port, err := requireEnvAsInt("SMTP_PORT")
	if err != nil {
		return SMTP{}, err
	}
	username, err := requireEnv("SMTP_USERNAME")
	if err != nil {
		return SMTP{}, err
	}
	password, err := requireEnv("SMTP_PASSWORD")
	if err != nil {
		return SMTP{}, err
	}
	return SMTP{Host: host, Port: port, Username: username, Password: password}, nil
}

func privateKeyFromEnv(key string) (*rsa.PrivateKey, error) {
	keyData, err := requireEnv(key)
	if err != nil {
		return nil, err
	}

	block, _ := pem.Decode([]byte(keyData))
	if block == nil {
		return nil, errors.New("failed to decode PEM block containing private key")
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %v", err)
	}

	return privateKey, nil
}

func requireEnv(key string) (string, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return "", fmt.Errorf("can't find environment variable: %s", key)
	}
	return value, nil
}

func requireEnvAsInt(key string) (int, error) {
	valueStr, err := requireEnv(key)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("can't parse %s as integer: %v", key, err)
	}
	return value, nil
}
