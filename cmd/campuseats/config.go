package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	endpoint      string
	dsn           string
	redisAddr     string
	natsURL       string
	logLevel      string
	env           string
	authSecretKey string
}

func generateRandomString(length int) string {
	b := make([]byte, length)
	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}
	return base64.StdEncoding.EncodeToString(b)
}

func NewConfig() Config {
	var (
		endpoint      string
		dsn           string
		redisAddr     string
		natsURL       string
		logLevel      string
		env           string
		authSecretKey string
	)

	// .env может отсутствовать, это не ошибка.
	_ = godotenv.Load()

	flag.StringVar(&endpoint, "a", "localhost:8090", "address and port to run server")
	flag.StringVar(&dsn, "d", "", "data source name for database connection")
	flag.StringVar(&redisAddr, "r", "", "redis address for menu cache")
	flag.StringVar(&natsURL, "n", "", "nats url for notification mirroring")
	flag.Parse()

	if address := os.Getenv("RUN_ADDRESS"); address != "" {
		endpoint = address
	}

	if d := os.Getenv("DATABASE_URI"); d != "" {
		dsn = d
	}

	if r := os.Getenv("REDIS_ADDR"); r != "" {
		redisAddr = r
	}

	if n := os.Getenv("NATS_URL"); n != "" {
		natsURL = n
	}

	if l := os.Getenv("LOG_LEVEL"); l != "" {
		logLevel = l
	} else {
		logLevel = "error"
	}

	if e := os.Getenv("ENV"); e != "" {
		env = e
	} else {
		env = "production"
	}

	if secret := os.Getenv("AUTH_SECRET_KEY"); secret != "" {
		authSecretKey = secret
	} else {
		if env == "production" {
			authSecretKey = generateRandomString(10)
			log.Printf("WARNING: AUTH_SECRET_KEY has to be defined for production environment\n")
		} else {
			authSecretKey = "development-key"
		}
	}

	return Config{
		endpoint,
		dsn,
		redisAddr,
		natsURL,
		logLevel,
		env,
		authSecretKey,
	}
}
