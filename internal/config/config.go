// config.go
package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI       string
	MongoDBName    string
	RabbitURL      string
	EventsExchange string
	Port           string
}

func Load() *Config {
	// .env es opcional; en docker las variables vienen del entorno
	_ = godotenv.Load()

	return &Config{
		MongoURI:       getEnv("MONGO_URI", "mongodb://host.docker.internal:27017"),
		MongoDBName:    getEnv("MONGO_DB_NAME", "order_tracking_db"),
		RabbitURL:      getEnv("RABBIT_URL", "amqp://host.docker.internal"),
		EventsExchange: getEnv("ORDER_EVENTS_EXCHANGE", "order_events"),
		Port:           getEnv("PORT", "8080"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
