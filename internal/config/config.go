package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	DBDSN    string
	MediaDir string
	LogFile  string

	// DecrementStockOnCheckout controls whether checkout debits product
	// stock. Off by default: reservation happens at fulfillment.
	DecrementStockOnCheckout bool
}

func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("[config] loaded .env")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "pawhaven.db" // sqlite file in project root
	}
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./web/media"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./pawhaven.log"
	}
	decStock := os.Getenv("STOCK_DECREMENT_ON_CHECKOUT") == "true"

	cfg := Config{
		Port:                     port,
		DBDSN:                    dsn,
		MediaDir:                 media,
		LogFile:                  logFile,
		DecrementStockOnCheckout: decStock,
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s STOCK_DECREMENT_ON_CHECKOUT=%v",
		cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile, cfg.DecrementStockOnCheckout)
	return cfg
}
