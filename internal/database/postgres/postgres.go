package postgres

import (
	"fmt"
	"log"
	"time"

	"registration-service/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var DB_Status bool

func ConnectAndCreateDB(cfg config.PostgresConfig) (*sqlx.DB, error) {
	targetConnStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.DBname)

	db, err := sqlx.Connect("postgres", targetConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to target database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping target database: %w", err)
	}
	DB_Status = true

	return db, nil
}

// RetryConnectOnFailed blocks until a connection is available, sleeping
// waitAmount between attempts. *db is replaced on success.
func RetryConnectOnFailed(waitAmount time.Duration, db **sqlx.DB, cfg config.PostgresConfig) {
	for {
		if *db != nil {
			err := (*db).Ping()
			if err == nil {
				log.Printf("database connection is healthy, no retry needed")
				DB_Status = true
				return
			}
			log.Printf("failed to ping target database: %s, retry db connection", err)
		} else {
			log.Printf("database connection is nil, attempting to reconnect...")
		}

		newDB, err := ConnectAndCreateDB(cfg)
		if err == nil {
			*db = newDB
			log.Printf("database retry connection successfully")
			return
		}
		log.Printf("failed to retry connect database: %s, next retry in %v", err, waitAmount)
		time.Sleep(waitAmount)
	}
}
