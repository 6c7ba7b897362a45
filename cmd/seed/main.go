package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/danuartha/go-commerce-ddd/config"
)

type seedItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	now := time.Now().UTC()
	email := "demo@example.com"
	userID := uuid.NewString()

	err = db.QueryRow(`
		INSERT INTO users (id, email, first_name, last_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id
	`, userID, email, "Demo", "User", now).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s\n", userID, email)

	items := []seedItem{
		{ProductID: uuid.NewString(), Quantity: 2, UnitPrice: 49.99},
		{ProductID: uuid.NewString(), Quantity: 1, UnitPrice: 15.50},
	}
	itemsJSON, _ := json.Marshal(items)
	total := 2*49.99 + 15.50

	orderID := uuid.NewString()
	if _, err := db.Exec(`
		INSERT INTO orders (id, user_id, status, total_amount, items, created_at, updated_at)
		VALUES ($1, $2, 'PENDING', $3, $4, $5, $5)
		ON CONFLICT (id) DO NOTHING
	`, orderID, userID, total, itemsJSON, now); err != nil {
		log.Fatalf("failed to seed order: %v", err)
	}
	fmt.Printf("seeded order: id=%s user=%s total=%.2f\n", orderID, userID, total)
}
