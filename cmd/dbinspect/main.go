// Package main prints a read-only summary of a filmshelf database.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const summaryQuery = `
SELECT u.id, u.username,
       COUNT(m.id),
       COALESCE(AVG(m.rating), 0),
       COALESCE(MIN(m.rating), 0),
       COALESCE(MAX(m.rating), 0),
       COALESCE(SUM(CASE WHEN m.poster_url IS NULL OR m.poster_url = '' THEN 1 ELSE 0 END), 0)
FROM users u
LEFT JOIN movies m ON m.user_id = u.id
GROUP BY u.id, u.username
ORDER BY u.username`

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/.filmshelf/movies.db")
	}

	abs, err := filepath.Abs(dbPath)
	if err != nil {
		log.Fatalf("Invalid database path: %v", err)
	}
	if _, err := os.Stat(abs); err != nil {
		log.Fatalf("Database not found: %v", err)
	}

	dsn := (&url.URL{Scheme: "file", Path: abs, RawQuery: "mode=ro"}).String()
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Printf("Path: %s\n\n", abs)

	rows, err := db.Query(summaryQuery)
	if err != nil {
		log.Fatalf("Error querying database: %v", err)
	}
	defer rows.Close()

	userCount := 0
	movieCount := 0
	withoutPoster := 0

	for rows.Next() {
		var (
			id                   int64
			username             string
			count, noPoster      int
			avg, lowest, highest float64
		)
		if err := rows.Scan(&id, &username, &count, &avg, &lowest, &highest, &noPoster); err != nil {
			log.Fatalf("Error reading row: %v", err)
		}

		userCount++
		movieCount += count
		withoutPoster += noPoster

		fmt.Printf("User: %s\n", username)
		fmt.Printf("  ID: %d\n", id)
		fmt.Printf("  Movies: %d\n", count)
		if count > 0 {
			fmt.Printf("  Ratings: avg %.2f, min %.1f, max %.1f\n", avg, lowest, highest)
			fmt.Printf("  Without poster: %d\n", noPoster)
		}
		fmt.Println()
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Error iterating database: %v", err)
	}

	fmt.Println("=== Summary ===")
	fmt.Printf("Total users: %d\n", userCount)
	fmt.Printf("Total movies: %d\n", movieCount)
	fmt.Printf("Movies without poster: %d\n", withoutPoster)
	if userCount > 0 {
		fmt.Printf("Average movies per user: %.1f\n", float64(movieCount)/float64(userCount))
	}
}
