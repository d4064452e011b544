package database

import (
	"context"
	"os"
	"testing"
)

func openTestDB(t *testing.T, dbPath string) *DB {
	t.Helper()

	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

// TestDatabaseIntegration tests the complete database lifecycle
func TestDatabaseIntegration(t *testing.T) {
	// Skip if not in integration test mode
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t, "test_integration.db")

	// Test connection
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	// Test that tables were created by migrations
	tables := []string{
		"dictionary_words", "puzzles", "puzzle_solvers", "guess_attempts",
		"user_statistics", "leaderboards", "leaderboard_members", "leaderboard_entries",
	}

	for _, table := range tables {
		query := "SELECT name FROM sqlite_master WHERE type='table' AND name=?"
		var name string
		err := db.QueryRowContext(ctx, query, table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}

	// The global leaderboard is seeded by the initial migration
	var boardType string
	err := db.QueryRowContext(ctx, "SELECT type FROM leaderboards WHERE type = 'global'").Scan(&boardType)
	if err != nil {
		t.Errorf("Global leaderboard not seeded: %v", err)
	}
}

// TestSeedStarterWords tests first-run dictionary seeding
func TestSeedStarterWords(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t, "test_seed.db")

	if err := db.SeedStarterWords(); err != nil {
		t.Fatalf("Failed to seed starter words: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM dictionary_words").Scan(&count); err != nil {
		t.Fatalf("Failed to count words: %v", err)
	}
	if count != len(starterWords) {
		t.Errorf("Expected %d seeded words, got %d", len(starterWords), count)
	}

	// Seeding again must be a no-op
	if err := db.SeedStarterWords(); err != nil {
		t.Fatalf("Failed to re-seed: %v", err)
	}
	var after int
	if err := db.QueryRow("SELECT COUNT(*) FROM dictionary_words").Scan(&after); err != nil {
		t.Fatalf("Failed to count words: %v", err)
	}
	if after != count {
		t.Errorf("Re-seeding changed the word count from %d to %d", count, after)
	}
}

// TestDatabaseTransactions tests transaction support
func TestDatabaseTransactions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t, "test_transactions.db")

	ctx := context.Background()

	// Test successful transaction
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	// Insert test data
	_, err = tx.ExecContext(ctx, "INSERT INTO dictionary_words (word, frequency, times_used, explanation) VALUES (?, ?, ?, ?)",
		"crane", 5.2, 0, "")
	if err != nil {
		tx.Rollback()
		t.Fatalf("Failed to insert in transaction: %v", err)
	}

	// Commit
	if err := tx.Commit(); err != nil {
		t.Fatalf("Failed to commit transaction: %v", err)
	}

	// Verify data was inserted
	var count int
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM dictionary_words WHERE word = ?", "crane").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query after commit: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 word, got %d", count)
	}

	// Test rollback
	tx2, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("Failed to begin second transaction: %v", err)
	}

	_, err = tx2.ExecContext(ctx, "INSERT INTO dictionary_words (word, frequency, times_used, explanation) VALUES (?, ?, ?, ?)",
		"slate", 4.1, 0, "")
	if err != nil {
		tx2.Rollback()
		t.Fatalf("Failed to insert in second transaction: %v", err)
	}

	// Rollback
	if err := tx2.Rollback(); err != nil {
		t.Fatalf("Failed to rollback transaction: %v", err)
	}

	// Verify data was not inserted
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM dictionary_words WHERE word = ?", "slate").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query after rollback: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 words after rollback, got %d", count)
	}
}

// TestConcurrentAccess tests concurrent database access
func TestConcurrentAccess(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t, "test_concurrent.db")

	ctx := context.Background()

	// Create test data
	_, err := db.ExecContext(ctx, "INSERT INTO dictionary_words (word, frequency, times_used, explanation) VALUES (?, ?, ?, ?)",
		"crane", 5.2, 0, "a lifting machine, or a long-legged bird")
	if err != nil {
		t.Fatalf("Failed to create test word: %v", err)
	}

	// Run concurrent reads
	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			var word string
			err := db.QueryRowContext(ctx, "SELECT word FROM dictionary_words WHERE word = ?", "crane").Scan(&word)
			if err != nil {
				t.Errorf("Concurrent read failed: %v", err)
			}
			if word != "crane" {
				t.Errorf("Expected word 'crane', got '%s'", word)
			}
			done <- true
		}()
	}

	// Wait for all goroutines
	for i := 0; i < 10; i++ {
		<-done
	}
}
