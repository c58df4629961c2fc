package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/iliyamo/fitness-studio-booking/internal/utils"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// InitSchema creates the classes and bookings tables when they do not
// exist.  The unsigned slot counters and the unique key on
// (class_id, client_email) are the database-level backstops for the
// capacity and duplicate invariants.
func InitSchema(ctx context.Context, db *sql.DB) error {
	const classes = `CREATE TABLE IF NOT EXISTS classes (
        id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
        name VARCHAR(255) NOT NULL,
        instructor VARCHAR(255) NOT NULL,
        start_at DATETIME NOT NULL,
        total_slots INT UNSIGNED NOT NULL,
        available_slots INT UNSIGNED NOT NULL,
        created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
        PRIMARY KEY (id),
        KEY idx_classes_start_at (start_at)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
	if _, err := db.ExecContext(ctx, classes); err != nil {
		return fmt.Errorf("create classes table: %w", err)
	}

	const bookings = `CREATE TABLE IF NOT EXISTS bookings (
        id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
        class_id BIGINT UNSIGNED NOT NULL,
        client_name VARCHAR(255) NOT NULL,
        client_email VARCHAR(255) NOT NULL,
        booking_time DATETIME NOT NULL,
        PRIMARY KEY (id),
        UNIQUE KEY uq_bookings_class_email (class_id, client_email),
        CONSTRAINT fk_bookings_class FOREIGN KEY (class_id) REFERENCES classes (id)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
	if _, err := db.ExecContext(ctx, bookings); err != nil {
		return fmt.Errorf("create bookings table: %w", err)
	}
	return nil
}

// seedClass describes one seeded class: a name, an instructor, a
// wall-clock time in the canonical zone offset N days from today, and
// a capacity.
type seedClass struct {
	name       string
	instructor string
	daysAhead  int
	hour, min  int
	slots      uint32
}

// Seed inserts the studio's demo schedule when the classes table is
// empty.  Wall-clock times are interpreted in the canonical zone
// (India Standard Time) and stored as UTC instants.  Dates are laid
// out relative to startup so freshly seeded classes are always
// upcoming.
func Seed(ctx context.Context, db *sql.DB) error {
	var n int64
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM classes`).Scan(&n); err != nil {
		return fmt.Errorf("count classes: %w", err)
	}
	if n > 0 {
		return nil
	}

	loc, err := time.LoadLocation(utils.CanonicalZone)
	if err != nil {
		return fmt.Errorf("load canonical zone: %w", err)
	}
	today := time.Now().In(loc)

	seeds := []seedClass{
		{"Yoga Flow", "Priya Sharma", 1, 7, 0, 20},
		{"Zumba Dance", "Rahul Kumar", 1, 18, 30, 25},
		{"HIIT Training", "Anjali Singh", 2, 6, 30, 15},
		{"Power Yoga", "Priya Sharma", 2, 19, 0, 20},
		{"Cardio Blast", "Vikram Patel", 3, 7, 30, 18},
	}

	const q = `INSERT INTO classes (name, instructor, start_at, total_slots, available_slots)
	           VALUES (?, ?, ?, ?, ?)`
	for _, s := range seeds {
		startAt := time.Date(today.Year(), today.Month(), today.Day()+s.daysAhead,
			s.hour, s.min, 0, 0, loc).UTC()
		if _, err := db.ExecContext(ctx, q, s.name, s.instructor, startAt, s.slots, s.slots); err != nil {
			return fmt.Errorf("seed class %q: %w", s.name, err)
		}
	}
	log.Printf("database: seeded %d classes", len(seeds))
	return nil
}
