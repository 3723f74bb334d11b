package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store persists readings.
type Store interface {
	Save(ctx context.Context, r Reading) error
	// Latest returns readings newest first. A limit of zero or less returns all.
	Latest(ctx context.Context, limit int) ([]Reading, error)
}

// SQLiteStore keeps readings in a SQLite database file.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

var _ Store = (*SQLiteStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS sensor_readings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	temperature REAL,
	air_humidity REAL,
	soil_moisture INTEGER,
	pump_on INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sensor_readings_timestamp ON sensor_readings(timestamp);
`

// OpenSQLite opens (creating if needed) the database at path. Use
// ":memory:" for a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite has a single writer, and every ":memory:" connection is its
	// own database.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database location.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save inserts r.
func (s *SQLiteStore) Save(ctx context.Context, r Reading) error {
	pump := 0
	if r.PumpOn {
		pump = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sensor_readings (timestamp, temperature, air_humidity, soil_moisture, pump_on)
		 VALUES (?, ?, ?, ?, ?)`,
		r.Timestamp, r.Temperature, r.AirHumidity, r.SoilMoisture, pump,
	)
	if err != nil {
		return fmt.Errorf("failed to save reading: %w", err)
	}
	return nil
}

// Latest returns readings newest first. Readings stamped in the same second
// are ordered by insertion.
func (s *SQLiteStore) Latest(ctx context.Context, limit int) ([]Reading, error) {
	query := `SELECT timestamp, temperature, air_humidity, soil_moisture, pump_on
		FROM sensor_readings
		ORDER BY timestamp DESC, id DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query readings: %w", err)
	}
	defer rows.Close()

	readings := []Reading{}
	for rows.Next() {
		var (
			r     Reading
			temp  sql.NullFloat64
			hum   sql.NullFloat64
			moist sql.NullInt64
			pump  int
		)
		if err := rows.Scan(&r.Timestamp, &temp, &hum, &moist, &pump); err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		if temp.Valid {
			r.Temperature = &temp.Float64
		}
		if hum.Valid {
			r.AirHumidity = &hum.Float64
		}
		if moist.Valid {
			m := int(moist.Int64)
			r.SoilMoisture = &m
		}
		r.PumpOn = pump != 0
		readings = append(readings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read readings: %w", err)
	}
	return readings, nil
}
