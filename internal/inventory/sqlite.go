package inventory

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"
)

func initPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS bodies (
			idx INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			mass REAL NOT NULL,
			com_x REAL NOT NULL,
			com_y REAL NOT NULL,
			com_z REAL NOT NULL,
			ixx REAL NOT NULL,
			iyy REAL NOT NULL,
			izz REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS geometries (
			id INTEGER PRIMARY KEY,
			body TEXT NOT NULL REFERENCES bodies(name),
			name TEXT NOT NULL,
			scoped_name TEXT NOT NULL,
			role TEXT NOT NULL,
			shape TEXT NOT NULL,
			dimensions_json TEXT NOT NULL,
			tx REAL NOT NULL,
			ty REAL NOT NULL,
			tz REAL NOT NULL,
			qw REAL NOT NULL,
			qx REAL NOT NULL,
			qy REAL NOT NULL,
			qz REAL NOT NULL,
			color_json TEXT,
			properties_json TEXT NOT NULL,
			UNIQUE(scoped_name, role)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_geometries_body_role ON geometries(body, role);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// WriteSQLite stores snap in the database at path, replacing whatever an earlier
// export left there. The write is a single transaction.
func WriteSQLite(ctx context.Context, path string, snap Snapshot) error {
	if path == "" {
		return fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err := initPragmas(ctx, db); err != nil {
		return fmt.Errorf("sqlite pragmas: %w", err)
	}
	if err := initSchema(ctx, db); err != nil {
		return fmt.Errorf("sqlite schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := writeRows(ctx, tx, snap); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func writeRows(ctx context.Context, tx *sql.Tx, snap Snapshot) error {
	for _, stmt := range []string{`DELETE FROM geometries;`, `DELETE FROM bodies;`, `DELETE FROM meta;`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	gravity, _ := json.Marshal(snap.Gravity)
	meta := map[string]string{
		"version": strconv.Itoa(snap.Version),
		"gravity": string(gravity),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT INTO meta(key, value) VALUES(?, ?)`, k, v); err != nil {
			return fmt.Errorf("insert meta %s: %w", k, err)
		}
	}

	for _, b := range snap.Bodies {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO bodies(idx, name, mass, com_x, com_y, com_z, ixx, iyy, izz) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.Index, b.Name, b.Mass, b.COM[0], b.COM[1], b.COM[2], b.Inertia[0], b.Inertia[1], b.Inertia[2])
		if err != nil {
			return fmt.Errorf("insert body %s: %w", b.Name, err)
		}
	}

	for _, g := range snap.Geometries {
		dims, _ := json.Marshal(g.Dimensions)
		props, _ := json.Marshal(g.Properties)
		var color sql.NullString
		if g.Color != nil {
			c, _ := json.Marshal(g.Color)
			color = sql.NullString{String: string(c), Valid: true}
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO geometries(id, body, name, scoped_name, role, shape, dimensions_json,
				tx, ty, tz, qw, qx, qy, qz, color_json, properties_json)
			VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			g.ID, g.Body, g.Name, g.ScopedName, g.Role, g.Shape, string(dims),
			g.Translation[0], g.Translation[1], g.Translation[2],
			g.Rotation[0], g.Rotation[1], g.Rotation[2], g.Rotation[3],
			color, string(props))
		if err != nil {
			return fmt.Errorf("insert geometry %s: %w", g.ScopedName, err)
		}
	}
	return nil
}
