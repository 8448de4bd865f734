package database

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var DB *sql.DB

// InitDB opens the local SQLite store. It only holds operator accounts —
// all reference data and every estimate live in the backend service.
func InitDB(path, adminUser, adminPassword string) error {
	var err error
	DB, err = sql.Open("sqlite3", path)
	if err != nil {
		return errors.Wrap(err, "open sqlite database")
	}

	if err := createTables(); err != nil {
		return err
	}
	return seedAdmin(adminUser, adminPassword)
}

func createTables() error {
	_, err := DB.Exec(`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'OPERATOR'
	);`)
	return errors.Wrap(err, "create users table")
}

func seedAdmin(username, password string) error {
	var count int
	if err := DB.QueryRow("SELECT count(*) FROM users WHERE username=?", username).Scan(&count); err != nil {
		return errors.Wrap(err, "check admin account")
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hash admin password")
	}

	if _, err := DB.Exec("INSERT INTO users (username, password_hash, role) VALUES (?, ?, 'ADMIN')", username, string(hash)); err != nil {
		return errors.Wrap(err, "seed admin account")
	}
	logrus.WithField("username", username).Info("seeded admin account")
	return nil
}
