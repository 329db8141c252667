package database

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go/service/s3"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"golang.org/x/xerrors"
	_ "modernc.org/sqlite"

	"local/islanders/log"
	"local/islanders/simple"
)

type DB struct {
	config     simple.Config
	c          *sqlx.DB
	s3         *s3.S3
	counterMux sync.Mutex
	counters   map[string]*counter
}

func New(config simple.Config) *DB {
	db := &DB{
		config:     config,
		c:          nil,
		counterMux: sync.Mutex{},
		counters:   make(map[string]*counter),
	}
	if config.Session != nil && config.S3Bucket != "" {
		db.s3 = s3.New(config.Session)
	}
	return db
}

func (db *DB) Run(initDone chan struct{}) error {
	conn, err := db.connect()
	if err != nil {
		db.errorf("Unable to connect to db: %s", err)
		return err
	}
	db.c = conn
	db.infof("Connected to db (%s)", db.config.DBDriver)

	if err := db.bootstrap(); err != nil {
		db.errorf("Unable to bootstrap schema: %s", err)
		return err
	}

	initDone <- struct{}{}
	return nil
}

func (db *DB) connect() (*sqlx.DB, error) {
	switch db.config.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s",
			db.config.RdsHost, db.config.RdsPort, db.config.RdsUser, db.config.RdsName)
		conn, err := sqlx.Connect("pgx", dsn)
		if err != nil {
			return nil, xerrors.Errorf("could not connect to postgres: %w", err)
		}
		conn.SetMaxOpenConns(20)
		return conn, nil
	case "sqlite":
		conn, err := sqlx.Connect("sqlite", db.config.SqlitePath)
		if err != nil {
			return nil, xerrors.Errorf("could not open sqlite at %s: %w",
				db.config.SqlitePath, err)
		}
		// The embedded driver serializes writes anyway.
		conn.SetMaxOpenConns(1)
		return conn, nil
	}
	return nil, xerrors.Errorf("unknown dbdriver '%s'", db.config.DBDriver)
}

// Portable across both drivers: TEXT ids, integer enums, RFC3339
// timestamps as TEXT.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS counters (
		name TEXT PRIMARY KEY,
		v INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS guests (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS results (
		id TEXT PRIMARY KEY,
		created TEXT NOT NULL,
		started TEXT NOT NULL,
		finished TEXT NOT NULL,
		winner INTEGER NOT NULL,
		rounds INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS result_players (
		game_id TEXT NOT NULL,
		seat INTEGER NOT NULL,
		identity_id TEXT NOT NULL,
		identity_name TEXT NOT NULL,
		color INTEGER NOT NULL,
		score INTEGER NOT NULL,
		knights INTEGER NOT NULL,
		PRIMARY KEY (game_id, seat)
	)`,
}

func (db *DB) bootstrap() error {
	for _, stmt := range schema {
		if _, err := db.c.Exec(stmt); err != nil {
			return xerrors.Errorf("bootstrap: %w", err)
		}
	}
	return nil
}

func (db *DB) exec(query string, args ...interface{}) (sql.Result, error) {
	return db.c.Exec(db.c.Rebind(query), args...)
}

func (db *DB) tracef(msg string, fargs ...interface{}) {
	log.Trace(msg, fargs...)
}

func (db *DB) debugf(msg string, fargs ...interface{}) {
	log.Debug(msg, fargs...)
}

func (db *DB) infof(msg string, fargs ...interface{}) {
	log.Info(msg, fargs...)
}

func (db *DB) warnf(msg string, fargs ...interface{}) {
	log.Warn(msg, fargs...)
}

func (db *DB) errorf(msg string, fargs ...interface{}) {
	log.Error(msg, fargs...)
}
