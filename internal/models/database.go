package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

type ContextKey string

const (
	DBContextURL ContextKey = "superintendent-url"
)

var pluralIES = regexp.MustCompile("ies$")

func config() *gorm.Config {
	return &gorm.Config{
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: &logger{
			Logger:        log.Logger,
			SlowThreshold: 200 * time.Millisecond,
		},
	}
}

// Connect opens the SQLite database at dsn and configures the connection pool.
func Connect(dsn string) error {
	db, err := gorm.Open(sqlite.Open(dsn), config())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.Close()

	// Reconnect with foreign keys enforced for year results
	db, err = gorm.Open(sqlite.Open(fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)), config())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err = db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	sqlDB.SetConnMaxLifetime(time.Hour)

	// Prevents SQLITE_BUSY errors
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	return register(db)
}

// ConnectPostgres opens a PostgreSQL database with a key=value dsn.
func ConnectPostgres(dsn string) error {
	db, err := gorm.Open(postgres.Open(dsn), config())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return register(db)
}

// ConnectFromEnv uses PostgreSQL when DB_HOST is set and a SQLite file in
// the data directory otherwise.
func ConnectFromEnv() error {
	if host, ok := os.LookupEnv("DB_HOST"); ok {
		log.Debug().Msg("DB_HOST is set, using postgresql")
		return ConnectPostgres(fmt.Sprintf("host=%s user=%s password=%s dbname=%s", host, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME")))
	}

	log.Debug().Msg("DB_HOST is not set, using sqlite database")
	err := os.MkdirAll("data", os.ModePerm)
	if err != nil {
		return fmt.Errorf("could not create data directory: %w", err)
	}

	return Connect(filepath.Join("data", "gorm.db"))
}

func register(db *gorm.DB) error {
	callbacks := []struct {
		processor interface {
			Register(string, func(*gorm.DB)) error
		}
		name string
		fn   func(*gorm.DB)
	}{
		{db.Callback().Query().After("*"), "superintendent:after_query", queryCallback},
		{db.Callback().Query().After("*"), "superintendent:after_query_general", generalCallback},
		{db.Callback().Create().After("*"), "superintendent:after_create_general", generalCallback},
		{db.Callback().Update().After("*"), "superintendent:after_update_general", generalCallback},
		{db.Callback().Delete().After("*"), "superintendent:after_delete_general", generalCallback},
	}

	for _, c := range callbacks {
		if err := c.processor.Register(c.name, c.fn); err != nil {
			return err
		}
	}

	DB = db
	return nil
}

// queryCallback replaces the generic "no record" error with one naming the resource
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")
		name = pluralIES.ReplaceAllString(name, "y")
		name = strings.TrimRight(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// generalCallback handles errors of the database driver.
//
// Users cannot do anything about these, so the error is logged and replaced
// with a general message.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	var pgErr *pgconn.PgError

	// "sql: database is closed" is hard-coded in database/sql
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) || errors.As(db.Error, &pgErr) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(Session{}, YearResult{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
