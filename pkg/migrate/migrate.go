package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strconv"

	"github.com/angelmondragon/veggieshop-backend/pkg/config"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
)

// DefaultDir is the on-disk root of the per-dialect migration folders.
const DefaultDir = "pkg/migrate/migrations"

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var embedded embed.FS

// Migrations returns the embedded migration files for the given driver.
func Migrations(driver string) (fs.FS, error) {
	dir, err := dialectDir(driver)
	if err != nil {
		return nil, err
	}
	return fs.Sub(embedded, path.Join("migrations", dir))
}

// DialectDir returns the on-disk folder holding the driver's migrations.
func DialectDir(driver string) (string, error) {
	dir, err := dialectDir(driver)
	if err != nil {
		return "", err
	}
	return path.Join(DefaultDir, dir), nil
}

func dialectDir(driver string) (string, error) {
	switch driver {
	case config.DriverSQLite, "sqlite3":
		return "sqlite", nil
	case config.DriverPostgres, "pgx":
		return "postgres", nil
	}
	return "", fmt.Errorf("unsupported migration driver %q", driver)
}

func gooseDialect(driver string) (database.Dialect, error) {
	switch driver {
	case config.DriverSQLite, "sqlite3":
		return database.DialectSQLite3, nil
	case config.DriverPostgres, "pgx":
		return database.DialectPostgres, nil
	}
	return "", fmt.Errorf("unsupported migration driver %q", driver)
}

// NewProvider builds a goose provider over the embedded migrations.
func NewProvider(db *sql.DB, driver string) (*goose.Provider, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	dialect, err := gooseDialect(driver)
	if err != nil {
		return nil, err
	}
	fsys, err := Migrations(driver)
	if err != nil {
		return nil, fmt.Errorf("loading migrations: %w", err)
	}
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("creating goose provider: %w", err)
	}
	return provider, nil
}

// Run executes a goose command (up, down, status) and reports results to out.
func Run(ctx context.Context, db *sql.DB, driver string, command string, out io.Writer) error {
	provider, err := NewProvider(db, driver)
	if err != nil {
		return err
	}
	if out == nil {
		out = io.Discard
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			return fmt.Errorf("goose up: %w", err)
		}
		for _, res := range results {
			fmt.Fprintf(out, "OK   %s (%s)\n", path.Base(res.Source.Path), res.Duration)
		}
		if len(results) == 0 {
			fmt.Fprintln(out, "no migrations to run")
		}
	case "down":
		res, err := provider.Down(ctx)
		if err != nil {
			return fmt.Errorf("goose down: %w", err)
		}
		fmt.Fprintf(out, "OK   %s (%s)\n", path.Base(res.Source.Path), res.Duration)
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("goose status: %w", err)
		}
		for _, st := range statuses {
			applied := "Pending"
			if st.State == goose.StateApplied {
				applied = st.AppliedAt.UTC().Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(out, "%-24s %s\n", applied, path.Base(st.Source.Path))
		}
	default:
		return fmt.Errorf("unknown goose command %q", command)
	}
	return nil
}

// CurrentVersion reports the highest applied migration version.
func CurrentVersion(ctx context.Context, db *sql.DB, driver string) (int64, error) {
	provider, err := NewProvider(db, driver)
	if err != nil {
		return 0, err
	}
	return provider.GetDBVersion(ctx)
}

// MigrateToVersion migrates up/down to the requested version by comparing current DB version.
func MigrateToVersion(ctx context.Context, db *sql.DB, driver string, targetVersion string) error {
	if targetVersion == "" {
		return fmt.Errorf("targetVersion is required")
	}

	target, err := strconv.ParseInt(targetVersion, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS): %w", targetVersion, err)
	}

	provider, err := NewProvider(db, driver)
	if err != nil {
		return err
	}

	current, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}

	switch {
	case current == target:
		return nil
	case current < target:
		if _, err := provider.UpTo(ctx, target); err != nil {
			return fmt.Errorf("goose up-to %d: %w", target, err)
		}
	default:
		if _, err := provider.DownTo(ctx, target); err != nil {
			return fmt.Errorf("goose down-to %d: %w", target, err)
		}
	}
	return nil
}
