package migration

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

//go:embed scripts
var scriptsFS embed.FS

// Strategy defines the interface for different migration strategies
type Strategy interface {
	Migrate(db *gorm.DB, models ...interface{}) error
	GetName() string
}

// GormAutoMigrateStrategy creates tables from the model structs. Used for
// local development and tests.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy(log logger.Interface) Strategy {
	return &GormAutoMigrateStrategy{logger: log}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	if len(models) == 0 {
		models = AutoMigrateModels()
	}

	s.logger.Infow("starting gorm auto migration", "models_count", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		s.logger.Errorw("auto migration failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// GooseStrategy applies the versioned SQL scripts embedded in the binary.
// Scripts live in scripts/<dialect>.
type GooseStrategy struct {
	dialect goose.Dialect
	dir     string
	logger  logger.Interface
}

// NewGooseStrategy returns a strategy for the given database driver
// ("mysql" or "sqlite").
func NewGooseStrategy(driver string, log logger.Interface) (*GooseStrategy, error) {
	var dialect goose.Dialect
	switch driver {
	case "mysql":
		dialect = goose.DialectMySQL
	case "sqlite", "":
		dialect = goose.DialectSQLite3
		driver = "sqlite"
	default:
		return nil, fmt.Errorf("no migration scripts for driver %q", driver)
	}

	return &GooseStrategy{
		dialect: dialect,
		dir:     path.Join("scripts", driver),
		logger:  log,
	}, nil
}

func (s *GooseStrategy) prepare() error {
	goose.SetBaseFS(scriptsFS)
	if err := goose.SetDialect(string(s.dialect)); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

func (s *GooseStrategy) Migrate(db *gorm.DB, _ ...interface{}) error {
	s.logger.Infow("starting goose migration", "scripts_path", s.dir)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return err
	}

	currentVersion, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		s.logger.Errorw("failed to get current version", "error", err)
		return fmt.Errorf("failed to get current version: %w", err)
	}

	if err := goose.Up(sqlDB, s.dir); err != nil {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)

	return nil
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

func (s *GooseStrategy) MigrateDown(db *gorm.DB, steps int) error {
	s.logger.Infow("starting down migration", "steps", steps)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return err
	}

	for i := 0; i < steps; i++ {
		if err := goose.Down(sqlDB, s.dir); err != nil {
			s.logger.Errorw("down migration failed", "error", err)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	}

	s.logger.Infow("down migration completed successfully")
	return nil
}

func (s *GooseStrategy) GetVersion(db *gorm.DB) (int64, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return 0, err
	}

	version, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return 0, fmt.Errorf("failed to get version: %w", err)
	}
	return version, nil
}

func (s *GooseStrategy) Status(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return err
	}

	if err := goose.Status(sqlDB, s.dir); err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}
	return nil
}

// Scripts lists the embedded script names for this dialect.
func (s *GooseStrategy) Scripts() ([]string, error) {
	entries, err := fs.ReadDir(scriptsFS, s.dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// Create writes a new empty SQL migration into dir on disk. New files are
// picked up by the binary on the next build.
func Create(dir, name string) error {
	goose.SetBaseFS(nil)
	defer goose.SetBaseFS(scriptsFS)

	if err := goose.Create(nil, dir, name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}
	return nil
}
