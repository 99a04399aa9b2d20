package database

import (
	"fmt"
	"log/slog"
	"time"

	"forumhub/internal/config"
	"forumhub/internal/http-api/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectDB opens the Postgres connection, migrates the schema and
// seeds the reserved groups.
func ConnectDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	// Verify the connection
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrateSchema(db); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := seedGroups(db); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to seed groups: %w", err)
	}

	logger.Info("Connected to the database successfully")
	return db, nil
}

func migrateSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.RefreshToken{},
		&models.Board{},
		&models.ModeratorAssignment{},
		&models.Post{},
		&models.Tag{},
		&models.Comment{},
		&models.PostLike{},
		&models.PostCollect{},
		&models.CommentLike{},
		&models.CommentCollect{},
		&models.Notification{},
	)
}

// seedGroups guarantees the reserved roles exist before the first
// registration.
func seedGroups(db *gorm.DB) error {
	for _, name := range []string{models.GroupMember, models.GroupModerator} {
		var group models.Group
		if err := db.Where(models.Group{Name: name}).FirstOrCreate(&group).Error; err != nil {
			return err
		}
	}
	return nil
}
