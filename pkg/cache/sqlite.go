package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SQLiteCache keeps entries in one table of a sqlite3 database file.
type SQLiteCache struct {
	db *gorm.DB
}

// sqliteEntry is the row layout of the cache_entries table.
type sqliteEntry struct {
	Key       string `gorm:"column:cache_key;primaryKey"`
	Data      []byte
	ExpiresAt *time.Time `gorm:"index"`
}

func (sqliteEntry) TableName() string { return "cache_entries" }

// OpenSQLiteCache opens (creating and migrating if necessary) the database
// file at filename.
func OpenSQLiteCache(filename string) (*SQLiteCache, error) {
	db, err := gorm.Open(sqlite.Open(filename), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening cache db at '%s': %w", filename, err)
	}
	if err := db.AutoMigrate(&sqliteEntry{}); err != nil {
		return nil, fmt.Errorf("error migrating cache db at '%s': %w", filename, err)
	}
	return &SQLiteCache{db: db}, nil
}

// Get retrieves a value; expired rows are deleted and reported as misses.
func (c *SQLiteCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry sqliteEntry
	err := c.db.WithContext(ctx).Where("cache_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("error reading cache key '%s': %w", key, err)
	}
	if entry.ExpiresAt != nil && time.Now().After(*entry.ExpiresAt) {
		_ = c.Delete(ctx, key)
		return nil, false, nil
	}
	return entry.Data, true, nil
}

// Set upserts a value.
func (c *SQLiteCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := sqliteEntry{Key: key, Data: data}
	if ttl > 0 {
		at := time.Now().Add(ttl)
		entry.ExpiresAt = &at
	}
	if err := c.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&entry).
		Error; err != nil {
		return fmt.Errorf("error writing cache key '%s': %w", key, err)
	}
	return nil
}

// Delete removes a value.
func (c *SQLiteCache) Delete(ctx context.Context, key string) error {
	if err := c.db.WithContext(ctx).Where("cache_key = ?", key).Delete(&sqliteEntry{}).Error; err != nil {
		return fmt.Errorf("error deleting cache key '%s': %w", key, err)
	}
	return nil
}

// Purge deletes every expired row and returns how many were removed.
func (c *SQLiteCache) Purge(ctx context.Context) (int64, error) {
	res := c.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at < ?", time.Now()).
		Delete(&sqliteEntry{})
	return res.RowsAffected, res.Error
}

// Clear deletes every row.
func (c *SQLiteCache) Clear(ctx context.Context) (int64, error) {
	res := c.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&sqliteEntry{})
	return res.RowsAffected, res.Error
}

// Close closes the underlying connection pool.
func (c *SQLiteCache) Close() error {
	pool, err := c.db.DB()
	if err != nil {
		return err
	}
	return pool.Close()
}

var (
	_ Cache   = (*SQLiteCache)(nil)
	_ Clearer = (*SQLiteCache)(nil)
)
