package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Storage keys, kept aligned with what the web client wrote to browser
// storage so a reader of either codebase sees the same names.
const (
	keyToken    = "token"
	keyUserID   = "userId"
	keyRole     = "role"
	keyUserName = "userName"
)

type entry struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

func (entry) TableName() string {
	return "session_entries"
}

// FileStore persists the session in a small sqlite database under the
// user's data directory, surviving across CLI invocations.
type FileStore struct {
	db *gorm.DB
}

func OpenFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(filepath.Join(dataDir, "session.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("migrate session store: %w", err)
	}

	return &FileStore{db: db}, nil
}

func (s *FileStore) Get() (Session, bool) {
	var entries []entry
	if err := s.db.Find(&entries).Error; err != nil {
		return Session{}, false
	}

	sess := Session{}
	for _, e := range entries {
		switch e.Key {
		case keyToken:
			sess.Token = e.Value
		case keyUserID:
			sess.UserID = e.Value
		case keyRole:
			sess.Role = e.Value
		case keyUserName:
			sess.Name = e.Value
		}
	}
	if sess.Token == "" {
		return Session{}, false
	}
	return sess, true
}

func (s *FileStore) Set(sess Session) error {
	entries := []entry{
		{Key: keyToken, Value: sess.Token},
		{Key: keyUserID, Value: sess.UserID},
		{Key: keyRole, Value: sess.Role},
		{Key: keyUserName, Value: sess.Name},
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(&entries).Error
	})
}

func (s *FileStore) Clear() error {
	err := s.db.Where("1 = 1").Delete(&entry{}).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
