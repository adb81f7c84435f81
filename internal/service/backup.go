package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/NOTIVEAPP/notive-backend/internal/models"
	"github.com/NOTIVEAPP/notive-backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BackupService writes AES-GCM encrypted JSON snapshots of a user's lists and
// items to disk and keeps a Backup row per file.
type BackupService struct {
	db         *gorm.DB
	lists      *ListService
	items      *ItemService
	encryptKey string
	dir        string
	now        func() time.Time
}

func NewBackupService(db *gorm.DB, lists *ListService, items *ItemService, encryptKey, dir string) *BackupService {
	return &BackupService{db: db, lists: lists, items: items, encryptKey: encryptKey, dir: dir, now: time.Now}
}

// Snapshot is the plaintext content of a backup file.
type Snapshot struct {
	UserID  uint                   `json:"user_id"`
	Created time.Time              `json:"created"`
	Lists   []models.List          `json:"lists"`
	Items   map[uint][]models.Item `json:"items"`
}

// Create snapshots the user's data into a new backup file.
func (s *BackupService) Create(ctx context.Context, userID uint) (*models.Backup, error) {
	lists, err := s.lists.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	itemCount := 0
	for _, its := range items {
		itemCount += len(its)
	}

	raw, err := json.Marshal(&Snapshot{
		UserID:  userID,
		Created: s.now(),
		Lists:   lists,
		Items:   items,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	enc, err := util.EncryptAES(s.encryptKey, raw)
	if err != nil {
		return nil, fmt.Errorf("encrypt snapshot: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}
	fileName := fmt.Sprintf("backup-%d-%s.bin", userID, uuid.NewString())
	filePath := filepath.Join(s.dir, fileName)
	if err := os.WriteFile(filePath, enc, 0o600); err != nil {
		return nil, fmt.Errorf("write backup file: %w", err)
	}

	backup := models.Backup{
		UserID:   userID,
		FileName: fileName,
		FilePath: filePath,
		Size:     int64(len(enc)),
		Lists:    len(lists),
		Items:    itemCount,
	}
	if err := s.db.WithContext(ctx).Create(&backup).Error; err != nil {
		_ = os.Remove(filePath)
		return nil, storageErr("create backup", err)
	}
	return &backup, nil
}

// List returns the user's backups, newest first.
func (s *BackupService) List(ctx context.Context, userID uint) ([]models.Backup, error) {
	backups := make([]models.Backup, 0)
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&backups).Error; err != nil {
		return nil, storageErr("list backups", err)
	}
	return backups, nil
}

// Get returns a backup record the user owns.
func (s *BackupService) Get(ctx context.Context, userID, backupID uint) (models.Backup, error) {
	res, err := ResolveBackup(ctx, s.db, backupID, userID)
	if err != nil {
		return models.Backup{}, err
	}
	return Require(res, ResourceBackup)
}

// Read decrypts a backup file the user owns.
func (s *BackupService) Read(ctx context.Context, userID, backupID uint) (*Snapshot, error) {
	b, err := s.Get(ctx, userID, backupID)
	if err != nil {
		return nil, err
	}

	enc, err := os.ReadFile(b.FilePath)
	if err != nil {
		return nil, fmt.Errorf("read backup file: %w", err)
	}
	raw, err := util.DecryptAES(s.encryptKey, enc)
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// Delete removes the backup file and its record.
func (s *BackupService) Delete(ctx context.Context, userID, backupID uint) error {
	b, err := s.Get(ctx, userID, backupID)
	if err != nil {
		return err
	}

	if err := os.Remove(b.FilePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove backup file: %w", err)
	}
	if err := s.db.WithContext(ctx).Where("id = ?", backupID).Delete(&models.Backup{}).Error; err != nil {
		return storageErr("delete backup", err)
	}
	return nil
}
