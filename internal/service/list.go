package service

import (
	"context"
	"strings"
	"time"

	"github.com/NOTIVEAPP/notive-backend/internal/models"
	"github.com/NOTIVEAPP/notive-backend/internal/util"

	"gorm.io/gorm"
)

// ListService manages the lists of a user. Every operation on an existing
// list goes through ResolveList first.
//
// ToggleMute and ToggleArchive read the current flag and write its negation
// without a compare-and-swap: two concurrent toggles of the same list may both
// observe the old value, and the last write wins.
type ListService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewListService(db *gorm.DB) *ListService {
	return &ListService{db: db, now: time.Now}
}

// Created is returned by create operations.
type Created struct {
	ID        uint
	CreatedAt int64
}

// ListAll returns the user's lists in storage order.
func (s *ListService) ListAll(ctx context.Context, userID uint) ([]models.List, error) {
	lists := make([]models.List, 0)
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&lists).Error; err != nil {
		return nil, storageErr("list lists", err)
	}
	return lists, nil
}

// Create adds a list owned by userID.
func (s *ListService) Create(ctx context.Context, userID uint, name string) (Created, error) {
	name = strings.TrimSpace(name)
	if err := util.ValidateName(name); err != nil {
		return Created{}, nameErr(err, "Error: Provide a name for this list!")
	}

	l := models.List{
		UserID:    userID,
		Name:      name,
		CreatedAt: s.now().Unix(),
	}
	if err := s.db.WithContext(ctx).Create(&l).Error; err != nil {
		return Created{}, storageErr("create list", err)
	}
	return Created{ID: l.ID, CreatedAt: l.CreatedAt}, nil
}

// Get returns the list if it exists and belongs to userID.
func (s *ListService) Get(ctx context.Context, userID, listID uint) (models.List, error) {
	res, err := ResolveList(ctx, s.db, listID, userID, true)
	if err != nil {
		return models.List{}, err
	}
	return Require(res, ResourceList)
}

// Rename changes the list's name.
func (s *ListService) Rename(ctx context.Context, userID, listID uint, name string) error {
	if _, err := s.Get(ctx, userID, listID); err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if err := util.ValidateName(name); err != nil {
		return nameErr(err, "Please provide a name!")
	}

	if err := s.db.WithContext(ctx).Model(&models.List{}).
		Where("id = ?", listID).
		Update("name", name).Error; err != nil {
		return storageErr("rename list", err)
	}
	return nil
}

// Delete removes the list and all of its items in one transaction.
func (s *ListService) Delete(ctx context.Context, userID, listID uint) error {
	if _, err := s.Get(ctx, userID, listID); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", listID).Delete(&models.Item{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", listID).Delete(&models.List{}).Error
	})
	return storageErr("delete list", err)
}

// ToggleMute flips is_muted and returns the new value.
func (s *ListService) ToggleMute(ctx context.Context, userID, listID uint) (bool, error) {
	return s.toggle(ctx, userID, listID, "is_muted", func(l models.List) bool { return l.IsMuted })
}

// ToggleArchive flips is_archived and returns the new value.
func (s *ListService) ToggleArchive(ctx context.Context, userID, listID uint) (bool, error) {
	return s.toggle(ctx, userID, listID, "is_archived", func(l models.List) bool { return l.IsArchived })
}

func (s *ListService) toggle(ctx context.Context, userID, listID uint, column string, current func(models.List) bool) (bool, error) {
	l, err := s.Get(ctx, userID, listID)
	if err != nil {
		return false, err
	}

	next := !current(l)
	if err := s.db.WithContext(ctx).Model(&models.List{}).
		Where("id = ?", listID).
		Update(column, next).Error; err != nil {
		return false, storageErr("toggle "+column, err)
	}
	return next, nil
}
