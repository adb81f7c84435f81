package service

import (
	"context"
	"errors"

	"github.com/NOTIVEAPP/notive-backend/internal/models"

	"gorm.io/gorm"
)

// Resource names used in client facing messages.
const (
	ResourceList   = "List"
	ResourceItem   = "Item"
	ResourceBackup = "Backup"
	ResourceUser   = "User"
)

// Resolution is the outcome of an ownership check. It is exactly one of
// Found, NotFound or Forbidden; the type parameter ties it to one row type.
type Resolution[T any] interface {
	isResolution(T)
}

// Found carries the resolved row.
type Found[T any] struct {
	Row T
}

// NotFound means the resource does not exist for the given id (and parent).
type NotFound[T any] struct{}

// Forbidden means the resource exists but belongs to another user.
type Forbidden[T any] struct{}

func (Found[T]) isResolution(T)     {}
func (NotFound[T]) isResolution(T)  {}
func (Forbidden[T]) isResolution(T) {}

// decide applies the ownership rule to a row that is known to exist.
func decide[T any](row T, ownerID, requesterID uint, checkOwnership bool) Resolution[T] {
	if checkOwnership && ownerID != requesterID {
		return Forbidden[T]{}
	}
	return Found[T]{Row: row}
}

// Require turns a resolution into the row or a NotFoundError/ForbiddenError
// naming resource.
func Require[T any](res Resolution[T], resource string) (T, error) {
	var zero T
	switch r := res.(type) {
	case Found[T]:
		return r.Row, nil
	case Forbidden[T]:
		return zero, &ForbiddenError{Resource: resource}
	default:
		return zero, &NotFoundError{Resource: resource}
	}
}

// ResolveList looks up a list and checks it belongs to userID.
// Existence is decided before ownership.
func ResolveList(ctx context.Context, db *gorm.DB, listID, userID uint, checkOwnership bool) (Resolution[models.List], error) {
	var l models.List
	err := db.WithContext(ctx).Where("id = ?", listID).Take(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound[models.List]{}, nil
	}
	if err != nil {
		return nil, storageErr("resolve list", err)
	}
	return decide(l, l.UserID, userID, checkOwnership), nil
}

type ownedItem struct {
	models.Item
	OwnerID uint
}

// ResolveItem looks up an item by id under listID and checks the list belongs
// to userID. An item that exists under a different list resolves as NotFound.
func ResolveItem(ctx context.Context, db *gorm.DB, listID, itemID, userID uint, checkOwnership bool) (Resolution[models.Item], error) {
	var row ownedItem
	err := db.WithContext(ctx).
		Model(&models.Item{}).
		Select("items.*, lists.user_id AS owner_id").
		Joins("JOIN lists ON lists.id = items.list_id").
		Where("items.id = ? AND lists.id = ?", itemID, listID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound[models.Item]{}, nil
	}
	if err != nil {
		return nil, storageErr("resolve item", err)
	}
	return decide(row.Item, row.OwnerID, userID, checkOwnership), nil
}

// ResolveBackup looks up a backup record and checks it belongs to userID.
func ResolveBackup(ctx context.Context, db *gorm.DB, backupID, userID uint) (Resolution[models.Backup], error) {
	var b models.Backup
	err := db.WithContext(ctx).Where("id = ?", backupID).Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound[models.Backup]{}, nil
	}
	if err != nil {
		return nil, storageErr("resolve backup", err)
	}
	return decide(b, b.UserID, userID, true), nil
}
