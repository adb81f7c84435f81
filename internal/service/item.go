package service

import (
	"context"
	"strings"
	"time"

	"github.com/NOTIVEAPP/notive-backend/internal/models"
	"github.com/NOTIVEAPP/notive-backend/internal/util"

	"gorm.io/gorm"
)

// ItemService manages items nested under lists. Operations addressed by
// (list id, item id) go through ResolveItem; operations addressed by list id
// go through the ListService first so list errors surface before item lookup.
//
// ToggleDone is read-then-write like the list toggles: last write wins.
type ItemService struct {
	db    *gorm.DB
	lists *ListService
	now   func() time.Time
}

func NewItemService(db *gorm.DB, lists *ListService) *ItemService {
	return &ItemService{db: db, lists: lists, now: time.Now}
}

// NewItem holds the fields accepted when creating an item.
type NewItem struct {
	Name      string
	Distance  *int
	Frequency *int
}

// ItemPatch holds the fields of a partial update; nil means unchanged.
type ItemPatch struct {
	Name      *string
	Distance  *int
	Frequency *int
}

// Empty reports whether the patch changes nothing.
func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.Distance == nil && p.Frequency == nil
}

// ListAllForUser returns every item of every list the user owns, grouped by list id.
func (s *ItemService) ListAllForUser(ctx context.Context, userID uint) (map[uint][]models.Item, error) {
	var items []models.Item
	if err := s.db.WithContext(ctx).
		Select("items.*").
		Joins("JOIN lists ON lists.id = items.list_id").
		Where("lists.user_id = ?", userID).
		Order("items.id ASC").
		Find(&items).Error; err != nil {
		return nil, storageErr("list user items", err)
	}

	grouped := make(map[uint][]models.Item)
	for _, it := range items {
		grouped[it.ListID] = append(grouped[it.ListID], it)
	}
	return grouped, nil
}

// ListForList returns the items of one list after checking the list.
func (s *ItemService) ListForList(ctx context.Context, userID, listID uint) ([]models.Item, error) {
	if _, err := s.lists.Get(ctx, userID, listID); err != nil {
		return nil, err
	}

	items := make([]models.Item, 0)
	if err := s.db.WithContext(ctx).
		Where("list_id = ?", listID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, storageErr("list items", err)
	}
	return items, nil
}

// Get returns an item addressed by its list and id.
func (s *ItemService) Get(ctx context.Context, userID, listID, itemID uint) (models.Item, error) {
	res, err := ResolveItem(ctx, s.db, listID, itemID, userID, true)
	if err != nil {
		return models.Item{}, err
	}
	return Require(res, ResourceItem)
}

// Create adds an item to a list the user owns. Distance and frequency default
// to models.DefaultDistance and models.DefaultFrequency. The list is returned
// for its name.
func (s *ItemService) Create(ctx context.Context, userID, listID uint, in NewItem) (Created, models.List, error) {
	name := strings.TrimSpace(in.Name)
	if err := util.ValidateName(name); err != nil {
		return Created{}, models.List{}, nameErr(err, "Please provide a name for the item.")
	}

	distance, frequency := models.DefaultDistance, models.DefaultFrequency
	if in.Distance != nil {
		if err := util.ValidateDistance(*in.Distance); err != nil {
			return Created{}, models.List{}, validationErr("Distance must be a positive number of meters.")
		}
		distance = *in.Distance
	}
	if in.Frequency != nil {
		if err := util.ValidateFrequency(*in.Frequency); err != nil {
			return Created{}, models.List{}, validationErr("Frequency must be a positive number of minutes.")
		}
		frequency = *in.Frequency
	}

	l, err := s.lists.Get(ctx, userID, listID)
	if err != nil {
		return Created{}, models.List{}, err
	}

	item := models.Item{
		ListID:    listID,
		Name:      name,
		CreatedAt: s.now().Unix(),
		Distance:  distance,
		Frequency: frequency,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return Created{}, models.List{}, storageErr("create item", err)
	}
	return Created{ID: item.ID, CreatedAt: item.CreatedAt}, l, nil
}

// Update applies a partial update; only the fields set in patch change.
func (s *ItemService) Update(ctx context.Context, userID, listID, itemID uint, patch ItemPatch) error {
	if patch.Empty() {
		return validationErr(util.MsgInvalidParams)
	}

	updates := make(map[string]interface{}, 3)
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := util.ValidateName(name); err != nil {
			return nameErr(err, "Please provide a name!")
		}
		updates["name"] = name
	}
	if patch.Distance != nil {
		if err := util.ValidateDistance(*patch.Distance); err != nil {
			return validationErr("Distance must be a positive number of meters.")
		}
		updates["distance"] = *patch.Distance
	}
	if patch.Frequency != nil {
		if err := util.ValidateFrequency(*patch.Frequency); err != nil {
			return validationErr("Frequency must be a positive number of minutes.")
		}
		updates["frequency"] = *patch.Frequency
	}

	if _, err := s.Get(ctx, userID, listID, itemID); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Model(&models.Item{}).
		Where("id = ?", itemID).
		Updates(updates).Error; err != nil {
		return storageErr("update item", err)
	}
	return nil
}

// ToggleDone moves the item between open and done and returns the new state.
// Open→Done stamps finished_at with the current time, Done→Open clears it.
func (s *ItemService) ToggleDone(ctx context.Context, userID, listID, itemID uint) (bool, error) {
	item, err := s.Get(ctx, userID, listID, itemID)
	if err != nil {
		return false, err
	}

	updates := map[string]interface{}{"is_done": true, "finished_at": s.now().Unix()}
	if item.IsDone {
		updates = map[string]interface{}{"is_done": false, "finished_at": nil}
	}

	if err := s.db.WithContext(ctx).Model(&models.Item{}).
		Where("id = ?", itemID).
		Updates(updates).Error; err != nil {
		return false, storageErr("toggle item", err)
	}
	return !item.IsDone, nil
}

// Delete removes one item.
func (s *ItemService) Delete(ctx context.Context, userID, listID, itemID uint) error {
	if _, err := s.Get(ctx, userID, listID, itemID); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Where("id = ?", itemID).Delete(&models.Item{}).Error; err != nil {
		return storageErr("delete item", err)
	}
	return nil
}
