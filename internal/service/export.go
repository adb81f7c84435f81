package service

import (
	"context"
	"time"
)

// ExportRow is one item flattened with its list for CSV/XLSX export.
type ExportRow struct {
	ListName   string
	Muted      bool
	Archived   bool
	ItemName   string
	Done       bool
	CreatedAt  time.Time
	FinishedAt *time.Time
	Distance   int
	Frequency  int
}

// ExportService flattens a user's lists and items for spreadsheet export.
type ExportService struct {
	lists *ListService
	items *ItemService
}

func NewExportService(lists *ListService, items *ItemService) *ExportService {
	return &ExportService{lists: lists, items: items}
}

// Rows returns one row per item, ordered by list then item id.
// Lists without items are omitted.
func (s *ExportService) Rows(ctx context.Context, userID uint) ([]ExportRow, error) {
	lists, err := s.lists.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	grouped, err := s.items.ListAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows := make([]ExportRow, 0)
	for _, l := range lists {
		for _, it := range grouped[l.ID] {
			row := ExportRow{
				ListName:  l.Name,
				Muted:     l.IsMuted,
				Archived:  l.IsArchived,
				ItemName:  it.Name,
				Done:      it.IsDone,
				CreatedAt: time.Unix(it.CreatedAt, 0),
				Distance:  it.Distance,
				Frequency: it.Frequency,
			}
			if it.FinishedAt != nil {
				finished := time.Unix(*it.FinishedAt, 0)
				row.FinishedAt = &finished
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}
