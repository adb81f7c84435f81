package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/NOTIVEAPP/notive-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const exportSheet = "Items"

var exportHeaders = []string{"List", "Muted", "Archived", "Item", "Done", "Finished at", "Distance (m)", "Frequency (min)", "Created at"}

// ExportHandler serves the spreadsheet exports.
type ExportHandler struct {
	export *service.ExportService
	logger *zap.Logger
	now    func() time.Time
}

func NewExportHandler(export *service.ExportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{export: export, logger: logger, now: time.Now}
}

func exportRecord(r service.ExportRow) []string {
	finished := ""
	if r.FinishedAt != nil {
		finished = r.FinishedAt.UTC().Format(time.RFC3339)
	}
	return []string{
		r.ListName,
		strconv.FormatBool(r.Muted),
		strconv.FormatBool(r.Archived),
		r.ItemName,
		strconv.FormatBool(r.Done),
		finished,
		strconv.Itoa(r.Distance),
		strconv.Itoa(r.Frequency),
		r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *ExportHandler) rows(c *gin.Context) ([]service.ExportRow, bool) {
	uid, ok := userID(c, h.logger)
	if !ok {
		return nil, false
	}
	rows, err := h.export.Rows(c.Request.Context(), uid)
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}
	return rows, true
}

func (h *ExportHandler) attachment(c *gin.Context, contentType, ext string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"notive_%s.%s\"",
		h.now().Format("20060102"), ext))
}

// ExportCSV writes one row per item.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	rows, ok := h.rows(c)
	if !ok {
		return
	}

	h.attachment(c, "text/csv; charset=utf-8", "csv")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(exportHeaders)
	for _, r := range rows {
		_ = w.Write(exportRecord(r))
	}
	w.Flush()
	if err := w.Error(); err != nil {
		h.logger.Error("write csv export", zap.Error(err))
	}
}

// ExportXLSX writes the same rows as ExportCSV into a single sheet.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	rows, ok := h.rows(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		respondError(c, h.logger, err)
		return
	}

	for i, v := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(exportSheet, cell, v)
	}
	for i, r := range rows {
		for j, v := range exportRecord(r) {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			_ = f.SetCellValue(exportSheet, cell, v)
		}
	}

	_ = f.SetColWidth(exportSheet, "A", "A", 20)
	_ = f.SetColWidth(exportSheet, "D", "D", 30)
	_ = f.SetColWidth(exportSheet, "F", "F", 22)
	_ = f.SetColWidth(exportSheet, "I", "I", 22)

	buf, err := f.WriteToBuffer()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.attachment(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
