package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mutugading/catalog-service/internal/domain/category"
	"github.com/mutugading/catalog-service/internal/domain/shared"
)

// ExportResult represents the export categories result.
type ExportResult struct {
	FileContent []byte
	FileName    string
}

// ExportHandler handles the export categories query.
type ExportHandler struct {
	repo    category.Repository
	storage shared.ObjectStorage
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(repo category.Repository, storage shared.ObjectStorage) *ExportHandler {
	return &ExportHandler{repo: repo, storage: storage}
}

// Handle executes the export categories query, producing a styled xlsx.
func (h *ExportHandler) Handle(ctx context.Context) (*ExportResult, error) {
	categories, err := h.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories for export: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheetName := "Categories"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"No", "ID", "Name", "Description", "Images", "Created At"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "F1", headerStyle)

	for i, c := range categories {
		row := i + 2
		urls := make([]string, 0, len(c.Images()))
		for _, img := range c.Images() {
			urls = append(urls, h.storage.PublicURL(img.Key()))
		}
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), c.ID())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), c.Name())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), c.Description())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), strings.Join(urls, "\n"))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), c.CreatedAt().Format("2006-01-02 15:04:05"))
	}

	_ = f.SetColWidth(sheetName, "A", "A", 5)
	_ = f.SetColWidth(sheetName, "B", "B", 10)
	_ = f.SetColWidth(sheetName, "C", "C", 30)
	_ = f.SetColWidth(sheetName, "D", "D", 50)
	_ = f.SetColWidth(sheetName, "E", "E", 50)
	_ = f.SetColWidth(sheetName, "F", "F", 20)

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel to buffer: %w", err)
	}

	return &ExportResult{
		FileContent: buffer.Bytes(),
		FileName:    "categories_export.xlsx",
	}, nil
}
