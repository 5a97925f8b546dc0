package product

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mutugading/catalog-service/internal/domain/product"
	"github.com/mutugading/catalog-service/internal/domain/shared"
)

// ExportResult represents the export products result.
type ExportResult struct {
	FileContent []byte
	FileName    string
}

// ExportHandler handles the export products query.
type ExportHandler struct {
	repo    product.Repository
	storage shared.ObjectStorage
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(repo product.Repository, storage shared.ObjectStorage) *ExportHandler {
	return &ExportHandler{repo: repo, storage: storage}
}

// Handle executes the export products query, producing a styled xlsx.
func (h *ExportHandler) Handle(ctx context.Context) (*ExportResult, error) {
	products, err := h.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products for export: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheetName := "Products"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"No", "ID", "SKU", "Name", "Category ID", "Price", "Main Image", "Created At"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "H1", headerStyle)

	for i, p := range products {
		row := i + 2
		mainURL := ""
		if img := p.MainImage(); img != nil {
			mainURL = h.storage.PublicURL(img.Key())
		}
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), p.ID())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), p.SKU().String())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), p.Name())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), p.CategoryID())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), p.Price())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), mainURL)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), p.CreatedAt().Format("2006-01-02 15:04:05"))
	}

	_ = f.SetColWidth(sheetName, "A", "A", 5)
	_ = f.SetColWidth(sheetName, "B", "B", 10)
	_ = f.SetColWidth(sheetName, "C", "C", 20)
	_ = f.SetColWidth(sheetName, "D", "D", 30)
	_ = f.SetColWidth(sheetName, "E", "E", 12)
	_ = f.SetColWidth(sheetName, "F", "F", 12)
	_ = f.SetColWidth(sheetName, "G", "G", 50)
	_ = f.SetColWidth(sheetName, "H", "H", 20)

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel to buffer: %w", err)
	}

	return &ExportResult{
		FileContent: buffer.Bytes(),
		FileName:    "products_export.xlsx",
	}, nil
}
