package services

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"
)

const importChunkSize = 100

const (
	rollsSheet    = "Rolls"
	productsSheet = "Products"
)

var rollColumns = []string{"Name *", "Category", "Roll Width (m) *", "Stock Length (m)", "Reorder Level (m)", "Last Price"}
var productColumns = []string{"Name *", "Category", "Price *", "Floor Price", "Quantity"}

// RollRow is one parsed material roll row from an uploaded price list.
type RollRow struct {
	Name         string
	Category     string
	RollWidth    float64
	StockLength  float64
	ReorderLevel float64
	LastPrice    float64
}

// ProductRow is one parsed product row from an uploaded price list.
type ProductRow struct {
	Name       string
	Category   string
	Price      float64
	FloorPrice float64
	Quantity   float64
}

// ImportRowError describes a validation or insert failure for one row.
type ImportRowError struct {
	Sheet   string `json:"sheet"`
	Row     int    `json:"row"` // 1-based workbook row number
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CatalogImport holds the parsed contents of an uploaded catalog workbook.
type CatalogImport struct {
	Rolls    []RollRow
	Products []ProductRow
	Errors   []ImportRowError
}

// ImportResult summarizes a commit of parsed catalog rows.
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Imported   int              `json:"imported"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
	RolledBack bool             `json:"rolled_back"`
}

// GenerateCatalogTemplate builds the downloadable .xlsx template with a
// Rolls sheet and a Products sheet. Headers marked with * are required.
func GenerateCatalogTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, rollsSheet); err != nil {
		return nil, fmt.Errorf("rename default sheet: %w", err)
	}
	if _, err := f.NewSheet(productsSheet); err != nil {
		return nil, fmt.Errorf("create products sheet: %w", err)
	}

	requiredStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1D4ED8"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	optionalStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#6B7280"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	writeHeader := func(sheet string, headers []string) error {
		for i, h := range headers {
			cell, err := excelize.CoordinatesToCellName(i+1, 1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, h); err != nil {
				return err
			}
			style := optionalStyle
			if strings.HasSuffix(h, "*") {
				style = requiredStyle
			}
			if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
				return err
			}
			col, _ := excelize.ColumnNumberToName(i + 1)
			if err := f.SetColWidth(sheet, col, col, 20); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeHeader(rollsSheet, rollColumns); err != nil {
		return nil, fmt.Errorf("write rolls header: %w", err)
	}
	if err := writeHeader(productsSheet, productColumns); err != nil {
		return nil, fmt.Errorf("write products header: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseCatalogWorkbook reads an uploaded .xlsx price list and returns the
// typed rows plus per-row validation errors. A sheet may be missing; at
// least one of Rolls/Products must be present.
func ParseCatalogWorkbook(file io.Reader) (*CatalogImport, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	imp := &CatalogImport{}

	rollRows, rollsFound, err := sheetDataRows(f, rollsSheet)
	if err != nil {
		return nil, err
	}
	productRows, productsFound, err := sheetDataRows(f, productsSheet)
	if err != nil {
		return nil, err
	}
	if !rollsFound && !productsFound {
		return nil, fmt.Errorf("workbook has neither a %q nor a %q sheet", rollsSheet, productsSheet)
	}

	for i, row := range rollRows {
		rowNum := i + 2 // header occupies row 1
		parsed, rowErrs := parseRollRow(row, rowNum)
		if len(rowErrs) > 0 {
			imp.Errors = append(imp.Errors, rowErrs...)
			continue
		}
		imp.Rolls = append(imp.Rolls, parsed)
	}
	for i, row := range productRows {
		rowNum := i + 2
		parsed, rowErrs := parseProductRow(row, rowNum)
		if len(rowErrs) > 0 {
			imp.Errors = append(imp.Errors, rowErrs...)
			continue
		}
		imp.Products = append(imp.Products, parsed)
	}

	return imp, nil
}

// sheetDataRows returns the data rows of a sheet (header stripped) and
// whether the sheet exists. Fully blank rows are skipped.
func sheetDataRows(f *excelize.File, sheet string) ([][]string, bool, error) {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, false, nil
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, true, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, true, nil
	}

	var data [][]string
	for _, row := range rows[1:] {
		blank := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				blank = false
				break
			}
		}
		if !blank {
			data = append(data, row)
		}
	}
	return data, true, nil
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func parseNumberCell(sheet string, row []string, i, rowNum int, field string, errs *[]ImportRowError) float64 {
	raw := cellAt(row, i)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		*errs = append(*errs, ImportRowError{Sheet: sheet, Row: rowNum, Field: field, Message: fmt.Sprintf("%q is not a number", raw)})
		return 0
	}
	return v
}

func parseRollRow(row []string, rowNum int) (RollRow, []ImportRowError) {
	var errs []ImportRowError

	parsed := RollRow{
		Name:     cellAt(row, 0),
		Category: cellAt(row, 1),
	}
	parsed.RollWidth = parseNumberCell(rollsSheet, row, 2, rowNum, "roll_width", &errs)
	parsed.StockLength = parseNumberCell(rollsSheet, row, 3, rowNum, "stock_length", &errs)
	parsed.ReorderLevel = parseNumberCell(rollsSheet, row, 4, rowNum, "reorder_level", &errs)
	parsed.LastPrice = parseNumberCell(rollsSheet, row, 5, rowNum, "last_price", &errs)

	if parsed.Name == "" {
		errs = append(errs, ImportRowError{Sheet: rollsSheet, Row: rowNum, Field: "name", Message: "Name is required"})
	}
	if parsed.RollWidth <= 0 {
		errs = append(errs, ImportRowError{Sheet: rollsSheet, Row: rowNum, Field: "roll_width", Message: "Roll width must be greater than zero"})
	}
	return parsed, errs
}

func parseProductRow(row []string, rowNum int) (ProductRow, []ImportRowError) {
	var errs []ImportRowError

	parsed := ProductRow{
		Name:     cellAt(row, 0),
		Category: cellAt(row, 1),
	}
	parsed.Price = parseNumberCell(productsSheet, row, 2, rowNum, "price", &errs)
	parsed.FloorPrice = parseNumberCell(productsSheet, row, 3, rowNum, "floor_price", &errs)
	parsed.Quantity = parseNumberCell(productsSheet, row, 4, rowNum, "quantity", &errs)

	if parsed.Name == "" {
		errs = append(errs, ImportRowError{Sheet: productsSheet, Row: rowNum, Field: "name", Message: "Name is required"})
	}
	if parsed.Price <= 0 {
		errs = append(errs, ImportRowError{Sheet: productsSheet, Row: rowNum, Field: "price", Message: "Price must be greater than zero"})
	}
	if parsed.FloorPrice > parsed.Price {
		errs = append(errs, ImportRowError{Sheet: productsSheet, Row: rowNum, Field: "floor_price", Message: "Floor price cannot exceed price"})
	}
	return parsed, errs
}

// CommitCatalogImport inserts parsed rows in chunks of importChunkSize.
// Each chunk is one transaction: if any insert in a chunk fails the chunk is
// rolled back and recorded as failed, and the commit continues with the next
// chunk.
func CommitCatalogImport(app *pocketbase.PocketBase, imp *CatalogImport) (*ImportResult, error) {
	if len(imp.Errors) > 0 {
		// A row can carry several field errors; count it once.
		errorRowSet := make(map[string]bool)
		for _, e := range imp.Errors {
			errorRowSet[fmt.Sprintf("%s:%d", e.Sheet, e.Row)] = true
		}
		return &ImportResult{
			TotalRows:  len(imp.Rolls) + len(imp.Products) + len(errorRowSet),
			Failed:     len(errorRowSet),
			Errors:     imp.Errors,
			RolledBack: true,
		}, nil
	}

	rollsCol, err := app.FindCollectionByNameOrId("material_rolls")
	if err != nil {
		return nil, fmt.Errorf("material_rolls collection not found: %w", err)
	}
	productsCol, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		return nil, fmt.Errorf("products collection not found: %w", err)
	}

	result := &ImportResult{TotalRows: len(imp.Rolls) + len(imp.Products)}

	commitChunks(app, len(imp.Rolls), result, func(txApp core.App, i int) error {
		r := imp.Rolls[i]
		rec := core.NewRecord(rollsCol)
		rec.Set("name", r.Name)
		rec.Set("category", r.Category)
		rec.Set("roll_width", r.RollWidth)
		rec.Set("stock_length", r.StockLength)
		rec.Set("reorder_level", r.ReorderLevel)
		rec.Set("last_price", r.LastPrice)
		return txApp.Save(rec)
	}, rollsSheet)

	commitChunks(app, len(imp.Products), result, func(txApp core.App, i int) error {
		p := imp.Products[i]
		rec := core.NewRecord(productsCol)
		rec.Set("name", p.Name)
		rec.Set("category", p.Category)
		rec.Set("price", p.Price)
		rec.Set("floor_price", p.FloorPrice)
		rec.Set("quantity", p.Quantity)
		return txApp.Save(rec)
	}, productsSheet)

	return result, nil
}

// commitChunks runs save(i) for i in [0,count) in chunked transactions and
// accumulates the outcome into result.
func commitChunks(app *pocketbase.PocketBase, count int, result *ImportResult, save func(txApp core.App, i int) error, sheet string) {
	for start := 0; start < count; start += importChunkSize {
		end := start + importChunkSize
		if end > count {
			end = count
		}

		chunkErr := app.RunInTransaction(func(txApp core.App) error {
			for i := start; i < end; i++ {
				if err := save(txApp, i); err != nil {
					return fmt.Errorf("row %d: %w", i+2, err)
				}
			}
			return nil
		})

		if chunkErr != nil {
			result.Failed += end - start
			result.RolledBack = true
			result.Errors = append(result.Errors, ImportRowError{
				Sheet:   sheet,
				Row:     start + 2,
				Message: chunkErr.Error(),
			})
		} else {
			result.Imported += end - start
		}
	}
}
