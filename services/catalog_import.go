package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CatalogImportResult is returned after parsing and validating an uploaded
// catalog file.
type CatalogImportResult struct {
	TotalRows int               `json:"total_rows"`
	ValidRows int               `json:"valid_rows"`
	ErrorRows int               `json:"error_rows"`
	Errors    []ValidationError `json:"errors"`
	Products  []Product         `json:"-"`
	FileName  string            `json:"-"`
}

// catalogColumns maps normalized header labels to product fields.
var catalogColumns = map[string]string{
	"name":         "name",
	"product":      "name",
	"category":     "category",
	"price":        "price",
	"description":  "description",
	"payment type": "payment_type",
	"payment":      "payment_type",
}

// CatalogTemplateHeaders are the column headers of an import file.
var CatalogTemplateHeaders = []string{"Name", "Category", "Price", "Description", "Payment Type"}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}

// mapCatalogHeaders maps uploaded column headers to product field keys.
// Unrecognized columns map to "".
func mapCatalogHeaders(headers []string) []string {
	mapped := make([]string, len(headers))
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(h), "*")))
		mapped[i] = catalogColumns[norm]
	}
	return mapped
}

// ParseCatalogFile parses and validates an uploaded .csv or .xlsx catalog.
// Rows with errors are reported and left out of Products.
func ParseCatalogFile(file io.Reader, fileName string) (*CatalogImportResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys := mapCatalogHeaders(headers)
	hasName := false
	for _, k := range columnKeys {
		if k == "name" {
			hasName = true
		}
	}
	if !hasName {
		return nil, fmt.Errorf("file must have a Name column")
	}

	result := &CatalogImportResult{
		TotalRows: len(dataRows),
		FileName:  fileName,
	}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row
		rowData := make(map[string]string)
		for colIdx, key := range columnKeys {
			if key == "" || colIdx >= len(row) {
				continue
			}
			rowData[key] = strings.TrimSpace(row[colIdx])
		}

		p, rowErrors := productFromImportRow(rowNum, rowData)
		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			result.ErrorRows++
			continue
		}
		result.Products = append(result.Products, p)
	}
	result.ValidRows = len(result.Products)

	return result, nil
}

func productFromImportRow(rowNum int, data map[string]string) (Product, []ValidationError) {
	var errs []ValidationError

	p := Product{
		Name:        data["name"],
		Category:    data["category"],
		Description: data["description"],
	}
	if p.Name == "" {
		errs = append(errs, ValidationError{Row: rowNum, Field: "Name", Message: "Name is required"})
	}

	if raw := strings.ReplaceAll(strings.TrimPrefix(data["price"], "₹"), ",", ""); raw != "" {
		price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		switch {
		case err != nil:
			errs = append(errs, ValidationError{Row: rowNum, Field: "Price", Message: fmt.Sprintf("Price %q is not a number", data["price"])})
		case price < 0:
			errs = append(errs, ValidationError{Row: rowNum, Field: "Price", Message: "Price cannot be negative"})
		default:
			p.Price = price
		}
	}

	switch pt := PaymentType(data["payment_type"]); {
	case pt == "":
		p.PaymentType = PaymentSubscription
	case strings.EqualFold(string(pt), string(PaymentSubscription)):
		p.PaymentType = PaymentSubscription
	case strings.EqualFold(string(pt), string(PaymentOneTime)), strings.EqualFold(string(pt), "one-time"):
		p.PaymentType = PaymentOneTime
	default:
		errs = append(errs, ValidationError{
			Row:     rowNum,
			Field:   "Payment Type",
			Message: fmt.Sprintf("Payment Type must be %q or %q", PaymentSubscription, PaymentOneTime),
		})
	}

	return p, errs
}

// GenerateCatalogTemplate creates an .xlsx import template with the
// expected headers and one example row.
func GenerateCatalogTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Catalog"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	for i, h := range CatalogTemplateHeaders {
		c, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, c, h)
	}
	f.SetCellStyle(sheet, "A1", "E1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 36)
	f.SetColWidth(sheet, "B", "B", 14)
	f.SetColWidth(sheet, "C", "C", 12)
	f.SetColWidth(sheet, "D", "D", 50)
	f.SetColWidth(sheet, "E", "E", 18)

	example := []any{"Robotics kit", "Hardware", 2500, "Starter kit with sensors and motors.", string(PaymentOneTime)}
	for i, v := range example {
		c, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(sheet, c, v)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write catalog template: %w", err)
	}
	return buf.Bytes(), nil
}
