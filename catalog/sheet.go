package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/qyinm/craftshelf/types"
)

var sheetColumns = []string{"id", "name", "price", "image", "desc", "group"}

// SheetSource implements types.CatalogSource over a local .xlsx export of the
// product sheet. The first row is the header; columns may appear in any order.
type SheetSource struct {
	path  string
	sheet string
}

var _ types.CatalogSource = (*SheetSource)(nil)

// NewSheetSource reads sheet from the workbook at path. An empty sheet name means
// the first sheet in the workbook.
func NewSheetSource(path, sheet string) *SheetSource {
	return &SheetSource{path: path, sheet: sheet}
}

// FetchProducts reads every non-blank row below the header.
func (s *SheetSource) FetchProducts(ctx context.Context) ([]types.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", s.path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	index, err := headerIndex(rows[0])
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}

	products := make([]types.Product, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}
		products = append(products, types.NewProduct(
			get("id"),
			get("name"),
			get("price"),
			get("image"),
			get("desc"),
			get("group"),
		))
	}
	return products, nil
}

// headerIndex maps known column names to their position. At least the name
// column must be present for the sheet to be a product sheet.
func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int)
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if !slices.Contains(sheetColumns, key) {
			continue
		}
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	if _, ok := index["name"]; !ok {
		return nil, fmt.Errorf("header has no name column")
	}
	return index, nil
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
