package menu

import (
	"context"
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/menu"
	"github.com/qrdine/backend/internal/domain/shared"
	"github.com/qrdine/backend/internal/infrastructure/excel"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultMaxImportRows caps the data rows of one uploaded workbook
const DefaultMaxImportRows = 1000

// Spreadsheet columns, in template order
const (
	ColumnName        = "name"
	ColumnCategory    = "category"
	ColumnPrice       = "price"
	ColumnDescription = "description"
	ColumnAvailable   = "available"
	ColumnSortOrder   = "sort_order"
	ColumnImageURL    = "image_url"
	ColumnTags        = "tags"
)

// TemplateColumns lists the header row of the menu workbook
var TemplateColumns = []string{
	ColumnName, ColumnCategory, ColumnPrice, ColumnDescription,
	ColumnAvailable, ColumnSortOrder, ColumnImageURL, ColumnTags,
}

var requiredColumns = []string{ColumnName, ColumnCategory, ColumnPrice}

// menuRow is a spreadsheet row that passed format checks.
// Nil and empty optional fields leave an existing item untouched.
type menuRow struct {
	line        int
	name        string
	category    string
	price       decimal.Decimal
	description string
	available   *bool
	sortOrder   *int
	imageURL    string
	tags        []string
}

// MenuImportService imports and exports menus as xlsx workbooks
type MenuImportService struct {
	repo    menu.MenuItemRepository
	cache   MenuCache
	logger  *zap.Logger
	maxRows int
}

// NewMenuImportService creates a new MenuImportService. cache may be nil.
func NewMenuImportService(repo menu.MenuItemRepository, cache MenuCache, logger *zap.Logger, maxRows int) *MenuImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxRows <= 0 {
		maxRows = DefaultMaxImportRows
	}
	return &MenuImportService{repo: repo, cache: cache, logger: logger, maxRows: maxRows}
}

// Import upserts menu items by name from the first sheet of an xlsx workbook.
// Invalid rows are reported and skipped; the remaining rows are saved together.
func (s *MenuImportService) Import(ctx context.Context, restaurantID uuid.UUID, r io.Reader) (*MenuImportResult, error) {
	sheet, err := excel.ReadFirstSheet(r, s.maxRows)
	if err != nil {
		return nil, workbookError(err, s.maxRows)
	}
	if missing := sheet.MissingHeaders(requiredColumns); len(missing) > 0 {
		return nil, shared.NewDomainErrorf("INVALID_INPUT", "Missing required columns: %s", strings.Join(missing, ", "))
	}

	result := &MenuImportResult{TotalRows: len(sheet.Rows)}
	rowErrors := excel.NewErrorCollection(100)

	parsed := make([]menuRow, 0, len(sheet.Rows))
	firstSeen := make(map[string]int, len(sheet.Rows))
	for _, row := range sheet.Rows {
		mr, ok := parseMenuRow(row, rowErrors)
		if !ok {
			result.Skipped++
			continue
		}
		key := strings.ToLower(mr.name)
		if first, dup := firstSeen[key]; dup {
			rowErrors.AddDuplicateError(mr.line, ColumnName, mr.name, first)
			result.Skipped++
			continue
		}
		firstSeen[key] = mr.line
		parsed = append(parsed, mr)
	}

	existing, err := s.loadExisting(ctx, restaurantID, parsed)
	if err != nil {
		return nil, err
	}

	toSave := make([]*menu.MenuItem, 0, len(parsed))
	for _, mr := range parsed {
		item, isNew, err := s.applyRow(restaurantID, mr, existing)
		if err != nil {
			rowErrors.Add(rowErrorFor(mr.line, err))
			result.Skipped++
			continue
		}
		toSave = append(toSave, item)
		if isNew {
			result.Created++
		} else {
			result.Updated++
		}
	}

	if len(toSave) > 0 {
		if err := s.repo.SaveBatch(ctx, toSave); err != nil {
			return nil, err
		}
		if s.cache != nil {
			s.cache.Invalidate(ctx, restaurantID)
		}
	}

	result.Errors = rowErrors.Errors()
	result.TotalErrors = rowErrors.TotalCount()
	result.IsTruncated = rowErrors.IsTruncated()

	s.logger.Info("Menu import finished",
		zap.String("restaurant_id", restaurantID.String()),
		zap.Int("total_rows", result.TotalRows),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

// ExportTemplate writes the header row followed by the current menu
func (s *MenuImportService) ExportTemplate(ctx context.Context, restaurantID uuid.UUID, w io.Writer) error {
	filter := shared.Filter{
		Page:     1,
		PageSize: s.maxRows,
		OrderBy:  "category",
		OrderDir: "asc",
		Filters:  make(map[string]interface{}),
	}
	items, err := s.repo.FindAllForRestaurant(ctx, restaurantID, filter)
	if err != nil {
		return err
	}

	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := strings.ToLower(items[i].Category), strings.ToLower(items[j].Category)
		if ci != cj {
			return ci < cj
		}
		if items[i].SortOrder != items[j].SortOrder {
			return items[i].SortOrder < items[j].SortOrder
		}
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})

	rows := make([][]interface{}, len(items))
	for i, item := range items {
		available := "yes"
		if !item.IsAvailable {
			available = "no"
		}
		rows[i] = []interface{}{
			item.Name,
			item.Category,
			item.Price.StringFixed(2),
			item.Description,
			available,
			item.SortOrder,
			item.ImageURL,
			strings.Join(item.Tags, ", "),
		}
	}
	return excel.WriteSheet(w, TemplateColumns, rows)
}

func (s *MenuImportService) loadExisting(ctx context.Context, restaurantID uuid.UUID, rows []menuRow) (map[string]*menu.MenuItem, error) {
	existing := make(map[string]*menu.MenuItem)
	if len(rows) == 0 {
		return existing, nil
	}
	names := make([]string, len(rows))
	for i, mr := range rows {
		names[i] = strings.ToLower(mr.name)
	}
	items, err := s.repo.FindByNamesForRestaurant(ctx, restaurantID, names)
	if err != nil {
		return nil, err
	}
	for i := range items {
		existing[strings.ToLower(items[i].Name)] = &items[i]
	}
	return existing, nil
}

// applyRow builds a new item or updates the existing one with the same name
func (s *MenuImportService) applyRow(restaurantID uuid.UUID, mr menuRow, existing map[string]*menu.MenuItem) (*menu.MenuItem, bool, error) {
	item, found := existing[strings.ToLower(mr.name)]
	isNew := !found
	if isNew {
		created, err := menu.NewMenuItem(restaurantID, mr.name, mr.category, mr.price)
		if err != nil {
			return nil, false, err
		}
		item = created
	} else {
		// validate on a copy so a failing row leaves the loaded item untouched
		updated := *item
		updated.Tags = append([]string(nil), item.Tags...)
		if err := updated.Rename(mr.name); err != nil {
			return nil, false, err
		}
		if err := updated.SetCategory(mr.category); err != nil {
			return nil, false, err
		}
		if err := updated.SetPrice(mr.price); err != nil {
			return nil, false, err
		}
		item = &updated
	}

	if mr.description != "" {
		if err := item.SetDescription(mr.description); err != nil {
			return nil, false, err
		}
	}
	if mr.imageURL != "" {
		if err := item.SetImageURL(mr.imageURL); err != nil {
			return nil, false, err
		}
	}
	if mr.tags != nil {
		if err := item.SetTags(mr.tags); err != nil {
			return nil, false, err
		}
	}
	if mr.sortOrder != nil {
		item.SetSortOrder(*mr.sortOrder)
	}
	if mr.available != nil {
		item.SetAvailability(*mr.available)
	}
	return item, isNew, nil
}

// parseMenuRow checks the cell formats of one row, collecting every problem found
func parseMenuRow(row *excel.Row, rowErrors *excel.ErrorCollection) (menuRow, bool) {
	mr := menuRow{line: row.LineNumber}
	ok := true

	mr.name = row.Get(ColumnName)
	if mr.name == "" {
		rowErrors.AddRequiredError(row.LineNumber, ColumnName)
		ok = false
	}
	mr.category = row.Get(ColumnCategory)
	if mr.category == "" {
		rowErrors.AddRequiredError(row.LineNumber, ColumnCategory)
		ok = false
	}

	rawPrice := row.Get(ColumnPrice)
	if rawPrice == "" {
		rowErrors.AddRequiredError(row.LineNumber, ColumnPrice)
		ok = false
	} else if price, err := parsePrice(rawPrice); err != nil {
		rowErrors.AddFormatError(row.LineNumber, ColumnPrice, "a positive number with at most two decimals", rawPrice)
		ok = false
	} else {
		mr.price = price
	}

	if raw := row.Get(ColumnAvailable); raw != "" {
		available, valid := parseAvailable(raw)
		if !valid {
			rowErrors.AddFormatError(row.LineNumber, ColumnAvailable, "yes/no/true/false/1/0", raw)
			ok = false
		} else {
			mr.available = &available
		}
	}

	if raw := row.Get(ColumnSortOrder); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			rowErrors.AddFormatError(row.LineNumber, ColumnSortOrder, "a whole number", raw)
			ok = false
		} else {
			mr.sortOrder = &n
		}
	}

	mr.description = row.Get(ColumnDescription)
	mr.imageURL = row.Get(ColumnImageURL)
	if raw := row.Get(ColumnTags); raw != "" {
		mr.tags = strings.Split(raw, ",")
	}
	return mr, ok
}

func parsePrice(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if !strings.Contains(cleaned, ".") {
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}
	return decimal.NewFromString(cleaned)
}

func parseAvailable(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "true", "1":
		return true, true
	case "no", "n", "false", "0":
		return false, true
	}
	return false, false
}

func rowErrorFor(line int, err error) excel.RowError {
	if domainErr, ok := shared.AsDomainError(err); ok {
		return excel.NewRowError(line, columnForCode(domainErr.Code), excel.ErrCodeImportInvalidValue, domainErr.Message)
	}
	return excel.NewRowError(line, "", excel.ErrCodeImportInvalidValue, err.Error())
}

func columnForCode(code string) string {
	switch code {
	case "INVALID_NAME":
		return ColumnName
	case "INVALID_CATEGORY":
		return ColumnCategory
	case "INVALID_PRICE":
		return ColumnPrice
	case "INVALID_DESCRIPTION":
		return ColumnDescription
	case "INVALID_IMAGE_URL":
		return ColumnImageURL
	case "INVALID_TAG":
		return ColumnTags
	}
	return ""
}

func workbookError(err error, maxRows int) error {
	switch {
	case errors.Is(err, excel.ErrEmptyWorkbook), errors.Is(err, excel.ErrNoDataRows):
		return shared.NewDomainError("INVALID_INPUT", "The workbook contains no menu rows")
	case errors.Is(err, excel.ErrTooManyRows):
		return shared.NewDomainErrorf("INVALID_INPUT", "The workbook exceeds the limit of %d rows", maxRows)
	default:
		return shared.NewDomainError("INVALID_INPUT", "The upload is not a readable xlsx workbook")
	}
}
