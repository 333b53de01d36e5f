package excel

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildWorkbook(t *testing.T, headers []string, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteSheet(&buf, headers, rows))
	return &buf
}

func TestReadFirstSheet(t *testing.T) {
	t.Run("reads rows keyed by normalized header", func(t *testing.T) {
		buf := buildWorkbook(t, []string{"Name", " Category ", "Sort Order"}, [][]interface{}{
			{"Margherita", "Pizza", 1},
			{"", "", ""},
			{" Cola ", "Drinks"},
		})

		sheet, err := ReadFirstSheet(buf, 0)
		require.NoError(t, err)

		assert.Equal(t, []string{"name", "category", "sort_order"}, sheet.Headers)
		require.Len(t, sheet.Rows, 2)
		assert.Equal(t, 2, sheet.Rows[0].LineNumber)
		assert.Equal(t, "Margherita", sheet.Rows[0].Get("name"))
		assert.Equal(t, "1", sheet.Rows[0].Get("sort_order"))
		assert.Equal(t, 4, sheet.Rows[1].LineNumber)
		assert.Equal(t, "Cola", sheet.Rows[1].Get("name"))
		assert.Equal(t, "", sheet.Rows[1].Get("sort_order"))
		assert.True(t, sheet.Rows[1].Has("sort_order"))
	})

	t.Run("reports missing headers", func(t *testing.T) {
		buf := buildWorkbook(t, []string{"name"}, [][]interface{}{{"Margherita"}})

		sheet, err := ReadFirstSheet(buf, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"category", "price"}, sheet.MissingHeaders([]string{"name", "category", "price"}))
	})

	t.Run("fails without data rows", func(t *testing.T) {
		buf := buildWorkbook(t, []string{"name"}, nil)

		_, err := ReadFirstSheet(buf, 0)
		assert.ErrorIs(t, err, ErrNoDataRows)
	})

	t.Run("fails above row limit", func(t *testing.T) {
		buf := buildWorkbook(t, []string{"name"}, [][]interface{}{{"a"}, {"b"}, {"c"}})

		_, err := ReadFirstSheet(buf, 2)
		assert.ErrorIs(t, err, ErrTooManyRows)
	})

	t.Run("fails for non xlsx content", func(t *testing.T) {
		_, err := ReadFirstSheet(strings.NewReader("name,price\nCola,2"), 0)
		assert.Error(t, err)
	})
}

func TestErrorCollection(t *testing.T) {
	ec := NewErrorCollection(2)
	ec.AddRequiredError(2, "name")
	ec.AddFormatError(3, "price", "a positive number", "abc")
	ec.AddDuplicateError(4, "name", "Cola", 3)

	assert.Equal(t, 3, ec.TotalCount())
	assert.Len(t, ec.Errors(), 2)
	assert.True(t, ec.IsTruncated())
	assert.Equal(t, "row 2, column 'name': field 'name' is required", ec.Errors()[0].Error())
	assert.Equal(t, "abc", ec.Errors()[1].Value)
}
