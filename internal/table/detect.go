package table

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"

	"github.com/Veraticus/rplmatch/internal/model"
)

// Default header keywords used to guess the matching columns.
const (
	DefaultCustomerKeyword  = "customer"
	DefaultReferenceKeyword = "rpl"
)

// ErrNoColumns is returned when a table has no header columns to choose from.
var ErrNoColumns = errors.New("table has no columns")

// Keywords are the case-insensitive substrings that identify each column.
type Keywords struct {
	Customer  string
	Reference string
}

// DefaultKeywords returns the stock column keywords.
func DefaultKeywords() Keywords {
	return Keywords{Customer: DefaultCustomerKeyword, Reference: DefaultReferenceKeyword}
}

// DetectSelector suggests the customer and reference columns. The customer
// column is the first header containing the customer keyword, else the
// first header. The reference column is the first header containing the
// reference keyword, else the second header, else the first.
func DetectSelector(headers []string, keywords Keywords) (model.FieldSelector, error) {
	if len(headers) == 0 {
		return model.FieldSelector{}, ErrNoColumns
	}

	if keywords.Customer == "" {
		keywords.Customer = DefaultCustomerKeyword
	}
	if keywords.Reference == "" {
		keywords.Reference = DefaultReferenceKeyword
	}

	sel := model.FieldSelector{
		CustomerField:  headers[0],
		ReferenceField: headers[0],
	}
	if len(headers) > 1 {
		sel.ReferenceField = headers[1]
	}

	if i := findHeader(headers, keywords.Customer); i >= 0 {
		sel.CustomerField = headers[i]
	}
	if i := findHeader(headers, keywords.Reference); i >= 0 {
		sel.ReferenceField = headers[i]
	}

	return sel, nil
}

func findHeader(headers []string, keyword string) int {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(keyword))
	if needle == "" {
		return -1
	}
	for i, h := range headers {
		if strings.Contains(fold.String(h), needle) {
			return i
		}
	}
	return -1
}
