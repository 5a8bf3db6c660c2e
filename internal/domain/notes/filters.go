package notes

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type FilterError struct {
	Field   string
	Message string
}

func (e FilterError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ParseListParams reads list query parameters. Limit defaults to 20 and
// offset to 0 when unspecified.
func ParseListParams(values url.Values) (Filters, Page, error) {
	filters := Filters{}
	page := Page{Limit: DefaultLimit}

	filters.Query = strings.TrimSpace(values.Get("q"))
	filters.Tag = strings.TrimSpace(values.Get("tag"))

	published, err := parsePublished(values.Get("published"))
	if err != nil {
		return filters, page, err
	}
	filters.Published = published

	limit, err := parseLimit(values.Get("limit"))
	if err != nil {
		return filters, page, err
	}
	page.Limit = limit

	offset, err := parseOffset(values.Get("offset"))
	if err != nil {
		return filters, page, err
	}
	page.Offset = offset

	return filters, page, nil
}

func parsePublished(value string) (*bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	switch strings.ToLower(value) {
	case "true":
		published := true
		return &published, nil
	case "false":
		published := false
		return &published, nil
	default:
		return nil, FilterError{Field: "published", Message: "must be true or false"}
	}
}

func parseLimit(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultLimit, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, FilterError{Field: "limit", Message: "must be a number"}
	}
	if parsed < 1 || parsed > MaxLimit {
		return 0, FilterError{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", MaxLimit)}
	}
	return parsed, nil
}

func parseOffset(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, FilterError{Field: "offset", Message: "must be a number"}
	}
	if parsed < 0 {
		return 0, FilterError{Field: "offset", Message: "must not be negative"}
	}
	return parsed, nil
}
