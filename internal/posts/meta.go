package posts

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Meta is the typed front matter schema of a post. Keys other than date and
// title are kept in Params.
type Meta struct {
	Date   string         `json:"date"`
	Title  string         `json:"title"`
	Params map[string]any `json:"-"`
}

// Validate checks that date and title are present and date is ISO 8601.
func (m Meta) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Date, validation.Required, validation.By(isoDate)),
		validation.Field(&m.Title, validation.Required),
	)
}

func isoDate(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, ok := ParseDate(s); !ok {
		return validation.NewError("validation_iso_date", "must be an ISO 8601 date")
	}
	return nil
}

// DecodeMeta builds a Meta from parsed front matter fields and validates it.
// Scalar date and title values are taken as text; lists and maps are rejected.
// A time.Time date (from a decoder that resolves timestamps) is formatted as a
// plain date when it has no time of day, RFC 3339 otherwise.
func DecodeMeta(fields map[string]any) (Meta, error) {
	m := Meta{}
	errs := validation.Errors{}

	for key, value := range fields {
		switch key {
		case "date":
			s, err := scalarText(value)
			if err != nil {
				errs["date"] = err
			}
			m.Date = s
		case "title":
			s, err := scalarText(value)
			if err != nil {
				errs["title"] = err
			}
			m.Title = s
		default:
			if m.Params == nil {
				m.Params = make(map[string]any)
			}
			m.Params[key] = value
		}
	}

	if err := errs.Filter(); err != nil {
		return m, err
	}
	return m, m.Validate()
}

func scalarText(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(v), nil
	case time.Time:
		if v.Location() == time.UTC && v.Equal(time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)) {
			return v.Format(time.DateOnly), nil
		}
		return v.Format(time.RFC3339Nano), nil
	default:
		return "", validation.NewError("validation_is_scalar", "must be a scalar value")
	}
}

func (m Meta) summary(id string) Summary {
	return Summary{
		ID:     id,
		Date:   m.Date,
		Title:  m.Title,
		Params: m.Params,
	}
}
