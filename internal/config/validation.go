package config

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks the whole configuration.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Posts),
		validation.Field(&c.Output),
		validation.Field(&c.Logging),
	)
}

func (p PostsConfig) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Directory, validation.Required),
		validation.Field(&p.Extensions,
			validation.Required,
			validation.Each(validation.Required, validation.By(leadingDot)),
		),
	)
}

func (o OutputConfig) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Directory, validation.Required),
		validation.Field(&o.Workers, validation.Required, validation.Min(1)),
	)
}

func (l LoggingConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.By(func(v any) error {
			_, err := logLevelNormalizer.NormalizeWithError(string(v.(LogLevel)))
			return err
		})),
		validation.Field(&l.Format, validation.By(func(v any) error {
			_, err := logFormatNormalizer.NormalizeWithError(string(v.(LogFormat)))
			return err
		})),
	)
}

func leadingDot(v any) error {
	s, _ := v.(string)
	if s != "" && !strings.HasPrefix(strings.TrimSpace(s), ".") {
		return validation.NewError("validation_leading_dot", "must start with a dot")
	}
	return nil
}
