package config

import (
	"fmt"
	"slices"
	"strings"

	"git.home.luguber.info/inful/postbuilder/internal/markdown"
)

// NormalizationResult captures adjustments and warnings from the normalization pass.
type NormalizationResult struct {
	Warnings []string
}

// NormalizeConfig canonicalizes enumerated values in place. It runs after
// validation, so every enum is known to be recognised.
func NormalizeConfig(c *Config) *NormalizationResult {
	res := &NormalizationResult{}

	if lvl := NormalizeLogLevel(string(c.Logging.Level)); lvl != c.Logging.Level {
		res.warnChanged("logging.level", string(c.Logging.Level), string(lvl))
		c.Logging.Level = lvl
	}
	if f := NormalizeLogFormat(string(c.Logging.Format)); f != c.Logging.Format {
		res.warnChanged("logging.format", string(c.Logging.Format), string(f))
		c.Logging.Format = f
	}

	for i, ext := range c.Posts.Extensions {
		if lower := strings.ToLower(strings.TrimSpace(ext)); lower != ext {
			res.warnChanged("posts.extensions", ext, lower)
			c.Posts.Extensions[i] = lower
		}
	}

	known := markdown.ExtensionNames()
	for i, name := range c.Markdown.Extensions {
		canonical := strings.ToLower(strings.TrimSpace(name))
		if !slices.Contains(known, canonical) {
			res.Warnings = append(res.Warnings, fmt.Sprintf("markdown.extensions: unknown extension %q ignored (valid: %v)", name, known))
			continue
		}
		c.Markdown.Extensions[i] = canonical
	}

	return res
}

func (r *NormalizationResult) warnChanged(field, from, to string) {
	if strings.TrimSpace(from) == "" {
		return
	}
	r.Warnings = append(r.Warnings, fmt.Sprintf("%s normalized from %q to %q", field, from, to))
}
