package loader

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-userform/pkg/profile"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips markup from remote strings. bluemonday escapes the
// surviving text, so entities are decoded back for plain-text inputs.
func sanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := textSanitizer().Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

func sanitizeRecord(rec profile.Record) profile.Record {
	rec.Name = sanitizeText(rec.Name)
	rec.Username = sanitizeText(rec.Username)
	rec.Email = sanitizeText(rec.Email)
	rec.Phone = sanitizeText(rec.Phone)
	rec.Address.Street = sanitizeText(rec.Address.Street)
	rec.Address.City = sanitizeText(rec.Address.City)
	return rec
}
