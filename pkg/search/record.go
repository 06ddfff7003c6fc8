package search

import (
	"fmt"
	"strconv"
	"time"
)

// Attribute names the renderer recognizes. The backend may return any
// attributes it likes; everything outside this set is carried but invisible.
const (
	AttrName         = "name"
	AttrPhone        = "phone"
	AttrAddress      = "address"
	AttrInstitution  = "institution"
	AttrOrganization = "organization"
	AttrSourceURL    = "source_url"
	AttrScrapedAt    = "scraped_at"
)

// RenderableAttrs is the ordered set of record attributes shown to the user.
var RenderableAttrs = []string{AttrName, AttrPhone, AttrAddress, AttrInstitution, AttrOrganization}

// Record is one candidate unit of public information returned by the
// backend. Its schema is open: attributes are loosely typed and a missing
// attribute is simply absent, never an error.
type Record map[string]any

// Attr returns the named attribute as a string. Scalar non-string values
// are stringified, since the backend's records are loosely typed and a
// numeric phone is still a phone. Structured values (objects, arrays) and
// nulls report absent. The bool reports whether the attribute is present
// and non-empty.
func (r Record) Attr(name string) (string, bool) {
	v, ok := r[name]
	if !ok {
		return "", false
	}

	var s string
	switch v := v.(type) {
	case string:
		s = v
	case float64:
		// JSON numbers decode as float64; render integral ones without
		// a trailing ".0".
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case int, int64, bool:
		s = fmt.Sprint(v)
	default:
		return "", false
	}

	if s == "" {
		return "", false
	}
	return s, true
}

// SourceURL returns the record's source link, if any.
func (r Record) SourceURL() (string, bool) {
	return r.Attr(AttrSourceURL)
}

// ScrapedAt returns the record's scrape timestamp parsed from its ISO-8601
// form. Unparseable or missing timestamps report false.
func (r Record) ScrapedAt() (time.Time, bool) {
	s, ok := r.Attr(AttrScrapedAt)
	if !ok {
		return time.Time{}, false
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
