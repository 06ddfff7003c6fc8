package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/pubfindco/pubfind/pkg/search"
)

// Attribute display labels, in render order.
var attrLabels = map[string]string{
	search.AttrName:         "Name",
	search.AttrPhone:        "Phone",
	search.AttrAddress:      "Address",
	search.AttrInstitution:  "Institution",
	search.AttrOrganization: "Organization",
}

// FormatScrapedAt renders a scrape timestamp for humans.
func FormatScrapedAt(t time.Time) string {
	return t.Format("Jan 2, 2006 15:04 MST")
}

// RenderRecord renders one record as a bordered block. Only attributes the
// record actually carries appear; absence is omission, not an error. A
// source link and a readable timestamp are added when present.
func (s Styles) RenderRecord(r search.Record) string {
	var lines []string

	for _, attr := range search.RenderableAttrs {
		v, ok := r.Attr(attr)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", attrLabels[attr], v))
	}

	if url, ok := r.SourceURL(); ok {
		lines = append(lines, "Source: "+url)
	}
	if ts, ok := r.ScrapedAt(); ok {
		lines = append(lines, s.Muted.Render("Scraped "+FormatScrapedAt(ts)))
	}

	if len(lines) == 0 {
		lines = append(lines, s.Muted.Render("(no displayable attributes)"))
	}

	return s.RecordBox.Render(strings.Join(lines, "\n"))
}

// RenderResults renders the record list portion of an assistant message.
func (s Styles) RenderResults(records []search.Record) string {
	if len(records) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(records))
	for _, r := range records {
		blocks = append(blocks, s.RenderRecord(r))
	}
	return strings.Join(blocks, "\n")
}

// RenderOptions renders the disambiguation option list. Options are labeled
// positionally, starting at 1, with distinguishing features as plain lines.
func (s Styles) RenderOptions(candidates []search.Candidate) string {
	if len(candidates) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(s.NoticeText.Render("Several records matched. Pick one:"))
	sb.WriteString("\n")
	for i, c := range candidates {
		sb.WriteString(s.OptionTitle.Render(fmt.Sprintf("Option %d", i+1)))
		sb.WriteString("\n")
		for _, f := range c.Option.DistinguishingFeatures {
			sb.WriteString(s.RecordField.Render(f))
			sb.WriteString("\n")
		}
	}
	sb.WriteString(s.Muted.Render("Press the option number to choose."))
	return sb.String()
}

// RenderResponseBody renders the structured portion of an assistant message:
// the record list, then the disambiguation options if the backend asked for
// a choice. The natural-language response text is rendered separately.
func (s Styles) RenderResponseBody(resp *search.Response) string {
	var parts []string

	if block := s.RenderResults(resp.Results); block != "" {
		parts = append(parts, block)
	}
	if resp.NeedsDisambiguation {
		if block := s.RenderOptions(resp.Candidates); block != "" {
			parts = append(parts, block)
		}
	}

	return strings.Join(parts, "\n")
}

// RenderSelection projects a single candidate out of a disambiguation round.
// This is purely local: the backend already returned every candidate, so
// choosing one is a display decision, not a new query. A selection outside
// the candidate list is a reportable inconsistency, never a silent no-op.
func (s Styles) RenderSelection(candidates []search.Candidate, index int) (string, error) {
	if index < 0 || index >= len(candidates) {
		return "", fmt.Errorf("selection %d is out of range: %d candidates", index+1, len(candidates))
	}
	header := fmt.Sprintf("Here are the details for Option %d:", index+1)
	return header + "\n" + s.RenderRecord(candidates[index].Record), nil
}
