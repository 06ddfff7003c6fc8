package search_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pubfindco/pubfind/pkg/search"
)

var _ = Describe("Decode", func() {
	It("decodes a plain response with no results", func() {
		resp, err := search.Decode([]byte(`{"response":"No records found.","needs_disambiguation":false,"action":"search"}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.Response).To(Equal("No records found."))
		Expect(resp.Results).To(BeEmpty())
		Expect(resp.Candidates).To(BeEmpty())
		Expect(resp.Action).To(Equal("search"))
	})

	It("rejects a body that is not JSON", func() {
		_, err := search.Decode([]byte("<html>502 Bad Gateway</html>"))
		Expect(err).To(HaveOccurred())
	})

	It("rejects a body without response text", func() {
		_, err := search.Decode([]byte(`{"results":[],"needs_disambiguation":false}`))
		Expect(err).To(MatchError(ContainSubstring("missing response text")))
	})

	It("pairs options with results by position", func() {
		body := []byte(`{
			"response": "I found 2 records...",
			"results": [
				{"name": "Zoe Khan", "phone": "021-1111"},
				{"name": "Zoe Khan", "phone": "021-2222"}
			],
			"needs_disambiguation": true,
			"disambiguation_options": [
				{"index": 0, "distinguishing_features": ["Phone 021-1111"]},
				{"index": 1, "distinguishing_features": ["Phone 021-2222"]}
			]
		}`)

		resp, err := search.Decode(body)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.NeedsDisambiguation).To(BeTrue())
		Expect(resp.Candidates).To(HaveLen(2))

		phone, ok := resp.Candidates[1].Record.Attr(search.AttrPhone)
		Expect(ok).To(BeTrue())
		Expect(phone).To(Equal("021-2222"))
		Expect(resp.Candidates[0].Option.DistinguishingFeatures).To(ConsistOf("Phone 021-1111"))
	})

	It("rejects more options than results", func() {
		body := []byte(`{
			"response": "broken",
			"results": [{"name": "A"}],
			"needs_disambiguation": true,
			"disambiguation_options": [
				{"distinguishing_features": ["x"]},
				{"distinguishing_features": ["y"]}
			]
		}`)

		_, err := search.Decode(body)
		Expect(err).To(MatchError(ContainSubstring("2 disambiguation options for 1 results")))
	})

	It("tolerates fewer options than results", func() {
		// The backend caps options at 10; the prefix correlation still holds.
		body := []byte(`{
			"response": "ok",
			"results": [{"name": "A"}, {"name": "B"}],
			"needs_disambiguation": true,
			"disambiguation_options": [{"distinguishing_features": ["Name: A"]}]
		}`)

		resp, err := search.Decode(body)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.Candidates).To(HaveLen(1))
		name, _ := resp.Candidates[0].Record.Attr(search.AttrName)
		Expect(name).To(Equal("A"))
	})
})

var _ = Describe("Record", func() {
	It("reports absent attributes", func() {
		r := search.Record{"name": "Zoe Khan"}

		_, ok := r.Attr(search.AttrPhone)
		Expect(ok).To(BeFalse())
	})

	It("stringifies scalar non-string attributes", func() {
		// A decoded JSON number arrives as float64.
		r := search.Record{"phone": float64(211111), "badge_number": 42}

		phone, ok := r.Attr(search.AttrPhone)
		Expect(ok).To(BeTrue())
		Expect(phone).To(Equal("211111"))

		badge, ok := r.Attr("badge_number")
		Expect(ok).To(BeTrue())
		Expect(badge).To(Equal("42"))
	})

	It("treats structured and null attributes as absent", func() {
		r := search.Record{
			"phone":   nil,
			"address": map[string]any{"street": "Elm"},
		}

		_, ok := r.Attr(search.AttrPhone)
		Expect(ok).To(BeFalse())
		_, ok = r.Attr(search.AttrAddress)
		Expect(ok).To(BeFalse())
	})

	It("parses RFC3339 scrape timestamps", func() {
		r := search.Record{"scraped_at": "2026-03-01T10:30:00Z"}
		ts, ok := r.ScrapedAt()
		Expect(ok).To(BeTrue())
		Expect(ts).To(Equal(time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)))
	})

	It("parses bare ISO-8601 timestamps without a zone", func() {
		r := search.Record{"scraped_at": "2026-03-01T10:30:00"}
		_, ok := r.ScrapedAt()
		Expect(ok).To(BeTrue())
	})

	It("reports unparseable timestamps as absent", func() {
		r := search.Record{"scraped_at": "yesterday-ish"}
		_, ok := r.ScrapedAt()
		Expect(ok).To(BeFalse())
	})
})
