// Package search provides the wire representation of the public-information
// search service's chat contract and the decode-time pairing of ambiguous
// results with their disambiguation options.
package search

import (
	"encoding/json"
	"fmt"
)

// Response represents a decoded reply from the chat endpoint.
type Response struct {
	Response              string   `json:"response"`                         // Natural-language answer text
	Results               []Record `json:"results,omitempty"`                // Matching records, if any
	NeedsClarification    bool     `json:"needs_clarification,omitempty"`    // Backend wants a better query
	NeedsDisambiguation   bool     `json:"needs_disambiguation"`             // Multiple candidates matched
	DisambiguationOptions []Option `json:"disambiguation_options,omitempty"` // One option per candidate, by position
	Action                string   `json:"action,omitempty"`                 // Backend's classification of the query

	// Candidates pairs each disambiguation option with its record. Built by
	// Decode, never sent on the wire.
	Candidates []Candidate `json:"-"`
}

// Option is one disambiguation candidate. Option i describes Results[i];
// the correlation is positional.
type Option struct {
	Index                  int      `json:"index"`
	DistinguishingFeatures []string `json:"distinguishing_features"`
}

// Candidate binds a record to the option that describes it. Pairing happens
// once, at decode time, so a selection can never reference a record that
// does not exist.
type Candidate struct {
	Record Record
	Option Option
}

// Decode parses a chat endpoint response body and pairs disambiguation
// options with their records. A body that is not valid JSON, or that carries
// more options than results, is a decode error: the positional contract
// between the two lists is broken and nothing in it can be trusted.
func Decode(body []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.Response == "" {
		return nil, fmt.Errorf("decode response: missing response text")
	}

	if len(resp.DisambiguationOptions) > len(resp.Results) {
		return nil, fmt.Errorf("decode response: %d disambiguation options for %d results",
			len(resp.DisambiguationOptions), len(resp.Results))
	}

	resp.Candidates = make([]Candidate, len(resp.DisambiguationOptions))
	for i, opt := range resp.DisambiguationOptions {
		resp.Candidates[i] = Candidate{Record: resp.Results[i], Option: opt}
	}

	return &resp, nil
}
