// Package stub provides a stand-in for the real search/AI backend. It serves
// the documented /api/chat contract from fixture records so the client can be
// developed, demoed, and end-to-end tested without the production service.
package stub

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/pubfindco/pubfind/pkg/search"
)

// maxDisambiguationOptions caps the option list, matching the production
// backend's behavior.
const maxDisambiguationOptions = 10

// Server is a fiber server implementing the chat contract over a fixture
// store. It is deliberately dumb: name matching only, no AI, no crawling.
type Server struct {
	config Config
	store  *FixtureStore
	logger *zap.Logger
	app    *fiber.App
}

// New creates a stub server and loads its fixtures.
func New(config Config, logger *zap.Logger) (*Server, error) {
	store, err := NewFixtureStore(config.FixturePath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create fixture store: %w", err)
	}

	if config.Watch {
		if err := store.Watch(); err != nil {
			return nil, fmt.Errorf("failed to watch fixtures: %w", err)
		}
		logger.Info("watching fixture file", zap.String("path", config.FixturePath))
	}

	app := fiber.New(fiber.Config{
		// Disable startup message for cleaner logs
		DisableStartupMessage: true,
	})

	s := &Server{
		config: config,
		store:  store,
		logger: logger,
		app:    app,
	}

	// Register routes
	app.Post("/api/chat", s.handleChat)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})

	return s, nil
}

// Run starts the stub server on the configured listening address.
func (s *Server) Run() error {
	s.logger.Info("starting stub search server",
		zap.String("listen", s.config.ListenAddr),
		zap.Int("records", s.store.Len()),
	)

	return s.app.Listen(s.config.ListenAddr)
}

// Close shuts down the server and releases resources.
func (s *Server) Close() error {
	return s.store.Close()
}

// App exposes the fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

// handleChat answers one chat query. Zero matches produce a plain apology,
// one match produces the record, several produce a disambiguation round.
func (s *Server) handleChat(c *fiber.Ctx) error {
	var req search.ChatRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		s.logger.Error("failed to parse request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(search.ErrorResponse{Error: "invalid request body"})
	}

	if strings.TrimSpace(req.Query) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(search.ErrorResponse{Error: "query is required"})
	}

	s.logger.Debug("received chat request",
		zap.String("query", req.Query),
		zap.Int("history_len", len(req.ConversationHistory)),
	)

	matches := s.store.Match(req.Query)

	resp := search.Response{Action: "search"}
	switch len(matches) {
	case 0:
		resp.Response = "I couldn't find any records matching your query."
	case 1:
		name, _ := matches[0].Attr(search.AttrName)
		resp.Response = fmt.Sprintf("I found 1 record for %s.", name)
		resp.Results = matches
	default:
		resp.Response = fmt.Sprintf("I found %d records matching your query. Please choose one of the options below.", len(matches))
		resp.Results = matches
		resp.NeedsDisambiguation = true
		resp.DisambiguationOptions = disambiguationOptions(matches)
	}

	return c.JSON(resp)
}

// disambiguationOptions builds one option per record, by position, listing
// the attributes that tell the candidates apart.
func disambiguationOptions(records []search.Record) []search.Option {
	n := len(records)
	if n > maxDisambiguationOptions {
		n = maxDisambiguationOptions
	}

	options := make([]search.Option, 0, n)
	for i, r := range records[:n] {
		opt := search.Option{Index: i, DistinguishingFeatures: []string{}}

		if v, ok := r.Attr(search.AttrInstitution); ok {
			opt.DistinguishingFeatures = append(opt.DistinguishingFeatures, "Institution: "+v)
		}
		if v, ok := r.Attr(search.AttrAddress); ok {
			opt.DistinguishingFeatures = append(opt.DistinguishingFeatures, "Address: "+v)
		}
		if v, ok := r.Attr(search.AttrOrganization); ok {
			opt.DistinguishingFeatures = append(opt.DistinguishingFeatures, "Organization: "+v)
		}
		if v, ok := r.Attr(search.AttrName); ok {
			opt.DistinguishingFeatures = append(opt.DistinguishingFeatures, "Name: "+v)
		}
		if v, ok := r.Attr(search.AttrPhone); ok {
			opt.DistinguishingFeatures = append(opt.DistinguishingFeatures, "Phone: "+v)
		}

		options = append(options, opt)
	}

	return options
}
