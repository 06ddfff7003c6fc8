package askcmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/pubfindco/pubfind/client"
	"github.com/pubfindco/pubfind/pkg/logger"
	"github.com/pubfindco/pubfind/tui"
)

const askLongDesc = `Send a single query to the search service and print the result.

Unlike the interactive chat, ask carries no conversation context between
invocations. When a query matches several records the options are listed;
pass --option N to print one of them.

Examples:
  pubfind ask "Find Zoe Khan"
  pubfind ask --option 2 "Find Zoe Khan"
  pubfind ask -s http://search.internal:8000 "who works at City Hospital?"`

const askShortDesc = "Ask a single question without the interactive interface"

// ConfigLoader resolves the effective client configuration for a command.
type ConfigLoader func(cmd *cobra.Command) (client.Config, error)

type askCommander struct {
	loadConfig ConfigLoader
	option     int
}

func NewAskCmd(loadConfig ConfigLoader) *cobra.Command {
	cmder := &askCommander{loadConfig: loadConfig}

	cmd := &cobra.Command{
		Use:   "ask <query>",
		Short: askShortDesc,
		Long:  askLongDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd, strings.Join(args, " "))
		},
	}

	cmd.Flags().IntVarP(&cmder.option, "option", "o", 0, "Disambiguation option to print (1-based)")

	return cmd
}

func (c *askCommander) run(cmd *cobra.Command, query string) error {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}

	log := logger.NewLogger(cfg.Debug)
	defer log.Sync()

	transport := client.NewHTTPTransport(cfg.ServerURL, cfg.Timeout, log)
	session := client.NewSession(transport, log)

	resp, err := session.Submit(cmd.Context(), query)
	if err != nil {
		if errors.Is(err, client.ErrEmptyQuery) {
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), client.FallbackMessage)
		return err
	}

	styles := tui.NewStyles(tui.LightTheme())
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, resp.Response)

	if c.option > 0 {
		rendered, err := styles.RenderSelection(resp.Candidates, c.option-1)
		if err != nil {
			return fmt.Errorf("could not resolve option %d: %w", c.option, err)
		}
		fmt.Fprintln(out, ansi.Strip(rendered))
		return nil
	}

	if body := styles.RenderResponseBody(resp); body != "" {
		fmt.Fprintln(out, ansi.Strip(body))
	}

	return nil
}
