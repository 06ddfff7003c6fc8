package main

import (
	"flag"

	"go.uber.org/zap"

	"github.com/pubfindco/pubfind/pkg/logger"
	"github.com/pubfindco/pubfind/stub"
)

func main() {
	// Parse command line flags
	listenAddr := flag.String("listen", ":8000", "Address to listen on")
	fixtures := flag.String("fixtures", "records.toml", "Path to TOML record fixtures")
	watch := flag.Bool("watch", false, "Hot-reload fixtures on change")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// Set up logger
	logger := logger.NewLogger(*debug)
	defer logger.Sync()

	logger.Info("pubfind stub search server starting",
		zap.String("listen", *listenAddr),
		zap.String("fixtures", *fixtures),
		zap.Bool("debug", *debug),
	)

	// Create and run the stub server
	config := stub.Config{
		ListenAddr:  *listenAddr,
		FixturePath: *fixtures,
		Watch:       *watch,
	}

	s, err := stub.New(config, logger)
	if err != nil {
		logger.Fatal("failed to create stub server", zap.Error(err))
	}
	defer s.Close()

	if err := s.Run(); err != nil {
		logger.Fatal("stub server failed", zap.Error(err))
	}
}
