package stub

// Config is the stub server configuration.
type Config struct {
	// Address to listen on (e.g., ":8000")
	ListenAddr string

	// FixturePath is the TOML file of records to serve.
	FixturePath string

	// Watch reloads the fixture file when it changes on disk.
	Watch bool
}
