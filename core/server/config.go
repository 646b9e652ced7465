package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// Backend selects the record store (firestore, sql, memory).
	Backend string `mapstructure:"backend" default:"firestore"`
	// SeedFile is a JSON fixture loaded into the record store on start. Mostly useful with the memory backend.
	SeedFile string `mapstructure:"seed_file" default:""`
}

const (
	BackendFirestore = "firestore"
	BackendSQL       = "sql"
	BackendMemory    = "memory"
)

// IsValidBackend checks if the configured record store backend is supported.
func (c Config) IsValidBackend() bool {
	switch c.Backend {
	case BackendFirestore, BackendSQL, BackendMemory:
		return true
	default:
		return false
	}
}
