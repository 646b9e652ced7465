package firebase

// Config holds configuration for the hosted Firestore database.
type Config struct {
	// ProjectID is the Google Cloud / Firebase project identifier.
	ProjectID string `mapstructure:"project_id" default:"animalsearch-d7828"`
	// DatabaseID selects a named Firestore database.
	DatabaseID string `mapstructure:"database_id" default:"(default)"`
	// CredentialsFile is the path to a service account JSON key. Empty uses
	// application default credentials.
	CredentialsFile string `mapstructure:"credentials_file" default:""`
	// EmulatorHost points the client at a local Firestore emulator (host:port).
	EmulatorHost string `mapstructure:"emulator_host" default:""`
	// ActiveCollection holds the lost/found animal postings.
	ActiveCollection string `mapstructure:"active_collection" default:"animais_perdidos"`
	// MatchCollection holds the pending "same animal" requests.
	MatchCollection string `mapstructure:"match_collection" default:"achados_pendentes"`
	// DuplicateCollection holds the pending "duplicate location" requests.
	DuplicateCollection string `mapstructure:"duplicate_collection" default:"duplicatas_pendentes"`
}
