package firebase

import (
	"context"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// emulatorEnv is read by the Firestore SDK to bypass credentials and TLS.
const emulatorEnv = "FIRESTORE_EMULATOR_HOST"

// Connect creates a Firestore client for the configured project and database.
// The client connects lazily; errors surface on the first read or write.
func Connect(ctx context.Context, cfg Config) (*firestore.Client, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, fmt.Errorf("firestore project id is required")
	}

	if cfg.EmulatorHost != "" {
		if err := os.Setenv(emulatorEnv, cfg.EmulatorHost); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", emulatorEnv, err)
		}
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" && os.Getenv(emulatorEnv) == "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	databaseID := cfg.DatabaseID
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, cfg.ProjectID, databaseID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return client, nil
}
