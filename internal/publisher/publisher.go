package publisher

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/capcom6/filetracker/internal/client"
	"github.com/capcom6/filetracker/internal/tracker"
)

// Publisher mirrors change logs to a remote location.
type Publisher struct {
	Client client.Client
}

func New(client client.Client) *Publisher {
	return &Publisher{
		Client: client,
	}
}

// Changed uploads the log file the change was written to. The remote name
// is the base name of the local file.
func (p *Publisher) Changed(ctx context.Context, change tracker.Change) error {
	if change.LogFile == "" {
		return nil
	}

	remotePath := filepath.Base(change.LogFile)

	if err := p.Client.UploadFile(ctx, remotePath, change.LogFile); err != nil {
		return fmt.Errorf("c.UploadFile: %w", err)
	}

	log.Printf("[DEBUG] --> %s\n", remotePath)

	return nil
}
