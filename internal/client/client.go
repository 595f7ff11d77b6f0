package client

import (
	"context"
	"fmt"
	"net/url"
)

// Client stores log files on a remote host.
type Client interface {
	MakeDir(ctx context.Context, remotePath string) error
	UploadFile(ctx context.Context, remotePath string, localPath string) error
}

func New(address string) (Client, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	if u.Scheme == "ftp" {
		return NewFtpClient(address), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
}
