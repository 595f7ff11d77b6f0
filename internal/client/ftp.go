package client

import (
	"context"
	"fmt"
	"log"
	"net/textproto"
	"net/url"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/jlaffaye/ftp"
	"github.com/samber/lo"
)

type FtpClient struct {
	url string

	client *ftp.ServerConn
	lock   sync.Mutex
}

func NewFtpClient(url string) *FtpClient {
	return &FtpClient{
		url: url,

		client: nil,
		lock:   sync.Mutex{},
	}
}

func (c *FtpClient) init(ctx context.Context) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.client != nil {
		var err error
		if err = c.ping(); err == nil {
			return nil
		}

		log.Println("[DEBUG] reconnecting because of error:", err)

		_ = c.client.Quit()
		c.client = nil
	}

	u, err := url.Parse(c.url)
	if err != nil {
		return fmt.Errorf("can't parse URL: %w", err)
	}

	if u.Scheme != "ftp" {
		return fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}

	conn, err := ftp.Dial(u.Host, ftp.DialWithContext(ctx))
	if err != nil {
		return fmt.Errorf("can't connect to %s: %w", u.Host, err)
	}

	password, ok := u.User.Password()
	if !ok {
		password = ""
	}

	if loginErr := conn.Login(u.User.Username(), password); loginErr != nil {
		_ = conn.Quit()
		return fmt.Errorf("can't login as %s: %w", u.User.Username(), loginErr)
	}

	if u.Path != "" {
		if chErr := conn.ChangeDir(u.Path); chErr != nil {
			_ = conn.Quit()
			return fmt.Errorf("can't change directory to %s: %w", u.Path, chErr)
		}
	}

	c.client = conn

	return nil
}

func (c *FtpClient) ping() error {
	if c.client == nil {
		return ErrClientIsNil
	}

	if err := c.client.NoOp(); err != nil {
		return fmt.Errorf("failed to ping: %w", err)
	}

	return nil
}

func (c *FtpClient) MakeDir(ctx context.Context, remotePath string) error {
	if err := c.init(ctx); err != nil {
		return err
	}

	if remotePath == "" || remotePath == "." {
		// remote root
		return nil
	}

	dirs := splitPath(remotePath)
	dirs = append(dirs, remotePath)

	for _, dir := range dirs {
		if err := c.client.MakeDir(dir); err != nil && !isIgnorableError(err) {
			return fmt.Errorf("can't make directory %s: %w", dir, err)
		}
	}

	return nil
}

// UploadFile replaces remotePath with the content of localPath.
func (c *FtpClient) UploadFile(ctx context.Context, remotePath string, localPath string) error {
	if err := c.init(ctx); err != nil {
		return err
	}

	dir, _ := path.Split(remotePath)
	if err := c.MakeDir(ctx, strings.TrimSuffix(dir, "/")); err != nil {
		return err
	}

	h, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("can't open local file %s: %w", localPath, err)
	}
	defer h.Close()

	if stErr := c.client.Stor(remotePath, h); stErr != nil {
		return fmt.Errorf("can't upload file to %s: %w", remotePath, stErr)
	}

	return nil
}

// isIgnorableError reports "550 already exists"-style replies.
func isIgnorableError(err error) bool {
	if err, ok := lo.ErrorsAs[*textproto.Error](err); ok && err.Code == ftp.StatusFileUnavailable {
		log.Printf("[DEBUG] ignore error %s", err)
		return true
	}
	return false
}

func splitPath(dir string) []string {
	entries := make([]string, 0, strings.Count(dir, "/"))

	dir = path.Clean(dir)

	for {
		dir = path.Dir(dir)
		if dir == "." || dir == "/" {
			break
		}
		entries = append(entries, dir)
	}

	for i := 0; i < len(entries)/2; i++ {
		entries[i], entries[len(entries)-i-1] = entries[len(entries)-i-1], entries[i]
	}

	return entries
}
