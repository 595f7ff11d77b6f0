package publisher

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/capcom6/filetracker/internal/tracker"
)

type upload struct {
	remotePath string
	localPath  string
}

type fakeClient struct {
	uploads []upload
	err     error
}

func (c *fakeClient) MakeDir(context.Context, string) error {
	return nil
}

func (c *fakeClient) UploadFile(_ context.Context, remotePath string, localPath string) error {
	if c.err != nil {
		return c.err
	}
	c.uploads = append(c.uploads, upload{remotePath: remotePath, localPath: localPath})
	return nil
}

func TestPublisher_Changed(t *testing.T) {
	tests := []struct {
		name   string
		change tracker.Change
		want   []upload
	}{
		{
			name:   "Absolute log file",
			change: tracker.Change{Path: "a.txt", LogFile: "/var/log/ft/a.txt_20261017.log"},
			want:   []upload{{remotePath: "a.txt_20261017.log", localPath: "/var/log/ft/a.txt_20261017.log"}},
		},
		{
			name:   "Relative log file",
			change: tracker.Change{Path: "a.txt", LogFile: "a.txt_20261017.log"},
			want:   []upload{{remotePath: "a.txt_20261017.log", localPath: "a.txt_20261017.log"}},
		},
		{
			name:   "No log file",
			change: tracker.Change{Path: "a.txt"},
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &fakeClient{}
			p := New(c)

			if err := p.Changed(context.Background(), tt.change); err != nil {
				t.Fatalf("Changed() error = %v", err)
			}
			if !reflect.DeepEqual(c.uploads, tt.want) {
				t.Errorf("uploads = %+v, want %+v", c.uploads, tt.want)
			}
		})
	}
}

func TestPublisher_ChangedError(t *testing.T) {
	uploadErr := errors.New("connection refused")
	p := New(&fakeClient{err: uploadErr})

	err := p.Changed(context.Background(), tracker.Change{LogFile: "a.txt_20261017.log"})
	if !errors.Is(err, uploadErr) {
		t.Errorf("Changed() error = %v, want %v", err, uploadErr)
	}
}
