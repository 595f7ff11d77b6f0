package config

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	type args struct {
		args []string
	}
	tests := []struct {
		name    string
		args    args
		want    Config
		wantErr bool
	}{
		{
			name:    "Empty",
			args:    args{},
			wantErr: true,
		},
		{
			name: "Single file",
			args: args{
				args: []string{"a.txt"},
			},
			want: Config{
				Paths:     []string{"a.txt"},
				Excludes:  []string{},
				LogDir:    ".",
				Algorithm: "md5",
			},
			wantErr: false,
		},
		{
			name: "Duplicate files",
			args: args{
				args: []string{"a.txt", "b.txt", "a.txt"},
			},
			want: Config{
				Paths:     []string{"a.txt", "b.txt"},
				Excludes:  []string{},
				LogDir:    ".",
				Algorithm: "md5",
			},
			wantErr: false,
		},
		{
			name: "All flags",
			args: args{
				args: []string{
					"--log-dir", "/var/log/ft",
					"--algorithm", "sha256",
					"--history", "history.db",
					"--publish", "ftp://localhost/logs",
					"--debug",
					"a.txt",
				},
			},
			want: Config{
				Paths:     []string{"a.txt"},
				Excludes:  []string{},
				LogDir:    "/var/log/ft",
				Algorithm: "sha256",
				History:   "history.db",
				Publish:   "ftp://localhost/logs",
				Debug:     true,
			},
			wantErr: false,
		},
		{
			name: "Multiple excludes",
			args: args{
				args: []string{"--exclude", "*.bak", "--exclude", "secret.txt", "a.txt", "a.txt.bak", "dir/secret.txt"},
			},
			want: Config{
				Paths:     []string{"a.txt"},
				Excludes:  []string{"*.bak", "secret.txt"},
				LogDir:    ".",
				Algorithm: "md5",
			},
			wantErr: false,
		},
		{
			name: "Unknown algorithm",
			args: args{
				args: []string{"--algorithm", "crc32", "a.txt"},
			},
			wantErr: true,
		},
		{
			name: "Everything excluded",
			args: args{
				args: []string{"--exclude", "*.txt", "a.txt"},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.args.args)
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %+#v, want %+#v", got, tt.want)
			}
		})
	}
}

func TestParse_ValidationError(t *testing.T) {
	_, err := Parse(nil)
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("Parse() error = %v, want %v", err, ErrValidationFailed)
	}
}

func TestParse_Help(t *testing.T) {
	_, err := Parse([]string{"--help"})
	if !errors.Is(err, ErrNothingToDo) {
		t.Errorf("Parse() error = %v, want %v", err, ErrNothingToDo)
	}
}
