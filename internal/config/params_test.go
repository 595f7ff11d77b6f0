package config

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
)

func Test_expandPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.log", "sub/d.txt"} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}

	type args struct {
		args     []string
		excludes []string
	}
	tests := []struct {
		name    string
		args    args
		want    []string
		wantErr bool
	}{
		{
			name: "Plain path kept even if missing",
			args: args{
				args: []string{filepath.Join(dir, "missing.txt")},
			},
			want: []string{filepath.Join(dir, "missing.txt")},
		},
		{
			name: "Glob",
			args: args{
				args: []string{filepath.Join(dir, "*.txt")},
			},
			want: []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")},
		},
		{
			name: "Double star skips directories",
			args: args{
				args: []string{filepath.Join(dir, "**")},
			},
			want: []string{
				filepath.Join(dir, "a.txt"),
				filepath.Join(dir, "b.txt"),
				filepath.Join(dir, "c.log"),
				filepath.Join(dir, "sub", "d.txt"),
			},
		},
		{
			name: "Glob with exclude",
			args: args{
				args:     []string{filepath.Join(dir, "**", "*.txt")},
				excludes: []string{"b.*"},
			},
			want: []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "sub", "d.txt")},
		},
		{
			name: "Bad exclude",
			args: args{
				args:     []string{"a.txt"},
				excludes: []string{"[a"},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandPaths(tt.args.args, tt.args.excludes)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expandPaths() error = %v, wantErr %v", err, tt.wantErr)
			}
			sort.Strings(got)
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expandPaths() = %v, want %v", got, tt.want)
			}
		})
	}
}
