package matrix

import (
	"errors"
	"testing"
)

func TestNewTarget(t *testing.T) {
	tests := []struct {
		name     string
		platform string
		vars     []Variable
		wantErr  bool
	}{
		{
			name:     "platform and arch",
			platform: "GOOS",
			vars:     []Variable{Var("GOOS", "linux"), Var("GOARCH", "amd64")},
		},
		{
			name:     "arch variant",
			platform: "GOOS",
			vars:     []Variable{Var("GOOS", "linux"), Var("GOARCH", "arm"), Var("GOARM", "7")},
		},
		{
			name:     "missing platform variable",
			platform: "GOOS",
			vars:     []Variable{Var("GOARCH", "amd64")},
			wantErr:  true,
		},
		{
			name:     "duplicate variable",
			platform: "GOOS",
			vars:     []Variable{Var("GOOS", "linux"), Var("GOOS", "darwin")},
			wantErr:  true,
		},
		{
			name:     "empty variable name",
			platform: "GOOS",
			vars:     []Variable{Var("GOOS", "linux"), Var("", "x")},
			wantErr:  true,
		},
		{
			name:     "empty platform",
			platform: "",
			vars:     []Variable{Var("GOOS", "linux")},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTarget(tt.platform, tt.vars...)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTarget) {
					t.Fatalf("err = %v, want ErrInvalidTarget", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestArchiveBaseName(t *testing.T) {
	tests := []struct {
		name    string
		project string
		target  Target
		want    string
	}{
		{
			name:    "linux amd64",
			project: "demo",
			target:  MustTarget("GOOS", Var("GOOS", "linux"), Var("GOARCH", "amd64")),
			want:    "demo-linux-amd64",
		},
		{
			name:    "variant appended in order",
			project: "mos-chinadns",
			target:  MustTarget("GOOS", Var("GOOS", "linux"), Var("GOARCH", "mips"), Var("GOMIPS", "softfloat")),
			want:    "mos-chinadns-linux-mips-softfloat",
		},
		{
			name:    "platform not first",
			project: "demo",
			target:  MustTarget("GOOS", Var("GOARCH", "arm64"), Var("GOOS", "darwin")),
			want:    "demo-arm64-darwin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.target.ArchiveBaseName(tt.project); got != tt.want {
				t.Fatalf("ArchiveBaseName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTargetPlatform(t *testing.T) {
	target := MustTarget("GOOS", Var("GOARCH", "amd64"), Var("GOOS", "windows"))
	if got := target.Platform(); got != "windows" {
		t.Fatalf("Platform = %q, want windows", got)
	}
	if got := target.PlatformVariable(); got != "GOOS" {
		t.Fatalf("PlatformVariable = %q, want GOOS", got)
	}
	if _, ok := target.Lookup("GOARM"); ok {
		t.Fatal("Lookup(GOARM) reported an unset variable as set")
	}
}

func TestTargetImmutable(t *testing.T) {
	vars := []Variable{Var("GOOS", "linux"), Var("GOARCH", "amd64")}
	target := MustTarget("GOOS", vars...)

	vars[1].Value = "arm64"
	if v, _ := target.Lookup("GOARCH"); v != "amd64" {
		t.Fatalf("constructor input aliased: GOARCH = %q", v)
	}

	got := target.Variables()
	got[0].Value = "plan9"
	if target.Platform() != "linux" {
		t.Fatalf("Variables result aliased: platform = %q", target.Platform())
	}
}

func TestTargetString(t *testing.T) {
	target := MustTarget("GOOS", Var("GOOS", "linux"), Var("GOARCH", "arm"), Var("GOARM", "7"))
	if got, want := target.String(), "GOOS=linux GOARCH=arm GOARM=7"; got != want {
		t.Fatalf("String = %q, want %q", got, want)
	}
}

func TestMustTargetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustTarget did not panic on an invalid target")
		}
	}()
	MustTarget("GOOS", Var("GOARCH", "amd64"))
}
