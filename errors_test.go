package treeconf

import (
	"errors"
	"testing"
)

func TestConfigError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ConfigError
		want string
	}{
		{
			name: "global section",
			err: &ConfigError{
				Sections: []string{"DXR"},
				Code:     ErrCodeUnknownOption,
				Message:  "unknown option smoop",
			},
			want: "config error in [DXR]: unknown option smoop (unknown_option)",
		},
		{
			name: "plugin option inside tree",
			err: &ConfigError{
				Sections: []string{"mozilla-central"},
				Path:     []string{"mozilla-central", "buglink"},
				Option:   "buglink.url",
				Code:     ErrCodeRequired,
				Message:  "buglink.url is required",
			},
			want: "config error in [mozilla-central]: buglink.url is required (required)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ConfigError.Error()\ngot:  %q\nwant: %q", got, tt.want)
			}
		})
	}
}

func TestErrorCodes(t *testing.T) {
	codes := map[string]string{
		"ErrCodeRequired":      ErrCodeRequired,
		"ErrCodeUnknownOption": ErrCodeUnknownOption,
		"ErrCodeInvalidType":   ErrCodeInvalidType,
		"ErrCodeConstraint":    ErrCodeConstraint,
		"ErrCodeUnknownPlugin": ErrCodeUnknownPlugin,
		"ErrCodeNoTrees":       ErrCodeNoTrees,
		"ErrCodeUnknownTree":   ErrCodeUnknownTree,
	}

	seen := make(map[string]string)
	for name, code := range codes {
		if code == "" {
			t.Errorf("%s is empty", name)
		}
		if other, dup := seen[code]; dup {
			t.Errorf("%s and %s share code %q", name, other, code)
		}
		seen[code] = name
	}
}

func TestLookupError(t *testing.T) {
	err := error(&LookupError{Path: []string{"mozilla-central", "buglink", "nope"}})

	want := "treeconf: no such option: mozilla-central.buglink.nope"
	if got := err.Error(); got != want {
		t.Errorf("LookupError.Error()\ngot:  %q\nwant: %q", got, want)
	}
	if !errors.Is(err, ErrNoSuchOption) {
		t.Error("LookupError should unwrap to ErrNoSuchOption")
	}
}

func TestConfigError_As(t *testing.T) {
	_, err := LoadString("[DXR]\nworkers = -5\n[t]\nsource_folder = /p\n", testRegistry(t))

	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *ConfigError, got %T: %v", err, err)
	}
	if cerr.Option != "workers" {
		t.Errorf("Option = %q, want %q", cerr.Option, "workers")
	}
	if cerr.Code != ErrCodeConstraint {
		t.Errorf("Code = %q, want %q", cerr.Code, ErrCodeConstraint)
	}
}
