package common

import (
	"errors"
	"testing"
)

func TestParseRunMode(t *testing.T) {
	tests := []struct {
		input string
		want  RunMode
		err   bool
	}{
		{"sync", RunModeSync, false},
		{"async", RunModeAsync, false},
		{"later", RunMode(0), true},
		{"", RunMode(0), true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRunMode(tt.input)
			if tt.err {
				if !errors.Is(err, ErrInvalidRunMode) {
					t.Errorf("ParseRunMode(%q) error = %v, want ErrInvalidRunMode", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRunMode(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseRunMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRunMode_Text(t *testing.T) {
	var m RunMode
	if err := m.UnmarshalText([]byte("async")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if m != RunModeAsync {
		t.Errorf("UnmarshalText() = %v, want async", m)
	}
	data, err := m.MarshalText()
	if err != nil || string(data) != "async" {
		t.Errorf("MarshalText() = %q, %v", data, err)
	}
	if RunMode(7).IsValid() {
		t.Error("RunMode(7) should not be valid")
	}
	if got := RunMode(7).String(); got != "RunMode(7)" {
		t.Errorf("String() = %q, want RunMode(7)", got)
	}
}

func TestClearScope(t *testing.T) {
	tests := []struct {
		scope       ClearScope
		themable    bool
		nonThemable bool
	}{
		{ClearScopeAll, true, true},
		{ClearScopeOnlyThemable, true, false},
		{ClearScopeOnlyNonThemable, false, true},
		{ClearScope(9), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.scope.String(), func(t *testing.T) {
			if got := tt.scope.Themable(); got != tt.themable {
				t.Errorf("Themable() = %v, want %v", got, tt.themable)
			}
			if got := tt.scope.NonThemable(); got != tt.nonThemable {
				t.Errorf("NonThemable() = %v, want %v", got, tt.nonThemable)
			}
		})
	}
}

func TestClearScopeNames(t *testing.T) {
	want := []string{"all", "onlyThemable", "onlyNonThemable"}
	got := ClearScopeNames()
	if len(got) != len(want) {
		t.Fatalf("ClearScopeNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ClearScopeNames()[%d] = %q, want %q", i, got[i], want[i])
		}
		if s, err := ParseClearScope(want[i]); err != nil || s != ClearScope(i) {
			t.Errorf("ParseClearScope(%q) = %v, %v", want[i], s, err)
		}
	}
}
