// SPDX-License-Identifier: MPL-2.0

package typst

import (
	"testing"

	"github.com/Masterminds/semver/v3"
)

func TestParseVersionOutput(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    string
		wantErr bool
	}{
		{
			name: "typical version line",
			out:  "typst 0.13.1 (8dce676d)",
			want: "0.13.1",
		},
		{
			name: "bare version",
			out:  "0.12.0",
			want: "0.12.0",
		},
		{
			name: "surrounding whitespace",
			out:  "\n  typst 0.11.0\n",
			want: "0.11.0",
		},
		{
			name:    "no version token",
			out:     "command not found",
			wantErr: true,
		},
		{
			name:    "empty output",
			out:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseVersionOutput(tt.out)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseVersionOutput(%q) expected error, got %v", tt.out, v)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersionOutput(%q) error = %v", tt.out, err)
			}
			if v.String() != tt.want {
				t.Errorf("ParseVersionOutput(%q) = %s, want %s", tt.out, v, tt.want)
			}
		})
	}
}

func TestCheckCompiler(t *testing.T) {
	tests := []struct {
		name     string
		required string
		current  string
		wantErr  bool
	}{
		{
			name:     "empty requirement always holds",
			required: "",
			current:  "0.1.0",
		},
		{
			name:     "caret range satisfied",
			required: "^0.13",
			current:  "0.13.1",
		},
		{
			name:     "caret range on zero major rejects next minor",
			required: "^0.13",
			current:  "0.14.0",
			wantErr:  true,
		},
		{
			name:     "caret range satisfied across minor",
			required: "^1.2",
			current:  "1.3.0",
		},
		{
			name:     "caret range rejects next major",
			required: "^1.2",
			current:  "2.0.0",
			wantErr:  true,
		},
		{
			name:     "compound range satisfied",
			required: ">=0.12.0 <0.14.0",
			current:  "0.13.1",
		},
		{
			name:     "exact requirement mismatch",
			required: "0.13.0",
			current:  "0.13.1",
			wantErr:  true,
		},
		{
			name:     "unparseable requirement",
			required: "latest-and-greatest",
			current:  "0.13.1",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := semver.MustParse(tt.current)
			err := CheckCompiler(tt.required, current)
			if tt.wantErr && err == nil {
				t.Errorf("CheckCompiler(%q, %s) expected error, got nil", tt.required, current)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("CheckCompiler(%q, %s) error = %v", tt.required, current, err)
			}
		})
	}
}
