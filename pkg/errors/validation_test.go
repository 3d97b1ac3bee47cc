package errors

import (
	"strings"
	"testing"
)

func TestValidateInputPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid relative path", "graphs/deps.dot", false},
		{"valid absolute path", "/home/user/deps.dot", false},
		{"empty path", "", true},
		{"null byte", "deps\x00.dot", true},
		{"control character", "deps\x01.dot", true},
		{"too long", strings.Repeat("a", 5000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInputPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid path", "interactive_graph.html", false},
		{"nested path", "out/graph.html", false},
		{"empty path", "", true},
		{"trailing slash", "out/", true},
		{"trailing backslash", "out\\", true},
		{"control character", "out\x07.html", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateHexColor(t *testing.T) {
	tests := []struct {
		name    string
		color   string
		wantErr bool
	}{
		{"lowercase hex", "#4e79a7", false},
		{"uppercase hex", "#4E79A7", false},
		{"mixed case", "#2B7CE9", false},
		{"empty", "", true},
		{"missing hash", "4e79a7", true},
		{"too short", "#4e79a", true},
		{"too long", "#4e79a7f", true},
		{"non-hex characters", "#4e79zz", true},
		{"named color", "steelblue", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHexColor(tt.color)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHexColor(%q) error = %v, wantErr %v", tt.color, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePalette(t *testing.T) {
	tests := []struct {
		name    string
		palette []string
		wantErr bool
	}{
		{"valid palette", []string{"#4e79a7", "#f28e2b"}, false},
		{"single color", []string{"#4e79a7"}, false},
		{"empty palette", nil, true},
		{"bad entry", []string{"#4e79a7", "orange"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePalette(tt.palette)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePalette(%v) error = %v, wantErr %v", tt.palette, err, tt.wantErr)
			}
		})
	}
}

func TestValidateListenAddr(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{"host and port", "localhost:8080", false},
		{"port only", ":8080", false},
		{"ip and port", "127.0.0.1:9000", false},
		{"empty", "", true},
		{"missing port", "localhost", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateListenAddr(tt.addr)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateListenAddr(%q) error = %v, wantErr %v", tt.addr, err, tt.wantErr)
			}
		})
	}
}
