package render

import (
	"context"
	"testing"

	"github.com/matzehuels/wfgraph/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"SVG", true},
		{"", true},
	}
	for _, tt := range tests {
		if err := ValidateFormat(tt.format); (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestConvert_MissingTool(t *testing.T) {
	old := rsvgPath
	rsvgPath = "wfgraph-no-such-converter"
	defer func() { rsvgPath = old }()

	_, err := ToPDF(context.Background(), []byte("<svg/>"))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() error = %v, want UNSUPPORTED", err)
	}
	if _, err := ToPNG(context.Background(), []byte("<svg/>"), 2); err == nil {
		t.Error("ToPNG() should fail without the converter")
	}
}
