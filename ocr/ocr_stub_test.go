//go:build !ocr

package ocr

import (
	"errors"
	"strings"
	"testing"
)

func TestStubNew(t *testing.T) {
	tests := []struct {
		name      string
		languages []string
		want      string
	}{
		{"default language", nil, "eng"},
		{"chinese and english", []string{"eng", "chi_sim"}, "eng+chi_sim"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.languages...)
			if !errors.Is(err, ErrOCRNotEnabled) {
				t.Fatalf("expected ErrOCRNotEnabled, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should name %q", err, tt.want)
			}
			if client != nil {
				t.Error("expected nil client")
			}
		})
	}

	if Enabled {
		t.Error("Enabled should be false without the ocr tag")
	}
}

func TestStubNilClient(t *testing.T) {
	var client *Client
	if err := client.Close(); err != nil {
		t.Errorf("Close on nil client: %v", err)
	}
	if client.Languages() != nil {
		t.Error("nil client should report no languages")
	}
}

func TestStubRecognition(t *testing.T) {
	client := &Client{}

	if _, err := client.RecognizeFile("preview.png"); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("RecognizeFile: expected ErrOCRNotEnabled, got %v", err)
	}
	if err := client.SetPageSegMode(PSM_SINGLE_BLOCK); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("SetPageSegMode: expected ErrOCRNotEnabled, got %v", err)
	}
	if _, err := Verify(client, []byte("png"), "Tech-Business"); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("Verify: expected ErrOCRNotEnabled, got %v", err)
	}
}
