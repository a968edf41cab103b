package format

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PPTX, "PPTX"},
		{PNG, "PNG"},
		{JPEG, "JPEG"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PPTX, ".pptx"},
		{PNG, ".png"},
		{JPEG, ".jpg"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"tech-business-template.pptx", PPTX},
		{"DECK.PPTX", PPTX},
		{"preview.png", PNG},
		{"/tmp/out/Preview.PNG", PNG},
		{"slide.jpg", JPEG},
		{"slide.jpeg", JPEG},
		{"deck.ppt", Unknown},
		{"notes.txt", Unknown},
		{"noextension", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := Detect(tt.filename); got != tt.want {
				t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"png", []byte("\x89PNG\r\n\x1a\n\x00\x00"), PNG},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, JPEG},
		{"zip", []byte("PK\x03\x04rest"), Unknown},
		{"truncated png", []byte("\x89PNG"), Unknown},
		{"empty", nil, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func createZip(t *testing.T, names ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range names {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := f.Write([]byte("<x/>")); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestDetectFromReader(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"presentation", createZip(t, "[Content_Types].xml", "ppt/presentation.xml"), PPTX},
		{"word document", createZip(t, "[Content_Types].xml", "word/document.xml"), Unknown},
		{"ppt folder only", createZip(t, "ppt/slides/slide1.xml"), Unknown},
		{"png", []byte("\x89PNG\r\n\x1a\nIHDR"), PNG},
		{"text", []byte("hello"), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFromReader(bytes.NewReader(tt.data), int64(len(tt.data)))
			if err != nil {
				t.Fatalf("DetectFromReader() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFromReader() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReader_CorruptZip(t *testing.T) {
	data := []byte("PK\x03\x04 not really a zip")
	if _, err := DetectFromReader(bytes.NewReader(data), int64(len(data))); err == nil {
		t.Error("expected error for corrupt ZIP")
	}
}

func TestDetectFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.bin")
	if err := os.WriteFile(path, createZip(t, "ppt/presentation.xml"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := DetectFile(path)
	if err != nil {
		t.Fatalf("DetectFile() error = %v", err)
	}
	if got != PPTX {
		t.Errorf("DetectFile() = %v, want PPTX", got)
	}

	if _, err := DetectFile(filepath.Join(dir, "missing.pptx")); err == nil {
		t.Error("expected error for missing file")
	}
}
