// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package upload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mangotour/mtour-go/internal/fault"
)

// fakeBackend is a scriptable strategy for pipeline tests.
type fakeBackend struct {
	name       string
	configured bool
	url        string
	err        error
	calls      int
}

func (f *fakeBackend) Name() string     { return f.name }
func (f *fakeBackend) Configured() bool { return f.configured }

func (f *fakeBackend) Upload(ctx context.Context, folder string, file *File, progress ProgressFunc) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if progress != nil {
		progress(100)
	}
	return f.url, nil
}

func testFile() *File {
	return &File{Name: "photo.png", Data: []byte("not really a png"), ContentType: "image/png"}
}

func TestPipelineFirstConfiguredBackendWins(t *testing.T) {
	primary := &fakeBackend{name: "primary", configured: true, url: "https://cdn/x.jpg"}
	secondary := &fakeBackend{name: "secondary", configured: true, url: "https://local/x.jpg"}
	p := NewPipeline(nil, nil, primary, secondary)

	url, err := p.Upload(context.Background(), "products", testFile(), nil)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if url != "https://cdn/x.jpg" {
		t.Errorf("url = %q, want primary backend URL", url)
	}
	if secondary.calls != 0 {
		t.Errorf("secondary backend was called %d times, want 0", secondary.calls)
	}
}

func TestPipelineSkipsUnconfiguredBackend(t *testing.T) {
	primary := &fakeBackend{name: "primary", configured: false, url: "https://cdn/x.jpg"}
	secondary := &fakeBackend{name: "secondary", configured: true, url: "https://local/x.jpg"}
	p := NewPipeline(nil, nil, primary, secondary)

	url, err := p.Upload(context.Background(), "products", testFile(), nil)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if url != "https://local/x.jpg" {
		t.Errorf("url = %q, want secondary backend URL", url)
	}
	if primary.calls != 0 {
		t.Errorf("unconfigured backend was called %d times", primary.calls)
	}
}

func TestPipelineFallsThroughOnFailure(t *testing.T) {
	primary := &fakeBackend{name: "primary", configured: true, err: errors.New("boom")}
	secondary := &fakeBackend{name: "secondary", configured: true, url: "https://local/x.jpg"}
	p := NewPipeline(nil, nil, primary, secondary)

	url, err := p.Upload(context.Background(), "products", testFile(), nil)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if url != "https://local/x.jpg" {
		t.Errorf("url = %q, want fallback backend URL", url)
	}
	if primary.calls != 1 {
		t.Errorf("primary calls = %d, want 1", primary.calls)
	}
}

func TestPipelineNoBackendConfigured(t *testing.T) {
	p := NewPipeline(nil, nil, &fakeBackend{name: "primary"})

	_, err := p.Upload(context.Background(), "products", testFile(), nil)
	if !fault.Is(err, fault.KindConfigurationMissing) {
		t.Fatalf("Upload() error = %v, want ConfigurationMissing fault", err)
	}
}

func TestPipelineAllBackendsFail(t *testing.T) {
	primary := &fakeBackend{name: "primary", configured: true, err: errors.New("down")}
	secondary := &fakeBackend{name: "secondary", configured: true, err: errors.New("also down")}
	p := NewPipeline(nil, nil, primary, secondary)

	_, err := p.Upload(context.Background(), "products", testFile(), nil)
	if err == nil {
		t.Fatal("Upload() returned nil error with every backend failing")
	}
	if fault.KindOf(err) == "" {
		t.Errorf("error %v is not a classified fault", err)
	}
}

func TestPipelineRejectsEmptyFile(t *testing.T) {
	p := NewPipeline(nil, nil, &fakeBackend{name: "primary", configured: true, url: "u"})

	_, err := p.Upload(context.Background(), "products", &File{Name: "x"}, nil)
	if !fault.Is(err, fault.KindValidationFailure) {
		t.Fatalf("Upload() error = %v, want ValidationFailure fault", err)
	}
}

func TestPipelineProgressEndsAtHundred(t *testing.T) {
	backend := &fakeBackend{name: "primary", configured: true, url: "u"}
	p := NewPipeline(nil, nil, backend)

	var reported []int
	_, err := p.Upload(context.Background(), "products", testFile(), func(pct int) {
		reported = append(reported, pct)
	})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if len(reported) == 0 || reported[len(reported)-1] != 100 {
		t.Fatalf("progress = %v, want final value 100", reported)
	}
}

func TestProgressReaderMonotonic(t *testing.T) {
	data := make([]byte, 10_000)
	var reported []int
	pr := newProgressReader(data, func(pct int) {
		reported = append(reported, pct)
	})

	buf := make([]byte, 777)
	for {
		if _, err := pr.Read(buf); err != nil {
			break
		}
	}

	if len(reported) == 0 {
		t.Fatal("no progress reported")
	}
	prev := -1
	for _, pct := range reported {
		if pct <= prev {
			t.Fatalf("progress not strictly increasing: %v", reported)
		}
		if pct < 0 || pct > 100 {
			t.Fatalf("progress out of range: %v", reported)
		}
		prev = pct
	}
	if reported[len(reported)-1] != 100 {
		t.Errorf("final progress = %d, want 100", reported[len(reported)-1])
	}
}

func TestLocalBackendWritesAndBuildsURL(t *testing.T) {
	dir := t.TempDir()
	b := NewLocal(dir, "https://mangotour.example.com/")

	f := &File{Name: "1700000000000_danang.jpg", Data: []byte("jpeg bytes")}
	url, err := b.Upload(context.Background(), "products", f, nil)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	want := "https://mangotour.example.com/uploads/products/1700000000000_danang.jpg"
	if url != want {
		t.Errorf("url = %q, want %q", url, want)
	}

	data, err := os.ReadFile(filepath.Join(dir, "products", f.Name))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Errorf("stored bytes = %q", data)
	}
}

func TestLocalBackendRejectsTraversal(t *testing.T) {
	b := NewLocal(t.TempDir(), "https://example.com")

	f := &File{Name: "x.jpg", Data: []byte("d")}
	if _, err := b.Upload(context.Background(), "../escape", f, nil); !fault.Is(err, fault.KindValidationFailure) {
		t.Fatalf("Upload() error = %v, want ValidationFailure fault", err)
	}
}

func TestLocalBackendSizeLimit(t *testing.T) {
	b := NewLocal(t.TempDir(), "https://example.com")

	f := &File{Name: "big.bin", Data: make([]byte, MaxLocalFileSize+1)}
	if _, err := b.Upload(context.Background(), "media", f, nil); !fault.Is(err, fault.KindQuotaOrSizeExceeded) {
		t.Fatalf("Upload() error = %v, want QuotaOrSizeExceeded fault", err)
	}
}

func TestEmbeddedBackend(t *testing.T) {
	b := NewEmbedded()

	url, err := b.Upload(context.Background(), "media", &File{
		Name: "x.jpg", Data: []byte("abc"), ContentType: "image/jpeg",
	}, nil)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if !strings.HasPrefix(url, "data:image/jpeg;base64,") {
		t.Errorf("url = %q, want data URL", url)
	}

	_, err = b.Upload(context.Background(), "media", &File{
		Name: "big.jpg", Data: make([]byte, MaxEmbeddedSize+1),
	}, nil)
	if !fault.Is(err, fault.KindQuotaOrSizeExceeded) {
		t.Fatalf("oversized embed error = %v, want QuotaOrSizeExceeded fault", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Da Nang Golf.JPG", "da-nang-golf.jpg"},
		{"호이안 투어.png", "hoian-tueo.png"},
		{"café menu.pdf", "cafe-menu.pdf"},
		{"../../etc/passwd", "passwd"},
		{"???", "file"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUniqueNameHasTimestampPrefix(t *testing.T) {
	name := UniqueName("photo.jpg")
	if !strings.HasSuffix(name, "_photo.jpg") {
		t.Fatalf("UniqueName() = %q, want timestamp prefix before _photo.jpg", name)
	}
	prefix := strings.TrimSuffix(name, "_photo.jpg")
	if prefix == "" {
		t.Fatal("missing timestamp prefix")
	}
	for _, r := range prefix {
		if r < '0' || r > '9' {
			t.Fatalf("prefix %q is not numeric", prefix)
		}
	}
}

func TestCloudinaryConfigured(t *testing.T) {
	tests := []struct {
		cloudName, apiKey string
		want              bool
	}{
		{"", "", false},
		{"mango", "", false},
		{"your-cloud-name", "123", false},
		{"mango", "changeme", false},
		{"mango", "123456", true},
	}
	for _, tt := range tests {
		b, err := NewCloudinary(tt.cloudName, tt.apiKey, "secret")
		if err != nil {
			t.Fatalf("NewCloudinary(%q, %q) error = %v", tt.cloudName, tt.apiKey, err)
		}
		if got := b.Configured(); got != tt.want {
			t.Errorf("Configured(%q, %q) = %v, want %v", tt.cloudName, tt.apiKey, got, tt.want)
		}
	}
}
