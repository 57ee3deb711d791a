package storefront

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/storefront/internal/domain/lang"
	catalogrepo "github.com/kailas-cloud/storefront/internal/repository/catalog"
)

// brokenCache fails every read and write.
type brokenCache struct{}

func (brokenCache) Ping(context.Context) error { return errors.New("cache down") }
func (brokenCache) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("cache down")
}

func (brokenCache) SetWithTTL(context.Context, string, []byte, time.Duration) error {
	return errors.New("cache down")
}
func (brokenCache) Close()                                            {}
func (brokenCache) WaitForReady(context.Context, time.Duration) error { return nil }

func newBufferLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level})), buf
}

func TestZapLogger_WritesToSlog(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelInfo)
	zl := newZapLogger(l).With(zap.String("component", "cache"))

	zl.Debug("hidden")
	zl.Warn("Failed to get cached catalog file", zap.String("key", "k1"), zap.Error(errors.New("boom")))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug entry written at info level: %s", out)
	}
	for _, want := range []string{"level=WARN", "component=cache", "key=k1", "error=boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestZapLogger_NilIsNop(t *testing.T) {
	newZapLogger(nil).Error("dropped")
	var o *observer
	o.zapLogger().Error("dropped")
}

func TestClient_CacheFaultsReachLogger(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelDebug)
	obs, err := newObserver(l, nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	cfg := defaultConfig()
	files := catalogrepo.NewFileStore(catalogrepo.Embedded())
	c := wireClient(files, brokenCache{}, lang.English, lang.English, cfg, obs)

	col, err := c.Catalog(context.Background(), Products, CatalogOptions{Category: "kitchen"})
	if err != nil {
		t.Fatalf("cache faults must fall through to the files: %v", err)
	}
	if col.Len() != 4 {
		t.Errorf("len = %d, want 4", col.Len())
	}

	out := buf.String()
	for _, want := range []string{"Failed to get cached catalog file", "Failed to cache catalog file", "cache down"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
	if c.Health(context.Background()).Checks["cache"] != "error" {
		t.Error("broken cache should be reported by health")
	}
}
