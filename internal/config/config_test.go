package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soratra/internal/eventbus"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cs := NewConfigServiceWithBus(nil, filepath.Join(dir, "config.toml"))

	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 400*time.Millisecond, cfg.Debounce())
}

func TestLoadFromPathMissingFileFails(t *testing.T) {
	cs := NewConfigService()
	_, err := cs.LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cs := NewConfigServiceWithBus(nil, path)

	cfg := DefaultConfig()
	cfg.Server.BaseURL = "http://example.test:8080"
	cfg.Analysis.DebounceMS = 250
	cfg.Messages.Clean = "Madio tsara"
	require.NoError(t, cs.Save(cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "debounce_ms = 250")

	loaded, err := cs.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestPartialFileIsFilledWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nbase_url = \"http://backend:5000/\"\n"), 0644))

	cfg, err := NewConfigServiceWithBus(nil, path).Load()
	require.NoError(t, err)
	assert.Equal(t, "http://backend:5000", cfg.Server.BaseURL, "trailing slash is trimmed")
	assert.Equal(t, 400, cfg.Analysis.DebounceMS)
	assert.Equal(t, "Sava-ria: Madio", cfg.Messages.Clean)
}

func TestInvalidFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("server = [\n"), 0644))

	_, err := NewConfigServiceWithBus(nil, path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[analysis]\ndebounce_ms = 300\n"), 0644))
	t.Setenv("SORATRA_ANALYSIS_DEBOUNCE_MS", "150")
	t.Setenv("SORATRA_SERVER_BASE_URL", "http://env.test")

	cfg, err := NewConfigServiceWithBus(nil, path).Load()
	require.NoError(t, err)
	assert.Equal(t, 150, cfg.Analysis.DebounceMS)
	assert.Equal(t, "http://env.test", cfg.Server.BaseURL)
}

func TestLoadPublishesEvent(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	got := make(chan eventbus.DomainEvent, 1)
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) { got <- e })

	path := filepath.Join(t.TempDir(), "config.toml")
	_, err := NewConfigServiceWithBus(bus, path).Load()
	require.NoError(t, err)

	select {
	case e := <-got:
		ev := e.(eventbus.ConfigLoadedEvent)
		assert.Equal(t, path, ev.Path)
		assert.Equal(t, "http://localhost:5000", ev.BaseURL)
	case <-time.After(time.Second):
		t.Fatal("ConfigLoaded was not published")
	}
}

func TestValidate(t *testing.T) {
	assert.Empty(t, Validate(DefaultConfig()))
	assert.Empty(t, Validate(nil))

	cfg := DefaultConfig()
	cfg.Server.BaseURL = "localhost:5000"
	cfg.Analysis.DebounceMS = 10
	cfg.Messages.ErrorsFound = "errors!"
	assert.Len(t, Validate(cfg), 3)

	cfg = DefaultConfig()
	cfg.Messages.WordCount = "teny"
	assert.Len(t, Validate(cfg), 1)
}
