package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/qyinm/craftshelf/types"
	"github.com/qyinm/craftshelf/ui"
)

const shopPayload = `[
  {"id": "H1", "name": "Pearl Clip", "price": "150", "image": "https://cdn.example.com/clip.png", "desc": "<p>Shiny pearls</p>", "group": "Hair Accessories"},
  {"id": "B1", "name": "Canvas Tote", "price": "450", "image": "https://cdn.example.com/tote.png", "desc": "Roomy", "group": "Bags"},
  {"id": "H2", "name": "Silk Scrunchie", "price": "99", "image": "https://cdn.example.com/scrunchie.png", "desc": "Soft", "group": "hair accessories"},
  {"id": "K1", "name": "Felt Keychain", "price": "60", "image": "", "desc": "", "group": "Keychains"}
]`

type openRecorder struct {
	links []string
	err   error
}

func (o *openRecorder) Open(link string) error {
	o.links = append(o.links, link)
	return o.err
}

type sleepRecorder struct {
	slept []time.Duration
}

func (s *sleepRecorder) Sleep(ctx context.Context, d time.Duration) error {
	s.slept = append(s.slept, d)
	return ctx.Err()
}

type harness struct {
	app     *App
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	opener  *openRecorder
	sleeper *sleepRecorder
	config  string
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CRAFTSHELF_CONFIG", "CRAFTSHELF_ENDPOINT", "CRAFTSHELF_TIMEOUT", "CRAFTSHELF_CURRENCY",
		"CRAFTSHELF_DEFAULT_CATEGORY", "CRAFTSHELF_SEARCH_DELAY", "CRAFTSHELF_DEEP_LINK_BASE",
		"CRAFTSHELF_DESTINATION", "CRAFTSHELF_STARTING_PRICE", "CRAFTSHELF_LOG_FILE", "LOG_LEVEL",
		"CRAFTSHELF_CONFIRM_AFTER", "CRAFTSHELF_OPEN_AFTER",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("XDG_STATE_HOME", t.TempDir())
}

func newHarness(t *testing.T, handler http.HandlerFunc) *harness {
	t.Helper()
	clearEnv(t)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := fmt.Sprintf(`endpoint = %q
timeout = "2s"

[display]
currency = "₹"
default_category = "hair accessories"

[order]
destination = "15550001111"
starting_price = "199"
confirm_after = "600ms"
open_after = "1200ms"
`, srv.URL)
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))

	h := &harness{
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		opener:  &openRecorder{},
		sleeper: &sleepRecorder{},
		config:  path,
	}
	h.app = &App{
		Version: "test",
		Stdout:  h.stdout,
		Stderr:  h.stderr,
		Opener:  h.opener,
		Sleeper: h.sleeper,
		RunTUI: func(context.Context, ui.Options) error {
			return errors.New("terminal not available in tests")
		},
	}
	return h
}

func serveShop(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(shopPayload))
}

func (h *harness) run(args ...string) int {
	full := append([]string{"craftshelf", "--config", h.config}, args...)
	return h.app.Run(context.Background(), full)
}

func TestListUsesDefaultCategory(t *testing.T) {
	h := newHarness(t, serveShop)

	require.Equal(t, ExitSuccess, h.run("list"))
	out := h.stdout.String()
	require.Contains(t, out, "[0] Pearl Clip  ₹150")
	require.Contains(t, out, "[1] Silk Scrunchie  ₹99")
	require.NotContains(t, out, "Canvas Tote")
	require.NotContains(t, out, "Shiny pearls")
}

func TestListFilters(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
		skip []string
	}{
		{
			name: "exact category ignores case",
			args: []string{"list", "--category", "BAGS"},
			want: []string{"[0] Canvas Tote"},
			skip: []string{"Pearl Clip", "Felt Keychain"},
		},
		{
			name: "substring search",
			args: []string{"list", "--search", "chain"},
			want: []string{"[0] Felt Keychain"},
			skip: []string{"Canvas Tote"},
		},
		{
			name: "whole catalog in load order",
			args: []string{"list", "--all"},
			want: []string{"[0] Pearl Clip", "[1] Canvas Tote", "[2] Silk Scrunchie", "[3] Felt Keychain"},
		},
		{
			name: "no match shows the empty placeholder",
			args: []string{"list", "--category", "hats"},
			want: []string{"No products found"},
		},
		{
			name: "details include plain descriptions",
			args: []string{"list", "--details"},
			want: []string{"Shiny pearls"},
			skip: []string{"<p>"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, serveShop)
			require.Equal(t, ExitSuccess, h.run(tc.args...))
			out := h.stdout.String()
			for _, w := range tc.want {
				require.Contains(t, out, w)
			}
			for _, s := range tc.skip {
				require.NotContains(t, out, s)
			}
		})
	}
}

func TestListRejectsConflictingFilters(t *testing.T) {
	h := newHarness(t, serveShop)

	require.Equal(t, ExitUsageError, h.run("list", "--category", "bags", "--all"))
	require.Contains(t, h.stderr.String(), "use only one of")
}

func TestListReportsLoadFailure(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	require.Equal(t, ExitNetworkError, h.run("list"))
	require.Contains(t, h.stdout.String(), "Failed to load products")
	require.Contains(t, h.stderr.String(), "catalog unavailable")
}

func TestCategories(t *testing.T) {
	h := newHarness(t, serveShop)

	require.Equal(t, ExitSuccess, h.run("categories"))
	lines := strings.Split(strings.TrimSpace(h.stdout.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, []string{"hair", "accessories", "2"}, strings.Fields(lines[0]))
	require.Equal(t, []string{"bags", "1"}, strings.Fields(lines[1]))
	require.Equal(t, []string{"keychains", "1"}, strings.Fields(lines[2]))
}

func TestCategoriesWithPaddedGroups(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
  {"id": "B1", "name": "Canvas Tote", "price": "450", "group": "Bags "},
  {"id": "C1", "name": "Claw Clip", "price": "80", "group": " Hair Clips"}
]`))
	})

	require.Equal(t, ExitSuccess, h.run("categories"))
	lines := strings.Split(strings.TrimSpace(h.stdout.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, []string{"bags", "1"}, strings.Fields(lines[0]))
	require.Equal(t, []string{"hair", "clips", "1"}, strings.Fields(lines[1]))

	h.stdout.Reset()
	require.Equal(t, ExitSuccess, h.run("list", "--category", "hair clips"))
	require.Contains(t, h.stdout.String(), "[0] Claw Clip")
	require.NotContains(t, h.stdout.String(), "Canvas Tote")
}

func TestOrderPrintsLinkForListedIndex(t *testing.T) {
	h := newHarness(t, serveShop)

	require.Equal(t, ExitSuccess, h.run("order", "1"))
	link := strings.TrimSpace(h.stdout.String())
	require.True(t, strings.HasPrefix(link, "https://wa.me/15550001111?text="), link)
	require.Contains(t, link, "Product%20ID%3A%20H2")
	require.Contains(t, link, "Silk%20Scrunchie")
	require.Empty(t, h.opener.links)
}

func TestOrderByIDAndFilter(t *testing.T) {
	h := newHarness(t, serveShop)
	require.Equal(t, ExitSuccess, h.run("order", "--id", "B1"))
	require.Contains(t, h.stdout.String(), "Canvas%20Tote")

	h = newHarness(t, serveShop)
	require.Equal(t, ExitSuccess, h.run("order", "--category", "keychains", "0"))
	require.Contains(t, h.stdout.String(), "Felt%20Keychain")
}

func TestOrderErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{name: "index out of range", args: []string{"order", "5"}, code: ExitNotFoundError},
		{name: "unknown id", args: []string{"order", "--id", "Z9"}, code: ExitNotFoundError},
		{name: "index not a number", args: []string{"order", "two"}, code: ExitUsageError},
		{name: "missing index", args: []string{"order"}, code: ExitUsageError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, serveShop)
			require.Equal(t, tc.code, h.run(tc.args...))
			require.Empty(t, h.stdout.String())
		})
	}
}

func TestOrderOpenPlaysFeedbackThenOpens(t *testing.T) {
	h := newHarness(t, serveShop)

	require.Equal(t, ExitSuccess, h.run("order", "--open", "0"))
	lines := strings.Split(strings.TrimSpace(h.stdout.String()), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "⏳ Opening WhatsApp…", lines[1])
	require.Equal(t, "✓ Order sent", lines[2])
	require.Equal(t, "WhatsApp opened", lines[3])

	require.Equal(t, []string{lines[0]}, h.opener.links)
	require.Equal(t, []time.Duration{0, 600 * time.Millisecond, 600 * time.Millisecond}, h.sleeper.slept)
}

func TestOrderOpenFailure(t *testing.T) {
	h := newHarness(t, serveShop)
	h.opener.err = errors.New("no browser")

	require.Equal(t, ExitGeneralError, h.run("order", "--open", "0"))
	require.Contains(t, h.stderr.String(), "could not open WhatsApp: no browser")
}

func TestCustomOrder(t *testing.T) {
	h := newHarness(t, serveShop)

	require.Equal(t, ExitSuccess, h.run("custom-order", "blue", "scrunchies"))
	link := strings.TrimSpace(h.stdout.String())
	require.Contains(t, link, "Requirement%3A%20blue%20scrunchies")
	require.Contains(t, link, "start%20from%20%E2%82%B9199")
}

func TestCustomOrderRequiresText(t *testing.T) {
	h := newHarness(t, serveShop)

	require.Equal(t, ExitUsageError, h.run("custom-order", "  "))
	require.Empty(t, h.stdout.String())
	require.Contains(t, h.stderr.String(), requirementWarning)
	require.Empty(t, h.opener.links)
}

func TestCustomOrderOpen(t *testing.T) {
	h := newHarness(t, serveShop)

	require.Equal(t, ExitSuccess, h.run("custom-order", "--open", "gift box"))
	require.Len(t, h.opener.links, 1)
	require.Empty(t, h.sleeper.slept)
}

func TestRootRunsTerminalStorefront(t *testing.T) {
	h := newHarness(t, serveShop)
	var got ui.Options
	h.app.RunTUI = func(_ context.Context, opts ui.Options) error {
		got = opts
		return nil
	}

	require.Equal(t, ExitSuccess, h.run("--no-welcome"))
	require.True(t, got.SkipWelcome)
	require.NotNil(t, got.Store)
	require.Equal(t, types.Exact("hair accessories"), got.DefaultFilter)
	require.Equal(t, "15550001111", got.Composer.Destination)
	require.Equal(t, 600*time.Millisecond, got.Sequence.ConfirmAfter)
	require.NotEmpty(t, got.FAQ)
}

func TestRootMapsInterrupt(t *testing.T) {
	h := newHarness(t, serveShop)
	h.app.RunTUI = func(context.Context, ui.Options) error { return context.Canceled }

	require.Equal(t, ExitInterruptError, h.run())
}

func TestMissingConfigFile(t *testing.T) {
	h := newHarness(t, serveShop)
	h.config = filepath.Join(t.TempDir(), "missing.toml")

	require.Equal(t, ExitConfigError, h.run("list"))
	require.Contains(t, h.stderr.String(), "could not load configuration")
}

func TestCode(t *testing.T) {
	require.Equal(t, ExitSuccess, Code(nil))
	require.Equal(t, ExitGeneralError, Code(errors.New("plain")))
	require.Equal(t, ExitNotFoundError, Code(fmt.Errorf("wrapped: %w", NewExitError(ExitNotFoundError, "gone", nil))))

	err := NewExitError(ExitNetworkError, "catalog unavailable", errors.New("timeout"))
	require.Equal(t, "catalog unavailable: timeout", err.Error())
	require.Equal(t, "gone", NewExitError(ExitNotFoundError, "gone", nil).Error())
}
