// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jeranaias/estatechat-tui/internal/api"
	"github.com/jeranaias/estatechat-tui/internal/chat"
	"github.com/jeranaias/estatechat-tui/internal/config"
	"github.com/jeranaias/estatechat-tui/internal/intent"
	"github.com/jeranaias/estatechat-tui/internal/report"
	"github.com/jeranaias/estatechat-tui/internal/storage"
)

const (
	queryBody = `{
		"basic": {"summary": "Wakad is a fast growing suburb."},
		"chart": {"years": [2021, 2022], "price": [7000, 7600]},
		"table_full": [{"year": 2021, "final location": "wakad"}, {"year": 2022, "final location": "wakad"}]
	}`
	compareBody = `{"summary": "Baner is pricier.", "comparison": {"pricing": {"wakad": 9000, "baner": 11000}}}`
	growthBody  = `{"2021": 7000, "2022": 7600, "summary": "Up 8.5%"}`
)

// newBackend serves the three endpoints from canned bodies. A path mapped
// to "" answers 500.
func newBackend(t *testing.T, bodies map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok || body == "" {
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, `{"error": "boom"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func defaultBackend(t *testing.T) *httptest.Server {
	return newBackend(t, map[string]string{
		api.PathQuery:       queryBody,
		api.PathCompare:     compareBody,
		api.PathPriceGrowth: growthBody,
	})
}

// runCLI executes the command line in an isolated config dir.
func runCLI(t *testing.T, baseURL string, args ...string) (string, string, error) {
	t.Helper()
	if os.Getenv("ESTATECHAT_HOME") == "" {
		t.Setenv("ESTATECHAT_HOME", t.TempDir())
	}
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(append([]string{"--base-url", baseURL}, args...))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestReport_CSV(t *testing.T) {
	srv := defaultBackend(t)
	out, _, err := runCLI(t, srv.URL, "report", "Wakad", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "year,final location\n2021,wakad\n2022,wakad\n", out)
}

func TestReport_Table(t *testing.T) {
	srv := defaultBackend(t)
	out, _, err := runCLI(t, srv.URL, "report", "wakad")
	require.NoError(t, err)
	assert.Contains(t, out, "Full Market Report - wakad")
	assert.Contains(t, out, "Wakad is a fast growing suburb.")
	assert.Contains(t, strings.ToUpper(out), "FINAL LOCATION")
}

func TestReport_BackendFailure(t *testing.T) {
	srv := newBackend(t, map[string]string{})
	out, errOut, err := runCLI(t, srv.URL, "report", "wakad")
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, report.ErrLoadReport)
	assert.Equal(t, ExitNetworkError, ExitCode(err))

	var rep *reportedError
	assert.True(t, errors.As(err, &rep), "the message was already printed")
}

func TestReport_FailureAsJSON(t *testing.T) {
	srv := newBackend(t, map[string]string{})
	out, _, err := runCLI(t, srv.URL, "growth", "wakad", "--format", "json")
	require.Error(t, err)
	assert.Contains(t, out, `"success": false`)
	assert.Contains(t, out, report.ErrLoadGrowth)
}

func TestCompare(t *testing.T) {
	srv := defaultBackend(t)
	out, _, err := runCLI(t, srv.URL, "compare", "wakad,baner", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "Metric,wakad,baner\npricing,9000,11000\n", out)
}

func TestCompare_NeedsTwoAreas(t *testing.T) {
	srv := defaultBackend(t)
	_, _, err := runCLI(t, srv.URL, "compare", "wakad")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, ExitCode(err))
}

func TestGrowth_XLSXAndChart(t *testing.T) {
	srv := defaultBackend(t)
	dir := t.TempDir()
	_, errOut, err := runCLI(t, srv.URL, "growth", "wakad", "--format", "xlsx", "--chart", "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, errOut, "price_growth_wakad.xlsx")
	assert.FileExists(t, filepath.Join(dir, "price_growth_wakad.xlsx"))
	assert.FileExists(t, filepath.Join(dir, "price_growth_wakad.png"))
}

func TestGrowth_JSON(t *testing.T) {
	srv := defaultBackend(t)
	out, _, err := runCLI(t, srv.URL, "growth", "wakad", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"summary": "Up 8.5%"`)
	assert.Contains(t, out, `"Year": "2021"`)
}

func TestUnknownFormat(t *testing.T) {
	srv := defaultBackend(t)
	_, _, err := runCLI(t, srv.URL, "report", "wakad", "--format", "yaml")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, ExitCode(err))
}

func TestAsk_CannedReplyIsSaved(t *testing.T) {
	srv := defaultBackend(t)
	out, _, err := runCLI(t, srv.URL, "ask", "Thank you!")
	require.NoError(t, err)
	assert.Contains(t, out, intent.ReplyThanks)

	out, _, err = runCLI(t, srv.URL, "history", "show")
	require.NoError(t, err)
	assert.Contains(t, out, chat.GreetingHello)
	assert.Contains(t, out, "Thank you!")
	assert.Contains(t, out, intent.ReplyThanks)
}

func TestAsk_CompareHintsAndFollows(t *testing.T) {
	srv := defaultBackend(t)

	out, errOut, err := runCLI(t, srv.URL, "ask", "compare wakad and baner")
	require.NoError(t, err)
	assert.Contains(t, out, "I have analyzed wakad and baner.")
	assert.Contains(t, out, chat.LabelFullComparison)
	assert.Contains(t, errOut, "/compare?areas=wakad%2Cbaner")

	out, _, err = runCLI(t, srv.URL, "ask", "compare wakad and baner", "--follow", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Metric,wakad,baner\npricing,9000,11000\n")
}

func TestAsk_BackendDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	out, _, err := runCLI(t, url, "ask", "which area is best?")
	require.Error(t, err)
	assert.Contains(t, out, chat.MsgBackendDown)
	assert.Equal(t, ExitNetworkError, ExitCode(err))
}

func TestQuery_CompareAnswer(t *testing.T) {
	srv := newBackend(t, map[string]string{api.PathQuery: `{
		"summary": "Two areas",
		"compare": [
			{"area": "wakad", "summary": "cheap", "table": [{"year": 2022, "price": 7600}]},
			{"area": "baner", "summary": "pricey", "table": [{"year": 2022, "price": 11000}]}
		]
	}`})
	out, _, err := runCLI(t, srv.URL, "query", "wakad", "vs", "baner", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "area,year,price\nwakad,2022,7600\nbaner,2022,11000\n", out)

	out, _, err = runCLI(t, srv.URL, "query", "wakad vs baner")
	require.NoError(t, err)
	assert.Contains(t, out, "wakad: cheap")
	assert.Contains(t, out, "baner: pricey")
}

func TestQuery_TextOnly(t *testing.T) {
	srv := newBackend(t, map[string]string{api.PathQuery: `{"response": "Area not found."}`})
	out, _, err := runCLI(t, srv.URL, "query", "mars")
	require.NoError(t, err)
	assert.Equal(t, "Area not found.\n", out)
}

func TestHistory_ExportAndClear(t *testing.T) {
	srv := defaultBackend(t)
	dir := t.TempDir()

	_, _, err := runCLI(t, srv.URL, "history", "export", "-o", dir)
	require.Error(t, err, "nothing saved yet")

	_, _, err = runCLI(t, srv.URL, "ask", "ok")
	require.NoError(t, err)

	out, _, err := runCLI(t, srv.URL, "history", "export", "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "chat_history.md")
	data, err := os.ReadFile(filepath.Join(dir, "chat_history.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), intent.ReplyAcknowledge)

	_, _, err = runCLI(t, srv.URL, "history", "clear")
	require.NoError(t, err)
	out, _, err = runCLI(t, srv.URL, "history", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved conversation.")
}

func TestConfig_InitShowPath(t *testing.T) {
	srv := defaultBackend(t)
	home := t.TempDir()
	t.Setenv("ESTATECHAT_HOME", home)

	out, _, err := runCLI(t, srv.URL, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.toml")+"\n", out)

	_, _, err = runCLI(t, srv.URL, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(home, "config.toml"))

	_, _, err = runCLI(t, srv.URL, "config", "init")
	assert.Equal(t, ExitUsageError, ExitCode(err))

	out, _, err = runCLI(t, srv.URL, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, srv.URL, "--base-url overrides the file")
}

func TestVersion_JSON(t *testing.T) {
	srv := defaultBackend(t)
	out, _, err := runCLI(t, srv.URL, "version", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"version": "`+Version+`"`)
}

func TestOpen_BadPath(t *testing.T) {
	srv := defaultBackend(t)
	_, _, err := runCLI(t, srv.URL, "open", "/nowhere")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, ExitCode(err))
}

func TestNormalizeAreas(t *testing.T) {
	assert.Equal(t, []string{"wakad", "baner", "pimple saudagar"},
		normalizeAreas([]string{"Wakad, BANER", " ", "Pimple Saudagar"}))
}

// =============================================================================
// REPL
// =============================================================================

// scriptedInput replays lines, then reports end of input.
type scriptedInput struct {
	lines []string
}

func (s *scriptedInput) ReadInput(string) (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func newTestREPL(t *testing.T, baseURL string) (*repl, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	client := api.NewClient(baseURL)
	env := &appEnv{cfg: cfg, logger: zap.NewNop(), client: client, flags: &flags{format: "csv"}}

	history := chat.NewStoreHistory(storage.NewMemoryStore(), config.HistoryKey)
	session := chat.NewSession(chat.NewLog(history, nil), client, cfg.Areas.Known, nil)
	session.Start(context.Background())

	var out bytes.Buffer
	cmd := newChatCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetContext(context.Background())
	return newREPL(env, session, cmd), &out
}

func TestREPL_ChatAndOpenAction(t *testing.T) {
	srv := defaultBackend(t)
	r, out := newTestREPL(t, srv.URL)

	in := &scriptedInput{lines: []string{"compare wakad and baner", "/open 1", "/quit", "never read"}}
	require.NoError(t, r.run(context.Background(), in))

	text := out.String()
	assert.Contains(t, text, chat.GreetingHelp)
	assert.Contains(t, text, "[1] ▶ "+chat.LabelFullComparison)
	assert.Contains(t, text, "Metric,wakad,baner")
	assert.Equal(t, []string{"never read"}, in.lines)
}

func TestREPL_Commands(t *testing.T) {
	srv := defaultBackend(t)
	r, out := newTestREPL(t, srv.URL)

	in := &scriptedInput{lines: []string{"", "ok", "/open 9", "/bogus", "/clear", "/history"}}
	require.NoError(t, r.run(context.Background(), in), "end of input leaves quietly")

	text := out.String()
	assert.Contains(t, text, intent.ReplyAcknowledge)
	assert.Contains(t, text, "No action 9.")
	assert.Contains(t, text, "Unknown command /bogus")
	assert.Contains(t, text, "Conversation cleared.")
	assert.Equal(t, 2, r.session.Log().Len(), "cleared log holds the greeting only")
	assert.Equal(t, 1, strings.Count(text, intent.ReplyAcknowledge))
}

// =============================================================================
// EXIT CODES
// =============================================================================

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"usage", &UsageError{Reason: "bad"}, ExitUsageError},
		{"config", config.ValidateErrors{{Field: "backend.base_url", Message: "required"}}, ExitConfigError},
		{"timeout", &api.ClientError{Type: api.ErrTypeTimeout, Message: "slow"}, ExitTimeoutError},
		{"connection", reported(&api.ClientError{Type: api.ErrTypeConnection, Message: "down"}), ExitNetworkError},
		{"no history", &CommandError{Command: "history export", Err: chat.ErrNoHistory}, ExitNotFoundError},
		{"other", errors.New("boom"), ExitGeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestDisplayError_SkipsReported(t *testing.T) {
	var buf bytes.Buffer
	displayError(&buf, reported(errors.New("shown")))
	assert.Empty(t, buf.String())

	displayError(&buf, errors.New("boom"))
	assert.Contains(t, buf.String(), "boom")
}
