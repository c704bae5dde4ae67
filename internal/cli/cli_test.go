package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const feedJSON = `{
  "date": "2026-10-19",
  "events_found": true,
  "events": [
    {"description": "The Kraken play at Climate Pledge Arena at 7:00 PM."},
    {"description": "The Sounders play at Lumen Field at 1:30 PM."}
  ]
}`

func newFeedServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func writeConfig(t *testing.T, feedURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := fmt.Sprintf("feed:\n  url: %q\nlogging:\n  level: error\n", feedURL)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME_ASSISTANT_TOKEN", "")
	exitCode = ExitSuccess

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheck_Text(t *testing.T) {
	server := newFeedServer(t, feedJSON, http.StatusOK)

	out, err := execute(t, "check", "--url", server.URL, "--log-level", "error")
	if err != nil {
		t.Fatalf("check error: %v", err)
	}

	for _, want := range []string{
		"Seattle home games on 2026-10-19:",
		"1:30 PM  Lumen Field",
		"7:00 PM  Climate Pledge Arena",
		"There are 2 events today: 1:30 PM at Lumen Field and 7:00 PM at Climate Pledge Arena",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if exitCode != ExitHomeGame {
		t.Errorf("exitCode = %d, want %d", exitCode, ExitHomeGame)
	}
}

func TestCheck_JSON(t *testing.T) {
	server := newFeedServer(t, feedJSON, http.StatusOK)

	out, err := execute(t, "check", "--url", server.URL, "--format", "json", "--log-level", "error")
	if err != nil {
		t.Fatalf("check error: %v", err)
	}

	var result OutputResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if result.EventCount != 2 || result.Events[0].Venue != "Lumen Field" {
		t.Errorf("result = %+v", result)
	}
}

func TestCheck_NoGames(t *testing.T) {
	server := newFeedServer(t, `{"date":"2026-10-20","events_found":false,"events":[]}`, http.StatusOK)

	out, err := execute(t, "check", "--url", server.URL, "--log-level", "error")
	if err != nil {
		t.Fatalf("check error: %v", err)
	}
	if !strings.Contains(out, "No Seattle home games on 2026-10-20.") {
		t.Errorf("output = %q", out)
	}
	if exitCode != ExitSuccess {
		t.Errorf("exitCode = %d, want %d", exitCode, ExitSuccess)
	}
}

func TestCheck_Errors(t *testing.T) {
	server := newFeedServer(t, "oops", http.StatusInternalServerError)

	tests := []struct {
		name string
		args []string
	}{
		{name: "feed failure", args: []string{"check", "--url", server.URL}},
		{name: "bad format", args: []string{"check", "--url", server.URL, "--format", "xml"}},
		{name: "bad sort", args: []string{"check", "--url", server.URL, "--sort", "date"}},
		{name: "bad log level", args: []string{"check", "--log-level", "loud"}},
		{name: "missing config", args: []string{"check", "--config", filepath.Join(t.TempDir(), "nope.yaml")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSummary(t *testing.T) {
	server := newFeedServer(t, feedJSON, http.StatusOK)

	out, err := execute(t, "summary", "--config", writeConfig(t, server.URL))
	if err != nil {
		t.Fatalf("summary error: %v", err)
	}
	want := "There are 2 events today: 1:30 PM at Lumen Field and 7:00 PM at Climate Pledge Arena\n"
	if out != want {
		t.Errorf("summary output = %q, want %q", out, want)
	}
}
