package collect

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/devdash/devdash/internal/config"
	"github.com/devdash/devdash/internal/exec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePulls = `[
  {"number": 42, "title": "Add cache", "html_url": "https://github.com/acme/w/pull/42",
   "updated_at": "2024-05-01T10:00:00Z", "body": "line1\nline2", "user": {"login": "ana"}},
  {"number": 43, "title": "Fix bug", "html_url": "https://github.com/acme/w/pull/43",
   "updated_at": "2024-05-02T10:00:00Z", "body": null, "user": {"login": "bo"}}
]`

const sampleGH = `[
  {"number": 7, "title": "Bump deps", "url": "https://github.com/acme/w/pull/7",
   "updatedAt": "2024-05-03T10:00:00Z", "author": {"login": "dependabot"}},
  {"number": 8, "title": "", "url": "", "updatedAt": "", "author": {}}
]`

func ghConfig(apiBase string) config.GitHubConfig {
	return config.GitHubConfig{Repo: "acme/w", TokenEnv: "DEVDASH_TEST_TOKEN", APIBase: apiBase}
}

func failRunner(t *testing.T) exec.Runner {
	return exec.RunnerFunc(func(context.Context, string, string, ...string) (string, error) {
		t.Fatal("gh should not be called")
		return "", nil
	})
}

func TestPRCollector_API(t *testing.T) {
	t.Run("authenticated request", func(t *testing.T) {
		t.Setenv("DEVDASH_TEST_TOKEN", "s3cret")
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/repos/acme/w/pulls", r.URL.Path)
			assert.Equal(t, "open", r.URL.Query().Get("state"))
			assert.Equal(t, "10", r.URL.Query().Get("per_page"))
			assert.Equal(t, "devdash", r.Header.Get("User-Agent"))
			assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
			assert.Equal(t, "Bearer s3cret", r.Header.Get("Authorization"))
			fmt.Fprint(w, samplePulls)
		}))
		defer srv.Close()

		c := PRCollector{HTTP: srv.Client(), Runner: failRunner(t)}
		st := c.Collect(context.Background(), ".", ghConfig(srv.URL))

		require.Empty(t, st.Error)
		assert.Equal(t, "github-api (DEVDASH_TEST_TOKEN)", st.Source)
		assert.Equal(t, []string{"#42 Add cache (@ana)", "#43 Fix bug (@bo)"}, st.Open)
		require.Len(t, st.Items, 2)
		assert.Equal(t, PRItem{Number: 42, Title: "Add cache", Author: "ana", URL: "https://github.com/acme/w/pull/42", UpdatedAt: "2024-05-01T10:00:00Z", Body: "line1\nline2"}, st.Items[0])
		assert.Empty(t, st.Items[1].Body)
	})

	t.Run("unauthenticated request", func(t *testing.T) {
		t.Setenv("DEVDASH_TEST_TOKEN", "")
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			fmt.Fprint(w, `[]`)
		}))
		defer srv.Close()

		c := PRCollector{HTTP: srv.Client(), Runner: failRunner(t)}
		st := c.Collect(context.Background(), ".", ghConfig(srv.URL))

		assert.Equal(t, "github-api (unauthenticated)", st.Source)
		assert.Equal(t, []string{NoPRs}, st.Open)
		assert.Empty(t, st.Items)
	})

	t.Run("caps at ten", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rows := make([]string, 15)
			for i := range rows {
				rows[i] = fmt.Sprintf(`{"number": %d, "title": "t", "user": {"login": "u"}}`, i)
			}
			fmt.Fprint(w, "["+strings.Join(rows, ",")+"]")
		}))
		defer srv.Close()

		c := PRCollector{HTTP: srv.Client(), Runner: failRunner(t)}
		st := c.Collect(context.Background(), ".", ghConfig(srv.URL))

		assert.Len(t, st.Items, MaxPRs)
		assert.Len(t, st.Open, MaxPRs)
	})
}

func TestPRCollector_FallsBackToCLI(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"http error status", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"message":"Bad credentials"}`, http.StatusUnauthorized)
		}},
		{"undecodable body", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"not":"a list"}`)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			var calls atomic.Int32
			run := exec.RunnerFunc(func(_ context.Context, dir, name string, args ...string) (string, error) {
				calls.Add(1)
				assert.Equal(t, "gh", name)
				assert.Equal(t, "/src/app", dir)
				assert.Equal(t, []string{"pr", "list", "--state", "open", "--limit", "10", "--json", "number,title,author,url,updatedAt", "--repo", "acme/w"}, args)
				return sampleGH, nil
			})

			c := PRCollector{HTTP: srv.Client(), Runner: run}
			st := c.Collect(context.Background(), "/src/app", ghConfig(srv.URL))

			assert.Equal(t, int32(1), calls.Load())
			assert.Empty(t, st.Error)
			assert.Equal(t, "gh-cli", st.Source)
			assert.Equal(t, []string{"#7 Bump deps (@dependabot)", "#8 untitled (@unknown)"}, st.Open)
		})
	}
}

func TestPRCollector_NoRepoUsesCLIOnly(t *testing.T) {
	run := exec.RunnerFunc(func(_ context.Context, _, name string, args ...string) (string, error) {
		assert.NotContains(t, args, "--repo")
		return "[]", nil
	})

	c := PRCollector{HTTP: &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
		t.Fatal("no HTTP request expected without github.repo")
		return nil, nil
	})}, Runner: run}
	st := c.Collect(context.Background(), ".", config.GitHubConfig{TokenEnv: "GITHUB_TOKEN"})

	assert.Equal(t, "gh-cli", st.Source)
	assert.Equal(t, []string{NoPRs}, st.Open)
}

func TestPRCollector_CLIFailure(t *testing.T) {
	run := exec.RunnerFunc(func(context.Context, string, string, ...string) (string, error) {
		return "", errors.New("gh: To get started with GitHub CLI, please run: gh auth login")
	})

	c := PRCollector{Runner: run}
	st := c.Collect(context.Background(), ".", config.GitHubConfig{TokenEnv: "GH_PAT"})

	assert.Equal(t, "none", st.Source)
	assert.Empty(t, st.Items)
	assert.Equal(t, "PR auth/setup needed. Configure github.repo + GH_PAT or run `gh auth login` (gh: To get started with GitHub CLI, please run: gh auth login)", st.Error)
}

func TestParseGHPRList(t *testing.T) {
	_, err := ParseGHPRList("nope")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "gh parse error: "))

	_, err = ParseGHPRList(`{"number": 1}`)
	require.Error(t, err)
	assert.Equal(t, "unexpected gh response shape", err.Error())
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
