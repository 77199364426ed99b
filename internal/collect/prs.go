package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/devdash/devdash/internal/config"
	"github.com/devdash/devdash/internal/errors"
	"github.com/devdash/devdash/internal/exec"
)

const (
	// MaxPRs caps the pull requests kept per cycle.
	MaxPRs = 10
	// NoPRs is the display placeholder for an empty list.
	NoPRs = "no open PRs"

	userAgent     = "devdash"
	githubAccept  = "application/vnd.github+json"
	maxAPIErrBody = 512
)

// githubPull is the subset of the REST pulls payload we read.
type githubPull struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	HTMLURL   string `json:"html_url"`
	UpdatedAt string `json:"updated_at"`
	Body      string `json:"body"`
	User      struct {
		Login string `json:"login"`
	} `json:"user"`
}

// ghPull is one element of `gh pr list --json` output.
type ghPull struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	UpdatedAt string `json:"updatedAt"`
	Author    struct {
		Login string `json:"login"`
	} `json:"author"`
}

// PRCollector reads the review queue, preferring the REST API and falling
// back to the gh CLI.
type PRCollector struct {
	HTTP   *http.Client
	Runner exec.Runner
}

// Collect returns open pull requests. When cfg.Repo is set the REST API is
// tried first; any failure there falls through to `gh pr list`.
func (c *PRCollector) Collect(ctx context.Context, repoPath string, cfg config.GitHubConfig) PRStatus {
	if cfg.Repo != "" {
		st, err := c.fromAPI(ctx, cfg)
		if err == nil {
			return st
		}
		logCollect.Debug("github api failed for %s, falling back to gh: %v", cfg.Repo, err)
	}
	return c.fromCLI(ctx, repoPath, cfg)
}

func (c *PRCollector) fromAPI(ctx context.Context, cfg config.GitHubConfig) (PRStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, HTTPTimeout)
	defer cancel()

	base := strings.TrimRight(cfg.APIBase, "/")
	if base == "" {
		base = config.DefaultAPIBase
	}
	endpoint := fmt.Sprintf("%s/repos/%s/pulls?%s", base, cfg.Repo, url.Values{
		"state":    {"open"},
		"per_page": {fmt.Sprint(MaxPRs)},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return PRStatus{}, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", githubAccept)

	source := "github-api (unauthenticated)"
	if token := os.Getenv(cfg.TokenEnv); cfg.TokenEnv != "" && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
		source = fmt.Sprintf("github-api (%s)", cfg.TokenEnv)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return PRStatus{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxAPIErrBody))
		return PRStatus{}, fmt.Errorf("GitHub API %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	var pulls []githubPull
	if err := json.NewDecoder(resp.Body).Decode(&pulls); err != nil {
		return PRStatus{}, fmt.Errorf("decoding GitHub API response: %w", err)
	}

	items := make([]PRItem, 0, min(len(pulls), MaxPRs))
	for _, p := range pulls {
		if len(items) == MaxPRs {
			break
		}
		items = append(items, PRItem{
			Number:    p.Number,
			Title:     p.Title,
			Author:    p.User.Login,
			URL:       p.HTMLURL,
			UpdatedAt: p.UpdatedAt,
			Body:      p.Body,
		})
	}
	return PRStatus{Open: prDisplay(items), Items: items, Source: source}, nil
}

func (c *PRCollector) fromCLI(ctx context.Context, repoPath string, cfg config.GitHubConfig) PRStatus {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	args := []string{"pr", "list", "--state", "open", "--limit", fmt.Sprint(MaxPRs), "--json", "number,title,author,url,updatedAt"}
	if cfg.Repo != "" {
		args = append(args, "--repo", cfg.Repo)
	}

	runner := c.Runner
	if runner == nil {
		runner = exec.LocalRunner{}
	}
	out, err := runner.Run(ctx, repoPath, "gh", args...)
	if err != nil {
		return PRStatus{
			Open:   []string{},
			Items:  []PRItem{},
			Source: "none",
			Error: fmt.Sprintf("PR auth/setup needed. Configure github.repo + %s or run `gh auth login` (%s)",
				cfg.TokenEnv, errors.Summary(err)),
		}
	}

	st, err := ParseGHPRList(out)
	st.Source = "gh-cli"
	if err != nil {
		st.Error = err.Error()
	}
	return st
}

// ParseGHPRList decodes `gh pr list --json number,title,author,url,updatedAt`.
func ParseGHPRList(raw string) (PRStatus, error) {
	empty := PRStatus{Open: []string{}, Items: []PRItem{}}

	var doc json.RawMessage
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return empty, fmt.Errorf("gh parse error: %v", err)
	}
	var pulls []ghPull
	if err := json.Unmarshal(doc, &pulls); err != nil {
		return empty, fmt.Errorf("unexpected gh response shape")
	}

	items := make([]PRItem, 0, min(len(pulls), MaxPRs))
	for _, p := range pulls {
		if len(items) == MaxPRs {
			break
		}
		item := PRItem{
			Number:    p.Number,
			Title:     p.Title,
			Author:    p.Author.Login,
			URL:       p.URL,
			UpdatedAt: p.UpdatedAt,
		}
		if item.Title == "" {
			item.Title = "untitled"
		}
		if item.Author == "" {
			item.Author = "unknown"
		}
		items = append(items, item)
	}
	return PRStatus{Open: prDisplay(items), Items: items}, nil
}

func prDisplay(items []PRItem) []string {
	open := make([]string, 0, len(items))
	for _, p := range items {
		open = append(open, p.Line())
	}
	if len(open) == 0 {
		open = append(open, NoPRs)
	}
	return open
}
