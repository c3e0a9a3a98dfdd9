package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"techblog/internal/config"
)

const (
	perPage  = 100
	maxPages = 50
)

var (
	ErrNotFound = errors.New("github: resource not found")
	// ErrTruncated is returned when an account has more repositories than the page cap allows.
	ErrTruncated = errors.New("github: repository listing truncated")
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("github: %s returned status %d", e.URL, e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

type Repository struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Description     *string   `json:"description"`
	HTMLURL         string    `json:"html_url"`
	Homepage        *string   `json:"homepage"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	Topics          []string  `json:"topics"`
	LanguagesURL    string    `json:"languages_url"`
	CreatedAt       time.Time `json:"created_at"`
	Owner           struct {
		Login string `json:"login"`
	} `json:"owner"`
}

type readmeResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

type Client struct {
	http     *http.Client
	baseURL  string
	token    string
	maxPages int
}

func NewClient(cfg config.GitHub) *Client {
	httpClient := &http.Client{}
	if cfg.AccessToken != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken})
		httpClient = oauth2.NewClient(context.Background(), src)
	}
	httpClient.Timeout = cfg.Timeout
	httpClient.CheckRedirect = sameHostRedirect

	return &Client{
		http:     httpClient,
		baseURL:  strings.TrimRight(cfg.APIURL, "/"),
		token:    cfg.AccessToken,
		maxPages: maxPages,
	}
}

// sameHostRedirect refuses redirects that leave the original host, since the
// token transport would attach credentials to them.
func sameHostRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= 10 {
		return errors.New("github: stopped after 10 redirects")
	}
	if req.URL.Host != via[0].URL.Host {
		return fmt.Errorf("github: refusing redirect to %s", req.URL.Host)
	}
	return nil
}

func (c *Client) HasToken() bool {
	return c.token != ""
}

// ListRepositories returns every public repository of the account, following pages.
func (c *Client) ListRepositories(ctx context.Context, username string) ([]Repository, error) {
	all := []Repository{}

	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("per_page", strconv.Itoa(perPage))
		q.Set("page", strconv.Itoa(page))
		endpoint := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), q.Encode())

		var batch []Repository
		if err := c.getJSON(ctx, endpoint, &batch); err != nil {
			return nil, err
		}

		all = append(all, batch...)
		if len(batch) < perPage {
			return all, nil
		}
		if page >= c.maxPages {
			return nil, fmt.Errorf("%w: more than %d repositories for %s", ErrTruncated, len(all), username)
		}
	}
}

// GetLanguages returns the byte count per language of the repository.
func (c *Client) GetLanguages(ctx context.Context, repo Repository) (map[string]int64, error) {
	// only follow the advertised URL when it points at the configured API
	endpoint := repo.LanguagesURL
	if !strings.HasPrefix(endpoint, c.baseURL+"/") {
		endpoint = fmt.Sprintf("%s/repos/%s/%s/languages", c.baseURL, url.PathEscape(repo.Owner.Login), url.PathEscape(repo.Name))
	}

	languages := map[string]int64{}
	if err := c.getJSON(ctx, endpoint, &languages); err != nil {
		return nil, err
	}

	return languages, nil
}

// GetReadme returns the decoded README text. A repository without README yields ErrNotFound.
func (c *Client) GetReadme(ctx context.Context, owner, name string) (string, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/readme", c.baseURL, url.PathEscape(owner), url.PathEscape(name))

	var resp readmeResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return "", err
	}

	return decodeContent(resp)
}

func decodeContent(resp readmeResponse) (string, error) {
	if resp.Encoding != "" && resp.Encoding != "base64" {
		return resp.Content, nil
	}

	// the API wraps base64 content at 60 columns
	raw := strings.NewReplacer("\n", "", "\r", "").Replace(resp.Content)
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("github: decoding README: %w", err)
	}

	return string(decoded), nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("github: building request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("github: calling %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, URL: endpoint}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("github: decoding %s: %w", endpoint, err)
	}

	return nil
}
