package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dhodgson615/gitripper/internal/domain"
	"github.com/dhodgson615/gitripper/internal/utils"
	"github.com/dhodgson615/gitripper/pkg/version"
)

// DefaultAPIBaseURL is the GitHub REST API endpoint
const DefaultAPIBaseURL = "https://api.github.com"

var userAgent = "gitripper/" + version.Short()

// sharedHTTPClient is built at most once, on first use, and shared by every
// Client that does not bring its own.
var sharedHTTPClient = sync.OnceValue(func() *http.Client {
	return &http.Client{Timeout: 60 * time.Second}
})

// Client talks to the GitHub API to resolve default branches and download
// repository ZIP archives. It never extracts anything itself.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	retrier    *Retrier
	logger     *utils.Logger
	progress   bool
}

// ClientOptions contains options for creating a Client
type ClientOptions struct {
	HTTPClient *http.Client
	BaseURL    string
	Token      string
	Retrier    *Retrier
	Logger     *utils.Logger
	Progress   bool
}

// NewClient creates a new GitHub client
func NewClient(opts ClientOptions) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = sharedHTTPClient()
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultAPIBaseURL
	}
	if opts.Retrier == nil {
		opts.Retrier = NewRetrier(DefaultRetrierOptions())
	}

	return &Client{
		httpClient: opts.HTTPClient,
		baseURL:    opts.BaseURL,
		token:      opts.Token,
		retrier:    opts.Retrier,
		logger:     opts.Logger,
		progress:   opts.Progress,
	}
}

func (c *Client) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	return req, nil
}

// DefaultBranch returns the repository's default branch name
func (c *Client) DefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, repo)

	return RetryWithValue(ctx, c.retrier, func() (string, error) {
		req, err := c.newRequest(ctx, url)
		if err != nil {
			return "", err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return "", domain.NewDownloadError(url, 0, err)
		}
		defer resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
			var body struct {
				DefaultBranch string `json:"default_branch"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				return "", domain.NewDownloadError(url, resp.StatusCode, err)
			}
			if body.DefaultBranch == "" {
				return "main", nil
			}
			return body.DefaultBranch, nil
		case http.StatusNotFound:
			return "", domain.NewDownloadError(url, resp.StatusCode,
				fmt.Errorf("repository %s/%s %w", owner, repo, domain.ErrNotFound))
		default:
			return "", domain.NewDownloadError(url, resp.StatusCode,
				fmt.Errorf("repository lookup failed"))
		}
	})
}

// DownloadArchive downloads the repository's ZIP archive for the given ref
// into destDir and returns the path of the written file. The archive is
// fully on disk before this returns; extraction is a separate step.
func (c *Client) DownloadArchive(ctx context.Context, owner, repo, ref, destDir string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/zipball/%s", c.baseURL, owner, repo, ref)

	if c.logger != nil {
		c.logger.Debug().Str("url", url).Msg("Downloading archive")
	}

	return RetryWithValue(ctx, c.retrier, func() (string, error) {
		req, err := c.newRequest(ctx, url)
		if err != nil {
			return "", err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return "", domain.NewDownloadError(url, 0, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return "", domain.NewDownloadError(url, resp.StatusCode,
				fmt.Errorf("archive for %s/%s@%s %w", owner, repo, ref, domain.ErrNotFound))
		}
		if resp.StatusCode != http.StatusOK {
			return "", domain.NewDownloadError(url, resp.StatusCode,
				fmt.Errorf("archive download failed"))
		}

		return c.writeArchive(resp, owner, repo, destDir)
	})
}

func (c *Client) writeArchive(resp *http.Response, owner, repo, destDir string) (string, error) {
	tmp, err := os.CreateTemp(destDir, owner+"-"+repo+"-*.zip")
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	var body io.Reader = resp.Body
	if c.progress {
		bar := utils.NewProgressBar(resp.ContentLength, utils.DescDownloading)
		body = io.TeeReader(resp.Body, bar)
		defer bar.Finish()
	}

	if _, err := io.Copy(tmp, body); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return tmp.Name(), nil
}
