package harbor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/devantler-tech/harborsync/pkg/apis/sync/v1alpha1"
	"github.com/devantler-tech/harborsync/pkg/client/egress"
	"github.com/devantler-tech/harborsync/pkg/registry"
	"github.com/sirupsen/logrus"
)

// Client talks to one Harbor registry.
type Client struct {
	baseURL    string
	host       string
	endpoint   v1alpha1.Endpoint
	httpClient *http.Client
	pageSize   int
	logger     logrus.FieldLogger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client built from the network settings.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithPageSize sets the number of entries requested per page.
func WithPageSize(pageSize int) Option {
	return func(c *Client) {
		c.pageSize = pageSize
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the endpoint. Unless WithHTTPClient is given, the HTTP
// client is built from the endpoint's TLS setting and the network proxy settings.
func NewClient(
	endpoint v1alpha1.Endpoint,
	network v1alpha1.Network,
	opts ...Option,
) (*Client, error) {
	baseURL, err := endpoint.BaseURL()
	if err != nil {
		return nil, fmt.Errorf("create registry client: %w", err)
	}

	client := &Client{
		baseURL:  baseURL + v1alpha1.APIBasePath,
		host:     endpoint.Host(),
		endpoint: endpoint,
		pageSize: v1alpha1.DefaultPageSize,
		logger:   discardLogger(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.pageSize <= 0 || client.pageSize > v1alpha1.MaxPageSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageSize, client.pageSize)
	}

	if client.httpClient == nil {
		transport, err := egress.NewTransport(endpoint, network)
		if err != nil {
			return nil, fmt.Errorf("create registry client: %w", err)
		}

		client.httpClient = &http.Client{Transport: transport}
	}

	return client, nil
}

// Host returns the registry host[:port] used in image references.
func (c *Client) Host() string {
	return c.host
}

// ListProjects returns every project visible to the configured account.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	projects, err := listPaged[Project](ctx, c, "/projects")
	if err != nil {
		return projects, fmt.Errorf("list projects: %w", err)
	}

	return projects, nil
}

// ListRepositories returns every repository of a project.
func (c *Client) ListRepositories(ctx context.Context, project string) ([]Repository, error) {
	path := "/projects/" + url.PathEscape(project) + "/repositories"

	repositories, err := listPaged[Repository](ctx, c, path)

	for _, repository := range repositories {
		if raw := repository.UpdateTime.Invalid(); raw != "" {
			c.logger.WithFields(logrus.Fields{
				"repository":  repository.Name,
				"update_time": raw,
			}).Debug("unparseable update time")
		}
	}

	if err != nil {
		return repositories, fmt.Errorf("list repositories of project %s: %w", project, err)
	}

	return repositories, nil
}

// ListArtifacts returns every artifact of a repository, tags included. The repository name
// may carry the project prefix.
func (c *Client) ListArtifacts(ctx context.Context, project, repository string) ([]Artifact, error) {
	ref := registry.NewRepositoryReference(project, repository)
	path := c.repositoryPath(ref.SourceProject(), ref.EncodedSourceName()) + "/artifacts"

	artifacts, err := listPaged[Artifact](ctx, c, path, "with_tag", "true")

	for _, artifact := range artifacts {
		if raw := artifact.PushTime.Invalid(); raw != "" {
			c.logger.WithFields(logrus.Fields{
				"repository": ref.Path(),
				"digest":     artifact.Digest,
				"push_time":  raw,
			}).Debug("unparseable push time, sorting as oldest")
		}
	}

	if err != nil {
		return artifacts, fmt.Errorf("list artifacts of %s: %w", ref, err)
	}

	return artifacts, nil
}

// ArtifactExists reports whether the tag exists in the repository. Any non-success
// response, 404 included, and any connection failure mean false.
func (c *Client) ArtifactExists(ctx context.Context, project, repository, tag string) bool {
	ref := registry.NewRepositoryReference(project, repository)
	path := c.repositoryPath(ref.Project(), ref.EncodedName()) + "/artifacts/" + url.PathEscape(tag)

	return c.probe(ctx, path)
}

// RepositoryExists reports whether the repository exists in the project, folding every
// failure into false like ArtifactExists.
func (c *Client) RepositoryExists(ctx context.Context, project, repository string) bool {
	ref := registry.NewRepositoryReference(project, repository)

	return c.probe(ctx, c.repositoryPath(ref.SourceProject(), ref.EncodedSourceName()))
}

// Ping checks that the registry is reachable and accepts the configured credentials.
// 401 and 403 responses match ErrUnauthorized and ErrForbidden.
func (c *Client) Ping(ctx context.Context) error {
	query := url.Values{}
	query.Set("page", "1")
	query.Set("page_size", "1")

	resp, err := c.do(ctx, c.baseURL+"/projects?"+query.Encode())
	if err != nil {
		return fmt.Errorf("ping %s: %w", c.host, err)
	}

	drain(resp)

	return nil
}

func (c *Client) repositoryPath(project, encodedRepository string) string {
	return "/projects/" + url.PathEscape(project) + "/repositories/" + encodedRepository
}

func (c *Client) probe(ctx context.Context, path string) bool {
	resp, err := c.do(ctx, c.baseURL+path)
	if err != nil {
		c.logger.WithError(err).Debug("existence probe negative")

		return false
	}

	drain(resp)

	return true
}

// listPaged requests pages of pageSize entries, starting at page 1, until a page comes back
// shorter than pageSize or empty. On failure it returns the entries gathered so far.
func listPaged[T any](ctx context.Context, c *Client, path string, extraQuery ...string) ([]T, error) {
	var items []T

	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("page_size", strconv.Itoa(c.pageSize))

		for i := 0; i+1 < len(extraQuery); i += 2 {
			query.Set(extraQuery[i], extraQuery[i+1])
		}

		batch, err := getJSON[[]T](ctx, c, c.baseURL+path+"?"+query.Encode())
		if err != nil {
			return items, err
		}

		items = append(items, batch...)

		if len(batch) < c.pageSize {
			return items, nil
		}
	}
}

func getJSON[T any](ctx context.Context, c *Client, target string) (T, error) {
	var out T

	resp, err := c.do(ctx, target)
	if err != nil {
		return out, err
	}

	defer func() { _ = resp.Body.Close() }()

	err = json.NewDecoder(resp.Body).Decode(&out)
	if err != nil {
		return out, fmt.Errorf("%w: decode %s: %w", ErrTransport, target, err)
	}

	return out, nil
}

// do performs a GET and returns the response only for 2xx statuses.
func (c *Client) do(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrTransport, err)
	}

	req.Header.Set("Accept", "application/json")

	if c.endpoint.HasCredentials() {
		req.SetBasicAuth(c.endpoint.Username, c.endpoint.Password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithFields(logrus.Fields{"method": req.Method, "url": target}).
			WithError(err).Debug("registry request failed")

		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	c.logger.WithFields(logrus.Fields{
		"method": req.Method,
		"url":    target,
		"status": resp.StatusCode,
	}).Debug("registry request")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = resp.Body.Close()

		return nil, &StatusError{
			Method:     req.Method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return resp, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return logger
}
