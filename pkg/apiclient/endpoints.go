package apiclient

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Mode selects which base address the process talks to.
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// Resource is a logical backend resource name.
type Resource string

const (
	ResourceWeather Resource = "weather"
	ResourceCrops   Resource = "crops"
	ResourceAdvice  Resource = "advice"
	ResourceUser    Resource = "user"
)

const (
	DefaultDevelopmentBaseURL = "http://localhost:8000"
	DefaultTimeout            = 10 * time.Second
)

var resourcePaths = map[Resource]string{
	ResourceWeather: "/api/weather",
	ResourceCrops:   "/api/crops",
	ResourceAdvice:  "/api/advice",
	ResourceUser:    "/api/user",
}

// Endpoints is the base address, resource path table and request timeout
// shared by every call. It is immutable once built and safe to share.
type Endpoints struct {
	mode    Mode
	baseURL string
	timeout time.Duration
}

// NewEndpoints validates and freezes an endpoint configuration. An empty
// baseURL falls back to DefaultDevelopmentBaseURL in development mode only.
func NewEndpoints(mode Mode, baseURL string, timeout time.Duration) (Endpoints, error) {
	switch mode {
	case ModeDevelopment, ModeProduction:
	default:
		return Endpoints{}, fmt.Errorf("unknown mode %q", mode)
	}

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		if mode == ModeProduction {
			return Endpoints{}, fmt.Errorf("base URL is required in %s mode", mode)
		}
		base = DefaultDevelopmentBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Endpoints{}, fmt.Errorf("invalid base URL %q", baseURL)
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return Endpoints{mode: mode, baseURL: base, timeout: timeout}, nil
}

func (e Endpoints) Mode() Mode {
	return e.mode
}

func (e Endpoints) BaseURL() string {
	return e.baseURL
}

func (e Endpoints) Timeout() time.Duration {
	if e.timeout <= 0 {
		return DefaultTimeout
	}
	return e.timeout
}

// Path returns the resource's path fragment followed by the escaped segments.
// Unknown resources resolve to an empty string.
func (e Endpoints) Path(resource Resource, segments ...string) string {
	base, ok := resourcePaths[resource]
	if !ok {
		return ""
	}
	if len(segments) == 0 {
		return base
	}
	var b strings.Builder
	b.WriteString(base)
	for _, seg := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(seg))
	}
	return b.String()
}

// URL joins the base address with an already-resolved path.
func (e Endpoints) URL(path string) string {
	if path == "" {
		return e.baseURL
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return e.baseURL + path
}

// WithQuery appends encoded query parameters to path.
func WithQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + query.Encode()
}
