package httpclient

import "time"

// HTTPClientConfig holds the transport and behavior settings for HTTPClient
type HTTPClientConfig struct {
	Timeout               time.Duration
	DialTimeout           time.Duration
	KeepAlive             time.Duration
	TLSHandshakeTimeout   time.Duration
	ExpectContinueTimeout time.Duration
	IdleConnTimeout       time.Duration
	MaxIdleConns          int
	MaxIdleConnsPerHost   int
	MaxConnsPerHost       int
	FollowRedirects       bool
	MaxRedirects          int
	InsecureSkipVerify    bool
	EnableHTTP2           bool
	UserAgent             string
	CustomHeaders         map[string]string
}

// DefaultHTTPClientConfig returns sensible defaults for API traffic
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:               30 * time.Second,
		DialTimeout:           10 * time.Second,
		KeepAlive:             30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		MaxConnsPerHost:       0,
		FollowRedirects:       true,
		MaxRedirects:          10,
		EnableHTTP2:           true,
		UserAgent:             "rangediff",
	}
}
