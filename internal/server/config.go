package server

import "time"

// Default server settings
const (
	DefaultListenAddr      = ":8000"
	DefaultReferenceBranch = "master"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	ListenAddr      string        `json:"listen_addr,omitempty" yaml:"listen_addr,omitempty" validate:"omitempty,hostname_port"`
	ReadTimeout     time.Duration `json:"read_timeout,omitempty" yaml:"read_timeout,omitempty"`
	WriteTimeout    time.Duration `json:"write_timeout,omitempty" yaml:"write_timeout,omitempty"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout,omitempty" yaml:"shutdown_timeout,omitempty"`
	// ReferenceBranch is the branch merge bases are resolved against
	// when a route omits the explicit bases. The parent of a range
	// could live in any release branch; assuming the default branch is
	// the pragmatic guess the original behavior settled on.
	ReferenceBranch string `json:"reference_branch,omitempty" yaml:"reference_branch,omitempty"`
}

// NewDefaultServerConfig creates default server configuration.
func NewDefaultServerConfig() ServerConfig {
	return ServerConfig{
		ListenAddr:      DefaultListenAddr,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		ReferenceBranch: DefaultReferenceBranch,
	}
}
