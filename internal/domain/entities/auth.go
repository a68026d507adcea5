package entities

import (
	"errors"
	"fmt"
)

// AuthType represents the type of authentication to use.
type AuthType string

const (
	// AuthTypeNone means no authentication (public repositories, local paths).
	AuthTypeNone AuthType = "none"

	// AuthTypeToken means token-based authentication (Personal Access Tokens).
	AuthTypeToken AuthType = "token"

	// AuthTypeBasic means basic username/password authentication.
	AuthTypeBasic AuthType = "basic-auth"

	// AuthTypeSSHKey means SSH key authentication.
	AuthTypeSSHKey AuthType = "ssh-key"
)

// AuthConfig contains authentication configuration for Git operations.
type AuthConfig struct {
	Type AuthType `yaml:"type"`

	// Token is used for token-based authentication (GitHub, GitLab tokens).
	Token string `yaml:"token"`

	// Username and Password are used for basic authentication. Username also
	// overrides the "git" user for SSH.
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// SSHKey contains SSH private key data (PEM). SSHKeyPassword decrypts it.
	SSHKey         string `yaml:"ssh_key"`
	SSHKeyPassword string `yaml:"ssh_key_password"`
}

// Validate checks that the fields required by the auth type are set.
func (a AuthConfig) Validate() error {
	switch a.Type {
	case "", AuthTypeNone:
		return nil
	case AuthTypeToken:
		if a.Token == "" {
			return errors.New("token is required for token authentication")
		}
	case AuthTypeBasic:
		if a.Username == "" || a.Password == "" {
			return errors.New("username and password are required for basic authentication")
		}
	case AuthTypeSSHKey:
		if a.SSHKey == "" {
			return errors.New("SSH key is required for SSH authentication")
		}
	default:
		return fmt.Errorf("unsupported authentication type: %s", a.Type)
	}
	return nil
}
