package git

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	cryptossh "golang.org/x/crypto/ssh"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
)

const (
	tokenUsername = "token" // GitHub/GitLab convention
	sshUsername   = "git"
)

// AuthManager turns an entities.AuthConfig into a go-git auth method.
type AuthManager interface {
	PrepareAuth(config entities.AuthConfig) (transport.AuthMethod, error)
}

// DefaultAuthManager implements AuthManager.
type DefaultAuthManager struct{}

// NewDefaultAuthManager creates a new DefaultAuthManager.
func NewDefaultAuthManager() *DefaultAuthManager {
	return &DefaultAuthManager{}
}

// PrepareAuth prepares the authentication method from config. A nil method
// with a nil error means anonymous access.
func (*DefaultAuthManager) PrepareAuth(config entities.AuthConfig) (transport.AuthMethod, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case "", entities.AuthTypeNone:
		return nil, nil

	case entities.AuthTypeToken:
		return &http.BasicAuth{
			Username: tokenUsername,
			Password: config.Token,
		}, nil

	case entities.AuthTypeBasic:
		return &http.BasicAuth{
			Username: config.Username,
			Password: config.Password,
		}, nil

	case entities.AuthTypeSSHKey:
		var signer cryptossh.Signer
		var err error

		if config.SSHKeyPassword != "" {
			signer, err = cryptossh.ParsePrivateKeyWithPassphrase(
				[]byte(config.SSHKey), []byte(config.SSHKeyPassword),
			)
		} else {
			signer, err = cryptossh.ParsePrivateKey([]byte(config.SSHKey))
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse SSH key: %w", err)
		}

		user := config.Username
		if user == "" {
			user = sshUsername
		}
		return &ssh.PublicKeys{
			User:   user,
			Signer: signer,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported authentication type: %s", config.Type)
	}
}
