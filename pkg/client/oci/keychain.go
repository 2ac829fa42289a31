package oci

import (
	"strings"

	"github.com/devantler-tech/harborsync/pkg/apis/sync/v1alpha1"
	"github.com/google/go-containerregistry/pkg/authn"
)

// endpointKeychain resolves the basic credentials configured for each registry host.
// Hosts without configured credentials resolve to anonymous so that a multi-keychain can fall
// through to the docker config.
type endpointKeychain struct {
	auths map[string]authn.Authenticator
}

// NewKeychain returns a keychain serving the configured credentials of the endpoints, falling
// back to the docker config (authn.DefaultKeychain) for hosts without configured credentials.
func NewKeychain(endpoints ...v1alpha1.Endpoint) authn.Keychain {
	keychain := &endpointKeychain{auths: map[string]authn.Authenticator{}}

	for _, endpoint := range endpoints {
		host := strings.ToLower(endpoint.Host())
		if host == "" || !endpoint.HasCredentials() {
			continue
		}

		keychain.auths[host] = &authn.Basic{
			Username: endpoint.Username,
			Password: endpoint.Password,
		}
	}

	return authn.NewMultiKeychain(keychain, authn.DefaultKeychain)
}

// Resolve implements authn.Keychain.
func (k *endpointKeychain) Resolve(resource authn.Resource) (authn.Authenticator, error) {
	if auth, ok := k.auths[strings.ToLower(resource.RegistryStr())]; ok {
		return auth, nil
	}

	return authn.Anonymous, nil
}
