package project

import (
	"maps"
	"slices"

	"github.com/eugenenazirov/treasury-dao/internal/env"
)

// CompilerVersion is the Solidity compiler version the contracts build with.
const CompilerVersion = "0.8.20"

// Supported network names.
const (
	Goerli   = "goerli"
	Optimism = "optimism"
)

// Environment variables consumed by Resolve.
const (
	GoerliURLVar   = "GOERLI_URL"
	OptimismURLVar = "OPTIMISM_URL"
	PrivateKeyVar  = "PRIVATE_KEY"
)

// RedactedAccount replaces credentials in redacted views.
const RedactedAccount = "<redacted>"

// urlVars maps each supported network to the variable holding its endpoint.
var urlVars = map[string]string{
	Goerli:   GoerliURLVar,
	Optimism: OptimismURLVar,
}

// Variables returns the names of the environment variables Resolve reads.
func Variables() []string {
	return []string{GoerliURLVar, OptimismURLVar, PrivateKeyVar}
}

// NetworkConfig holds the connection settings of a single network.
type NetworkConfig struct {
	url      string
	accounts []string
}

// URL returns the network endpoint. It may be empty.
func (n NetworkConfig) URL() string {
	return n.url
}

// Accounts returns a copy of the network credentials. It holds at most one
// element.
func (n NetworkConfig) Accounts() []string {
	return slices.Clone(n.accounts)
}

// HasAccount reports whether a credential is configured.
func (n NetworkConfig) HasAccount() bool {
	return len(n.accounts) > 0
}

// Equal reports whether both configs carry the same URL and accounts.
func (n NetworkConfig) Equal(other NetworkConfig) bool {
	return n.url == other.url && slices.Equal(n.accounts, other.accounts)
}

func (n NetworkConfig) redacted() NetworkConfig {
	out := NetworkConfig{url: n.url, accounts: make([]string, len(n.accounts))}
	for i := range out.accounts {
		out.accounts[i] = RedactedAccount
	}
	return out
}

// ProjectConfig is the resolved build configuration. Values are immutable:
// accessors hand out copies.
type ProjectConfig struct {
	compilerVersion string
	networks        map[string]NetworkConfig
}

// CompilerVersion returns the Solidity compiler version.
func (p ProjectConfig) CompilerVersion() string {
	return p.compilerVersion
}

// Network returns the settings of the named network.
func (p ProjectConfig) Network(name string) (NetworkConfig, bool) {
	network, ok := p.networks[name]
	if !ok {
		return NetworkConfig{}, false
	}
	return NetworkConfig{url: network.url, accounts: network.Accounts()}, true
}

// Networks returns a copy of the network mapping.
func (p ProjectConfig) Networks() map[string]NetworkConfig {
	out := make(map[string]NetworkConfig, len(p.networks))
	for name := range p.networks {
		out[name], _ = p.Network(name)
	}
	return out
}

// NetworkNames returns the configured network names in sorted order.
func (p ProjectConfig) NetworkNames() []string {
	return slices.Sorted(maps.Keys(p.networks))
}

// Equal reports whether two configurations are structurally equal.
func (p ProjectConfig) Equal(other ProjectConfig) bool {
	return p.compilerVersion == other.compilerVersion &&
		maps.EqualFunc(p.networks, other.networks, NetworkConfig.Equal)
}

// Redacted returns a copy in which every credential is replaced by
// RedactedAccount. URLs are kept.
func (p ProjectConfig) Redacted() ProjectConfig {
	out := ProjectConfig{
		compilerVersion: p.compilerVersion,
		networks:        make(map[string]NetworkConfig, len(p.networks)),
	}
	for name, network := range p.networks {
		out.networks[name] = network.redacted()
	}
	return out
}

// Resolve builds the project configuration from src. Unset or empty URL
// variables yield an empty URL; an unset or empty PRIVATE_KEY yields no
// accounts on any network, otherwise every network gets it verbatim as its
// only account.
func Resolve(src env.Source) ProjectConfig {
	var accounts []string
	if key := env.Get(src, PrivateKeyVar); key != "" {
		accounts = []string{key}
	}

	networks := make(map[string]NetworkConfig, len(urlVars))
	for name, variable := range urlVars {
		networks[name] = NetworkConfig{
			url:      env.Get(src, variable),
			accounts: slices.Clone(accounts),
		}
	}

	return ProjectConfig{
		compilerVersion: CompilerVersion,
		networks:        networks,
	}
}

// ResolveFromEnvironment resolves against the live process environment.
func ResolveFromEnvironment() ProjectConfig {
	return Resolve(env.OS{})
}
