package project

// Document is the serialisable shape consumed by the contract build tooling.
type Document struct {
	CompilerVersion string                     `json:"compilerVersion" yaml:"compilerVersion" toml:"compilerVersion"`
	Networks        map[string]NetworkDocument `json:"networks" yaml:"networks" toml:"networks"`
}

// NetworkDocument is the serialisable shape of a single network.
type NetworkDocument struct {
	URL      string   `json:"url" yaml:"url" toml:"url"`
	Accounts []string `json:"accounts" yaml:"accounts" toml:"accounts"`
}

// Document converts the network into its serialisable shape. Accounts is
// never nil so encoders emit an empty list rather than null.
func (n NetworkConfig) Document() NetworkDocument {
	accounts := n.Accounts()
	if accounts == nil {
		accounts = []string{}
	}
	return NetworkDocument{URL: n.url, Accounts: accounts}
}

// Document converts the configuration into its serialisable shape.
func (p ProjectConfig) Document() Document {
	doc := Document{
		CompilerVersion: p.compilerVersion,
		Networks:        make(map[string]NetworkDocument, len(p.networks)),
	}
	for name, network := range p.networks {
		doc.Networks[name] = network.Document()
	}
	return doc
}
