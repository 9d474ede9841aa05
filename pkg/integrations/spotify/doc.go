// Package spotify resolves artist names to Spotify artists and their genres.
//
// Authentication uses the client-credentials flow: the client exchanges its
// ID and secret for a bearer token at the accounts service and reuses it
// until shortly before expiry. Search results are cached per normalized
// query through the shared [integrations.Client].
//
// [integrations.Client]: github.com/matzehuels/artistgraph/pkg/integrations.Client
package spotify
