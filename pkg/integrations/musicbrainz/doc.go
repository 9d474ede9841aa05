// Package musicbrainz looks up artists and their recording credits in the
// MusicBrainz web service.
//
// MusicBrainz requires a descriptive User-Agent and allows roughly one
// request per second per client; [Client] enforces both. Responses are
// requested as JSON and cached through the shared [integrations.Client].
//
// [integrations.Client]: github.com/matzehuels/artistgraph/pkg/integrations.Client
package musicbrainz
