package graph

// Build fuses per-artist genre lists and per-artist collaboration credits
// into one graph.
//
// The build runs in two explicit phases and the order matters:
//
//  1. One node per genres key (in table order), carrying its genre list even
//     when empty. Then a genre edge for every pair of distinct nodes sharing
//     at least one tag, weighted by the number of distinct shared tags.
//  2. A collaboration edge for every (artist, collaborator) credit where both
//     names are nodes and differ. A collaboration written onto a pair that
//     already has a genre edge replaces it entirely.
//
// Credits naming artists outside the genres table are dropped, never added as
// nodes. Repeated credits rewrite the same edge. Either table may be nil.
func Build(genres, collaborations *Table) *Graph {
	g := New()

	for _, name := range genres.Keys() {
		tags, _ := genres.Get(name)
		g.addNode(name, tags)
	}
	g.linkGenres()
	g.linkCollaborations(collaborations)

	return g
}

// linkGenres is phase one: pairwise genre-set intersection.
func (g *Graph) linkGenres() {
	sets := make([]map[string]struct{}, len(g.nodes))
	for i, n := range g.nodes {
		sets[i] = tagSet(n.Genres)
	}

	for i := range g.nodes {
		for j := i + 1; j < len(g.nodes); j++ {
			if shared := sharedCount(sets[i], sets[j]); shared > 0 {
				g.setEdge(g.nodes[i].Name, g.nodes[j].Name, KindGenre, shared)
			}
		}
	}
}

// linkCollaborations is phase two and must run after linkGenres.
func (g *Graph) linkCollaborations(collaborations *Table) {
	for _, artist := range collaborations.Keys() {
		credits, _ := collaborations.Get(artist)
		for _, collaborator := range credits {
			if collaborator == artist {
				continue
			}
			g.setEdge(artist, collaborator, KindCollaboration, 0)
		}
	}
}

func tagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

func sharedCount(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}
