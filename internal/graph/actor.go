package graph

// Actor is a graph node. Two actors are the same node iff their IDs match;
// Name is carried for display only.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ActorRecord is one ingested actor row: the actor and the raw movie ids they
// are credited in, possibly including movies outside the MovieIndex.
type ActorRecord struct {
	Actor    Actor
	MovieIDs []string
}
