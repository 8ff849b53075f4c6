package auth

import "context"

// actorContextKey is the context key for the authenticated actor.
type actorContextKey struct{}

// Actor identifies who issued a request.
type Actor struct {
	// KeyPrefix is the first characters of the presented key, safe to log.
	KeyPrefix string `json:"keyPrefix,omitempty"`
	// ActorType is "api_key", or "anonymous" when authentication is disabled.
	ActorType string `json:"actorType"`
}

// ActorFromContext extracts the actor from context.
func ActorFromContext(ctx context.Context) (*Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(*Actor)
	return actor, ok
}

// ContextWithActor adds actor to context.
func ContextWithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}
