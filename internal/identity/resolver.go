package identity

import (
	"context"
	"errors"

	"github.com/epic-events/epic-events/internal/shared"
	"github.com/epic-events/epic-events/internal/token"
)

// TokenReader reads the locally stored session token.
type TokenReader interface {
	Read() (string, error)
}

// Decoder validates a token and returns its claims.
type Decoder interface {
	Decode(tok string) (*token.Claims, error)
}

// CollaboratorFinder looks up the collaborator behind a token subject.
type CollaboratorFinder interface {
	FindActorByEmail(ctx context.Context, email string) (*shared.Actor, error)
}

// Resolver maps the stored session token to the collaborator it names.
type Resolver struct {
	store         TokenReader
	codec         Decoder
	collaborators CollaboratorFinder
}

// NewResolver constructs a Resolver.
func NewResolver(store TokenReader, codec Decoder, collaborators CollaboratorFinder) *Resolver {
	return &Resolver{store: store, codec: codec, collaborators: collaborators}
}

// Current resolves the invoking collaborator. Propagates
// shared.ErrNoSession, shared.ErrExpiredToken, and shared.ErrInvalidToken
// from the lower layers; returns shared.ErrUnknownIdentity when the token
// subject no longer maps to a collaborator (deleted after issuance).
func (r *Resolver) Current(ctx context.Context) (*shared.Actor, error) {
	tok, err := r.store.Read()
	if err != nil {
		return nil, err
	}
	claims, err := r.codec.Decode(tok)
	if err != nil {
		return nil, err
	}
	actor, err := r.collaborators.FindActorByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnknownIdentity
		}
		return nil, err
	}
	return actor, nil
}
