// Package llm holds the two interchangeable text-generation backends.
// Both implement Client; everything above this package is backend-agnostic.
package llm

import (
	"context"
	"fmt"

	pkgerrors "github.com/Thinguy99/bot-discord/pkg/errors"
)

// Client sends a prompt to a remote LLM and returns the raw text reply.
type Client interface {
	Name() string
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Set is the registry of configured backends, keyed by backend name.
type Set struct {
	clients    map[string]Client
	defaultLLM string
}

func NewSet(defaultLLM string) *Set {
	return &Set{
		clients:    make(map[string]Client),
		defaultLLM: defaultLLM,
	}
}

func (s *Set) Register(c Client) {
	s.clients[c.Name()] = c
}

// Pick returns the named backend, or the default when name is empty.
// Selecting a backend whose API key was never configured is a hard
// precondition failure.
func (s *Set) Pick(name string) (Client, error) {
	if name == "" {
		name = s.defaultLLM
	}
	c, ok := s.clients[name]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.KindMissingCredential, "llm",
			fmt.Sprintf("aucune clé API configurée pour le backend %q", name))
	}
	return c, nil
}

func (s *Set) Names() []string {
	names := make([]string, 0, len(s.clients))
	for name := range s.clients {
		names = append(names, name)
	}
	return names
}
