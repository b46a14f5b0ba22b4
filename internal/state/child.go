package state

import (
	"context"

	"amparo/internal/domain"
	"amparo/internal/store"
)

// ChildClient extends the CRUD contract with the foreign-key listing used
// by collections that reference a participant.
type ChildClient[T store.Record] interface {
	Client[T]
	ListByUsuario(ctx context.Context, usuarioID string) ([]T, error)
}

// ChildStore is a Store for a collection whose records reference a
// participant. Creation denormalizes the participant's display name into
// the record so lists render without a join; the name is resolved from
// the participant container's already-loaded items.
type ChildStore[T store.Record] struct {
	*Store[T]
	child    ChildClient[T]
	usuarios *Store[domain.Usuario]
	refID    func(T) string
	setRef   func(*T, string, string)
}

// NewChildStore builds a child container. refID extracts the referenced
// participant id from a record; setRef writes the id and resolved name
// back before submission.
func NewChildStore[T store.Record](
	client ChildClient[T],
	usuarios *Store[domain.Usuario],
	refID func(T) string,
	setRef func(*T, string, string),
) *ChildStore[T] {
	return &ChildStore[T]{
		Store:    NewStore[T](client),
		child:    client,
		usuarios: usuarios,
		refID:    refID,
		setRef:   setRef,
	}
}

// FetchByUsuario replaces the list with the records referencing one
// participant.
func (s *ChildStore[T]) FetchByUsuario(ctx context.Context, usuarioID string) {
	s.begin()
	items, err := s.child.ListByUsuario(ctx, usuarioID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		return
	}
	s.items = items
}

// Create resolves the referenced participant locally and then persists
// the record. A participant missing from the loaded list fails with
// ReferenceNotFoundError before any network call is made.
func (s *ChildStore[T]) Create(ctx context.Context, item T) (T, bool) {
	id := s.refID(item)
	var name string
	found := false
	for _, u := range s.usuarios.Snapshot().Items {
		if u.ID == id {
			name = u.FullName
			found = true
			break
		}
	}
	if !found {
		s.fail(&ReferenceNotFoundError{UsuarioID: id})
		var zero T
		return zero, false
	}
	s.setRef(&item, id, name)
	return s.Store.Create(ctx, item)
}

// Avaliacoes builds the trial-period evaluation container.
func Avaliacoes(client ChildClient[domain.Avaliacao], usuarios *Store[domain.Usuario]) *ChildStore[domain.Avaliacao] {
	return NewChildStore(client, usuarios,
		func(a domain.Avaliacao) string { return a.UsuarioID },
		func(a *domain.Avaliacao, id, nome string) { a.UsuarioID = id; a.UsuarioNome = nome },
	)
}

// EntrevistasPais builds the parent interview container.
func EntrevistasPais(client ChildClient[domain.ParentInterview], usuarios *Store[domain.Usuario]) *ChildStore[domain.ParentInterview] {
	return NewChildStore(client, usuarios,
		func(p domain.ParentInterview) string { return p.UsuarioID },
		func(p *domain.ParentInterview, id, nome string) { p.UsuarioID = id; p.UsuarioNome = nome },
	)
}

// Encaminhamentos builds the work placement container.
func Encaminhamentos(client ChildClient[domain.WorkPlacement], usuarios *Store[domain.Usuario]) *ChildStore[domain.WorkPlacement] {
	return NewChildStore(client, usuarios,
		func(w domain.WorkPlacement) string { return w.UsuarioID },
		func(w *domain.WorkPlacement, id, nome string) { w.UsuarioID = id; w.UsuarioNome = nome },
	)
}
