// Package server exposes the local record store: one schemaless JSON
// collection per entity with conventional REST verbs. It stands in for
// the remote store during development and in tests; requests carry no
// authentication, the store trusts the caller.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"amparo/internal/repo"
)

// New returns an HTTP handler serving every known collection.
func New(r repo.Repo) http.Handler {
	router := chi.NewRouter()
	api := humachi.New(router, huma.DefaultConfig("Amparo Record Store", "0.1.0"))
	for _, name := range repo.Collections {
		registerCollection(api, r, name)
	}
	return router
}

type listInput struct {
	UsuarioID string `query:"usuarioId" required:"false" doc:"Filter by referenced participant id"`
}

type idInput struct {
	ID string `path:"id"`
}

type bodyInput struct {
	Body map[string]any `json:"body"`
}

type patchInput struct {
	ID   string         `path:"id"`
	Body map[string]any `json:"body"`
}

type recordOutput struct {
	Body map[string]any `json:"body"`
}

type recordListOutput struct {
	Body []map[string]any `json:"body"`
}

func registerCollection(api huma.API, r repo.Repo, name string) {
	base := "/" + name

	huma.Register(api, huma.Operation{
		OperationID: "list-" + name,
		Method:      http.MethodGet,
		Path:        base,
		Summary:     "List " + name,
	}, func(ctx context.Context, input *listInput) (*recordListOutput, error) {
		var (
			items []map[string]any
			err   error
		)
		if input.UsuarioID != "" {
			items, err = r.ListByField(ctx, name, "usuarioId", input.UsuarioID)
		} else {
			items, err = r.List(ctx, name)
		}
		if err != nil {
			return nil, huma.Error500InternalServerError(fmt.Sprintf("list %s", name), err)
		}
		return &recordListOutput{Body: items}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-" + name,
		Method:      http.MethodGet,
		Path:        base + "/{id}",
		Summary:     "Get one of " + name,
	}, func(ctx context.Context, input *idInput) (*recordOutput, error) {
		body, err := r.Get(ctx, name, input.ID)
		if err != nil {
			return nil, mapRepoError(err)
		}
		return &recordOutput{Body: body}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-" + name,
		Method:        http.MethodPost,
		Path:          base,
		Summary:       "Create in " + name,
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *bodyInput) (*recordOutput, error) {
		body, err := r.Create(ctx, name, input.Body)
		if err != nil {
			return nil, huma.Error500InternalServerError(fmt.Sprintf("create in %s", name), err)
		}
		return &recordOutput{Body: body}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "patch-" + name,
		Method:      http.MethodPatch,
		Path:        base + "/{id}",
		Summary:     "Patch one of " + name,
	}, func(ctx context.Context, input *patchInput) (*recordOutput, error) {
		body, err := r.Patch(ctx, name, input.ID, input.Body)
		if err != nil {
			return nil, mapRepoError(err)
		}
		return &recordOutput{Body: body}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-" + name,
		Method:        http.MethodDelete,
		Path:          base + "/{id}",
		Summary:       "Delete one of " + name,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *idInput) (*struct{}, error) {
		if err := r.Delete(ctx, name, input.ID); err != nil {
			return nil, mapRepoError(err)
		}
		return &struct{}{}, nil
	})
}

func mapRepoError(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return huma.Error404NotFound("record not found")
	}
	return huma.Error500InternalServerError("record store failure", err)
}
