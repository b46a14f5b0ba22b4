// Package app wires the containers together. Everything is constructed
// once at process start and passed by reference; there is no ambient
// global state.
package app

import (
	"context"
	"fmt"
	"sync"

	"amparo/internal/config"
	"amparo/internal/domain"
	"amparo/internal/session"
	"amparo/internal/state"
	"amparo/internal/store"
)

// App holds one container per collection plus the session.
type App struct {
	Config *config.Config
	Client *store.Client

	Session         *state.Session
	Usuarios        *state.Store[domain.Usuario]
	Empresas        *state.Store[domain.Empresa]
	Funcionarios    *state.Store[domain.Funcionario]
	Avaliacoes      *state.ChildStore[domain.Avaliacao]
	Entrevistas     *state.ChildStore[domain.ParentInterview]
	Encaminhamentos *state.ChildStore[domain.WorkPlacement]
}

// New builds the container graph over one record store client.
func New(cfg *config.Config, channel session.Channel) *App {
	client := store.New(cfg.Store.BaseURL)
	client.Timeout = cfg.Timeout()

	usuarios := state.NewStore[domain.Usuario](store.Usuarios(client))
	a := &App{
		Config:          cfg,
		Client:          client,
		Session:         state.NewSession(store.Funcionarios(client), channel),
		Usuarios:        usuarios,
		Empresas:        state.NewStore[domain.Empresa](store.Empresas(client)),
		Funcionarios:    state.NewStore[domain.Funcionario](store.Funcionarios(client)),
		Avaliacoes:      state.Avaliacoes(store.Avaliacoes(client), usuarios),
		Entrevistas:     state.EntrevistasPais(store.EntrevistasPais(client), usuarios),
		Encaminhamentos: state.Encaminhamentos(store.Encaminhamentos(client), usuarios),
	}
	return a
}

// DashboardStats are the aggregate figures shown on the dashboard.
type DashboardStats struct {
	TotalUsuarios      int `json:"totalUsuarios"`
	EmpresasParceiras  int `json:"empresasParceiras"`
	EmExperiencia      int `json:"emExperiencia"`
	Encaminhados       int `json:"encaminhados"`
	FuncionariosAtivos int `json:"funcionariosAtivos"`
}

// Dashboard fetches the collections behind the dashboard concurrently
// and aggregates. Containers are independent; each keeps its own
// in-flight request.
func (a *App) Dashboard(ctx context.Context) (DashboardStats, error) {
	var wg sync.WaitGroup
	wg.Add(4)
	go func() { defer wg.Done(); a.Usuarios.FetchAll(ctx) }()
	go func() { defer wg.Done(); a.Empresas.FetchAll(ctx) }()
	go func() { defer wg.Done(); a.Funcionarios.FetchAll(ctx) }()
	go func() { defer wg.Done(); a.Encaminhamentos.FetchAll(ctx) }()
	wg.Wait()

	usuarios := a.Usuarios.Snapshot()
	empresas := a.Empresas.Snapshot()
	funcionarios := a.Funcionarios.Snapshot()
	placements := a.Encaminhamentos.Snapshot()
	for _, errMsg := range []string{usuarios.Err, empresas.Err, funcionarios.Err, placements.Err} {
		if errMsg != "" {
			return DashboardStats{}, fmt.Errorf("dashboard fetch: %s", errMsg)
		}
	}

	stats := DashboardStats{
		TotalUsuarios:     len(usuarios.Items),
		EmpresasParceiras: len(empresas.Items),
		Encaminhados:      len(placements.Items),
	}
	for _, w := range placements.Items {
		if w.Status == domain.StatusEmExperiencia {
			stats.EmExperiencia++
		}
	}
	for _, f := range funcionarios.Items {
		if f.Status == domain.StatusAtivo {
			stats.FuncionariosAtivos++
		}
	}
	return stats, nil
}
