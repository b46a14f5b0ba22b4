package store

import (
	"time"

	"amparo/internal/domain"
)

// Collection base paths on the record store.
const (
	PathUsuarios        = "usuarios"
	PathEmpresas        = "empresas"
	PathFuncionarios    = "funcionarios"
	PathAvaliacoes      = "avaliacoes"
	PathEntrevistasPais = "entrevistas-pais"
	PathEncaminhamentos = "encaminhamentos"
)

const dateOnly = "2006-01-02"

// Usuarios returns the participant collection client.
func Usuarios(c *Client) *Collection[domain.Usuario] {
	return NewCollection(c, PathUsuarios, "", func(u *domain.Usuario, now time.Time) {
		u.Status = domain.StatusAtivo
		u.CreatedAt = now.Format(time.RFC3339)
	})
}

// Empresas returns the partner company collection client.
func Empresas(c *Client) *Collection[domain.Empresa] {
	return NewCollection(c, PathEmpresas, "", func(e *domain.Empresa, now time.Time) {
		e.ActiveUsers = 0
		e.TotalHired = 0
		e.LastContact = now.Format(dateOnly)
		e.Status = domain.StatusAtivo
		if e.AvailablePositions == nil {
			e.AvailablePositions = []string{}
		}
	})
}

// Funcionarios returns the staff collection client.
func Funcionarios(c *Client) *Collection[domain.Funcionario] {
	return NewCollection(c, PathFuncionarios, "", func(f *domain.Funcionario, _ time.Time) {
		f.Status = domain.StatusAtivo
		f.Permissions = []string{"users", "basic"}
		f.LastLogin = ""
		f.EvaluationsCount = 0
		f.VisitsCount = 0
	})
}

// Avaliacoes returns the trial-period evaluation collection client.
func Avaliacoes(c *Client) *Collection[domain.Avaliacao] {
	return NewCollection(c, PathAvaliacoes, "usuarioId", func(a *domain.Avaliacao, now time.Time) {
		a.CreatedAt = now.Format(time.RFC3339)
	})
}

// EntrevistasPais returns the parent interview collection client.
func EntrevistasPais(c *Client) *Collection[domain.ParentInterview] {
	return NewCollection(c, PathEntrevistasPais, "usuarioId", func(p *domain.ParentInterview, now time.Time) {
		p.CreatedAt = now.Format(time.RFC3339)
	})
}

// Encaminhamentos returns the work placement collection client.
func Encaminhamentos(c *Client) *Collection[domain.WorkPlacement] {
	return NewCollection(c, PathEncaminhamentos, "usuarioId", func(w *domain.WorkPlacement, now time.Time) {
		w.CreatedAt = now.Format(time.RFC3339)
	})
}
