// Package seed loads a starter dataset into an empty record store so
// login works out of the box.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"amparo/internal/domain"
	"amparo/internal/repo"
)

// DefaultAdmin is created when the staff collection is empty.
var DefaultAdmin = domain.Funcionario{
	FullName:      "Ana Paula Silva",
	Email:         "admin@amparo.org",
	Password:      "admin123",
	Role:          "Coordenador Geral",
	Department:    "Coordenação",
	AdmissionDate: "2020-03-01",
	Salary:        "R$ 5.800,00",
	WorkSchedule:  "Segunda a Sexta, 8h às 17h",
	Status:        domain.StatusAtivo,
	Permissions:   []string{"admin", "users", "companies", "evaluations"},
}

var sampleUsuarios = []domain.Usuario{
	{
		FullName:      "Maria Silva Santos",
		BirthDate:     "2001-05-14",
		Phone:         "(11) 98888-1111",
		ParentName:    "Joana Silva",
		AdmissionDate: "2024-02-05",
		Status:        domain.StatusAtivo,
	},
	{
		FullName:      "João Pedro Lima",
		BirthDate:     "2003-11-02",
		Phone:         "(11) 97777-2222",
		ParentName:    "Carlos Lima",
		AdmissionDate: "2024-03-18",
		Status:        domain.StatusAtivo,
	},
}

var sampleEmpresas = []domain.Empresa{
	{
		Name:               "Supermercado Bom Preço",
		Sector:             "Varejo",
		Phone:              "(11) 3333-1000",
		HRContact:          "Fernanda Souza",
		AvailablePositions: []string{"Repositor", "Empacotador"},
		Status:             domain.StatusAtivo,
	},
	{
		Name:               "Padaria Pão Dourado",
		Sector:             "Alimentação",
		Phone:              "(11) 3333-2000",
		HRContact:          "Roberto Alves",
		AvailablePositions: []string{"Auxiliar de Cozinha"},
		Status:             domain.StatusAtivo,
	},
}

// Seed inserts the starter records. It is a no-op when the staff
// collection already has data.
func Seed(ctx context.Context, r repo.Repo) error {
	n, err := r.Count(ctx, "funcionarios")
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	now := time.Now().UTC().Format(time.RFC3339)

	admin := DefaultAdmin
	if _, err := r.Create(ctx, "funcionarios", toBody(admin)); err != nil {
		return fmt.Errorf("seed funcionarios: %w", err)
	}
	for _, u := range sampleUsuarios {
		u.CreatedAt = now
		if _, err := r.Create(ctx, "usuarios", toBody(u)); err != nil {
			return fmt.Errorf("seed usuarios: %w", err)
		}
	}
	for _, e := range sampleEmpresas {
		e.LastContact = now[:10]
		if _, err := r.Create(ctx, "empresas", toBody(e)); err != nil {
			return fmt.Errorf("seed empresas: %w", err)
		}
	}
	return nil
}

func toBody(v any) map[string]any {
	raw, _ := json.Marshal(v)
	body := map[string]any{}
	_ = json.Unmarshal(raw, &body)
	return body
}
