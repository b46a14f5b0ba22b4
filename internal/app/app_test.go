package app

import (
	"context"
	"net"
	"net/http"
	"testing"

	"amparo/internal/config"
	"amparo/internal/db"
	"amparo/internal/domain"
	"amparo/internal/migrate"
	"amparo/internal/repo"
	"amparo/internal/seed"
	"amparo/internal/server"
	"amparo/internal/session"
)

// newTestApp wires an App against a seeded in-process record store.
func newTestApp(t *testing.T) (*App, repo.Repo) {
	t.Helper()
	conn, err := db.Open(db.Config{Workspace: t.TempDir()})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := migrate.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	r := repo.Repo{DB: conn}
	if err := seed.Seed(context.Background(), r); err != nil {
		t.Fatalf("seed: %v", err)
	}

	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := &http.Server{Handler: server.New(r)}
	go srv.Serve(ln)
	t.Cleanup(func() {
		srv.Shutdown(context.Background())
		ln.Close()
		conn.Close()
	})

	cfg := config.Default()
	cfg.Store.BaseURL = "http://" + ln.Addr().String()
	return New(cfg, session.MemChannel{}), r
}

func TestLoginAgainstSeededStore(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	if a.Session.Login(ctx, seed.DefaultAdmin.Email, "wrong") {
		t.Fatal("wrong password must fail")
	}
	if !a.Session.Login(ctx, seed.DefaultAdmin.Email, seed.DefaultAdmin.Password) {
		t.Fatalf("seeded admin login failed: %s", a.Session.Snapshot().Err)
	}
	snap := a.Session.Snapshot()
	if snap.Identity == nil || snap.Identity.Email != seed.DefaultAdmin.Email {
		t.Fatalf("unexpected identity: %+v", snap.Identity)
	}
}

func TestDashboardAggregates(t *testing.T) {
	a, r := newTestApp(t)
	ctx := context.Background()

	// One placement in trial, one already hired.
	for _, body := range []map[string]any{
		{"usuarioId": "1", "empresa": "Padaria", "cargo": "Auxiliar", "status": domain.StatusEmExperiencia},
		{"usuarioId": "2", "empresa": "Mercado", "cargo": "Repositor", "status": domain.StatusAtivo},
	} {
		if _, err := r.Create(ctx, "encaminhamentos", body); err != nil {
			t.Fatalf("create placement: %v", err)
		}
	}

	stats, err := a.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if stats.TotalUsuarios != 2 {
		t.Errorf("TotalUsuarios = %d, want 2", stats.TotalUsuarios)
	}
	if stats.EmpresasParceiras != 2 {
		t.Errorf("EmpresasParceiras = %d, want 2", stats.EmpresasParceiras)
	}
	if stats.Encaminhados != 2 {
		t.Errorf("Encaminhados = %d, want 2", stats.Encaminhados)
	}
	if stats.EmExperiencia != 1 {
		t.Errorf("EmExperiencia = %d, want 1", stats.EmExperiencia)
	}
	if stats.FuncionariosAtivos != 1 {
		t.Errorf("FuncionariosAtivos = %d, want 1", stats.FuncionariosAtivos)
	}
}

func TestDashboardSurfacesFetchFailure(t *testing.T) {
	cfg := config.Default()
	cfg.Store.BaseURL = "http://127.0.0.1:1"
	a := New(cfg, session.MemChannel{})

	if _, err := a.Dashboard(context.Background()); err == nil {
		t.Fatal("unreachable store must fail the dashboard")
	}
}

func TestChildContainerEndToEnd(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	a.Usuarios.FetchAll(ctx)
	usuarios := a.Usuarios.Snapshot().Items
	if len(usuarios) == 0 {
		t.Fatal("expected seeded usuarios")
	}

	created, ok := a.Avaliacoes.Create(ctx, domain.Avaliacao{
		UsuarioID:     usuarios[0].ID,
		TipoAvaliacao: domain.AvaliacaoFirst,
		DataAvaliacao: "2024-04-01",
		Respostas:     map[int]string{0: "sim"},
	})
	if !ok {
		t.Fatalf("create avaliacao: %s", a.Avaliacoes.Snapshot().Err)
	}
	if created.UsuarioNome != usuarios[0].FullName {
		t.Fatalf("name not denormalized: %q", created.UsuarioNome)
	}

	a.Avaliacoes.FetchByUsuario(ctx, usuarios[0].ID)
	snap := a.Avaliacoes.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].ID != created.ID {
		t.Fatalf("filtered fetch mismatch: %+v", snap.Items)
	}
}
