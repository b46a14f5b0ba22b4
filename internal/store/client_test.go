package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"amparo/internal/domain"
)

// recordedRequest captures what the client sent for assertions.
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

func newStubStore(t *testing.T, status int, response any) (*Client, *recordedRequest, func()) {
	t.Helper()
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.Method = r.Method
		rec.Path = r.URL.Path
		rec.Query = r.URL.RawQuery
		rec.Body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if response != nil {
			_ = json.NewEncoder(w).Encode(response)
		}
	}))
	return New(srv.URL), rec, srv.Close
}

func TestListAll(t *testing.T) {
	c, rec, cleanup := newStubStore(t, http.StatusOK, []domain.Usuario{
		{ID: "1", FullName: "Maria"},
		{ID: "2", FullName: "João"},
	})
	defer cleanup()

	got, err := Usuarios(c).ListAll(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Method != http.MethodGet || rec.Path != "/usuarios" {
		t.Fatalf("unexpected request %s %s", rec.Method, rec.Path)
	}
	if len(got) != 2 || got[1].FullName != "João" {
		t.Fatalf("unexpected records: %+v", got)
	}
}

func TestGetByID(t *testing.T) {
	c, rec, cleanup := newStubStore(t, http.StatusOK, domain.Usuario{ID: "7", FullName: "Ana"})
	defer cleanup()

	got, err := Usuarios(c).GetByID(context.Background(), "7")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Path != "/usuarios/7" {
		t.Fatalf("unexpected path %s", rec.Path)
	}
	if got.FullName != "Ana" {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestListByUsuarioSendsFilter(t *testing.T) {
	c, rec, cleanup := newStubStore(t, http.StatusOK, []domain.Avaliacao{})
	defer cleanup()

	if _, err := Avaliacoes(c).ListByUsuario(context.Background(), "42"); err != nil {
		t.Fatalf("list by usuario: %v", err)
	}
	if rec.Path != "/avaliacoes" || rec.Query != "usuarioId=42" {
		t.Fatalf("unexpected request %s?%s", rec.Path, rec.Query)
	}
}

func TestCreateStampsUsuarioDefaults(t *testing.T) {
	c, rec, cleanup := newStubStore(t, http.StatusCreated, domain.Usuario{ID: "1"})
	defer cleanup()

	col := Usuarios(c)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	col.Now = func() time.Time { return fixed }

	if _, err := col.Create(context.Background(), domain.Usuario{FullName: "Ana"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	var sent map[string]any
	if err := json.Unmarshal(rec.Body, &sent); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	if sent["status"] != domain.StatusAtivo {
		t.Fatalf("expected default status, got %v", sent["status"])
	}
	if sent["createdAt"] != "2024-03-01T12:00:00Z" {
		t.Fatalf("expected stamped createdAt, got %v", sent["createdAt"])
	}
	if _, hasID := sent["id"]; hasID {
		t.Fatal("create must not send an id; the store assigns it")
	}
}

func TestCreateStampsEmpresaDefaults(t *testing.T) {
	c, rec, cleanup := newStubStore(t, http.StatusCreated, domain.Empresa{ID: "1"})
	defer cleanup()

	col := Empresas(c)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	col.Now = func() time.Time { return fixed }

	if _, err := col.Create(context.Background(), domain.Empresa{Name: "Padaria", Sector: "Alimentício"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	var sent map[string]any
	if err := json.Unmarshal(rec.Body, &sent); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	if sent["activeUsers"] != float64(0) || sent["totalHired"] != float64(0) {
		t.Fatalf("counters must start at zero: %v %v", sent["activeUsers"], sent["totalHired"])
	}
	if sent["lastContact"] != "2024-03-01" {
		t.Fatalf("expected date-only lastContact, got %v", sent["lastContact"])
	}
	positions, ok := sent["availablePositions"].([]any)
	if !ok || positions == nil {
		t.Fatalf("availablePositions must serialize as an empty array, got %v", sent["availablePositions"])
	}
}

func TestCreateStampsFuncionarioDefaults(t *testing.T) {
	c, rec, cleanup := newStubStore(t, http.StatusCreated, domain.Funcionario{ID: "1"})
	defer cleanup()

	if _, err := Funcionarios(c).Create(context.Background(), domain.Funcionario{
		FullName: "Sandra",
		Email:    "sandra@x.com",
		Password: "s3nh4",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	var sent map[string]any
	if err := json.Unmarshal(rec.Body, &sent); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	perms, _ := sent["permissions"].([]any)
	if len(perms) != 2 || perms[0] != "users" || perms[1] != "basic" {
		t.Fatalf("expected default permissions, got %v", sent["permissions"])
	}
	if sent["status"] != domain.StatusAtivo {
		t.Fatalf("expected default status, got %v", sent["status"])
	}
}

func TestUpdateSendsOnlyPatchedFields(t *testing.T) {
	c, rec, cleanup := newStubStore(t, http.StatusOK, domain.Usuario{ID: "1", FullName: "Maria Silva"})
	defer cleanup()

	got, err := Usuarios(c).Update(context.Background(), "1", map[string]any{"fullName": "Maria Silva"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Method != http.MethodPatch || rec.Path != "/usuarios/1" {
		t.Fatalf("unexpected request %s %s", rec.Method, rec.Path)
	}

	var sent map[string]any
	if err := json.Unmarshal(rec.Body, &sent); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	if len(sent) != 1 || sent["fullName"] != "Maria Silva" {
		t.Fatalf("patch body must carry only supplied fields, got %v", sent)
	}
	if got.FullName != "Maria Silva" {
		t.Fatalf("unexpected merged record: %+v", got)
	}
}

func TestDelete(t *testing.T) {
	c, rec, cleanup := newStubStore(t, http.StatusNoContent, nil)
	defer cleanup()

	if err := Usuarios(c).Delete(context.Background(), "1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rec.Method != http.MethodDelete || rec.Path != "/usuarios/1" {
		t.Fatalf("unexpected request %s %s", rec.Method, rec.Path)
	}
}

func TestNon2xxBecomesTransportError(t *testing.T) {
	c, _, cleanup := newStubStore(t, http.StatusNotFound, map[string]string{"error": "not found"})
	defer cleanup()

	_, err := Usuarios(c).GetByID(context.Background(), "999")
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if terr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", terr.StatusCode)
	}
}

// Containers fetch concurrently over the one shared client; the first
// dashboard render in a fresh process exercises exactly this.
func TestConcurrentCollectionCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	errs := make(chan error, 4)
	var wg sync.WaitGroup
	wg.Add(4)
	go func() { defer wg.Done(); _, err := Usuarios(c).ListAll(context.Background()); errs <- err }()
	go func() { defer wg.Done(); _, err := Empresas(c).ListAll(context.Background()); errs <- err }()
	go func() { defer wg.Done(); _, err := Funcionarios(c).ListAll(context.Background()); errs <- err }()
	go func() { defer wg.Done(); _, err := Encaminhamentos(c).ListByUsuario(context.Background(), "1"); errs <- err }()
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent call: %v", err)
		}
	}
}

func TestNetworkFailureBecomesTransportError(t *testing.T) {
	c := New("http://127.0.0.1:1")
	c.Timeout = 200 * time.Millisecond

	_, err := Usuarios(c).ListAll(context.Background())
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if terr.Err == nil {
		t.Fatal("network failure should carry the wrapped error")
	}
}
