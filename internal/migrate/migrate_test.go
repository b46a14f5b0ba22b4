package migrate

import (
	"testing"

	"amparo/internal/db"
)

func TestMigrateRecordsVersion(t *testing.T) {
	conn, err := db.Open(db.Config{Workspace: t.TempDir()})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer conn.Close()

	if err := Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	v, err := Version(conn)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if v < 1 {
		t.Fatalf("expected version >= 1, got %d", v)
	}

	if _, err := conn.Exec(`INSERT INTO records(collection,id,body_json,created_at) VALUES ('usuarios','1','{}','2024-01-01T00:00:00Z')`); err != nil {
		t.Fatalf("records table not usable: %v", err)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	conn, err := db.Open(db.Config{Workspace: t.TempDir()})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer conn.Close()

	if err := Migrate(conn); err != nil {
		t.Fatalf("first migrate: %v", err)
	}
	first, err := Version(conn)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if err := Migrate(conn); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	second, err := Version(conn)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if first != second {
		t.Fatalf("version moved on a no-op migrate: %d -> %d", first, second)
	}
}
