package repo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tbourn/bloodx-backend/internal/domain"
)

func TestIsPostgresDSN(t *testing.T) {
	cases := []struct {
		dsn  string
		want bool
	}{
		{"postgres://u:p@db:5432/bloodx", true},
		{"postgresql://db/bloodx?sslmode=disable", true},
		{"host=db user=u password=p dbname=bloodx", true},
		{"bloodx.db", false},
		{"file:bloodx?mode=memory&cache=shared", false},
		{"/var/lib/bloodx/host=weird.db", false},
	}
	for _, tc := range cases {
		if got := IsPostgresDSN(tc.dsn); got != tc.want {
			t.Fatalf("IsPostgresDSN(%q) = %v, want %v", tc.dsn, got, tc.want)
		}
	}
}

func TestOpenSQLite_ErrorOnBadPath(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "does-not-exist", "bloodx.db")

	db, err := OpenSQLite(bad)
	if err == nil || db != nil {
		t.Fatalf("expected error opening %q, got db=%v err=%v", bad, db, err)
	}
	lower := strings.ToLower(err.Error())
	if !(os.IsNotExist(err) ||
		strings.Contains(lower, "unable to open database file") ||
		strings.Contains(lower, "no such file or directory")) {
		t.Fatalf("unexpected error opening %q: %v", bad, err)
	}
}

func TestOpen_SQLite_PragmasMigrateAndClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bloodx.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	var journalMode string
	if err := db.Raw("PRAGMA journal_mode;").Row().Scan(&journalMode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if strings.ToLower(journalMode) != "wal" {
		t.Fatalf("expected journal_mode=wal, got %q", journalMode)
	}
	var busyMS int
	if err := db.Raw("PRAGMA busy_timeout;").Row().Scan(&busyMS); err != nil || busyMS != 5000 {
		t.Fatalf("busy_timeout = %d (err %v), want 5000", busyMS, err)
	}

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	m := db.Migrator()
	for _, tbl := range allModels() {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T to exist", tbl)
		}
	}

	u := &domain.User{ID: "u1", Email: "a@x.io", Role: domain.RoleDonor, Status: domain.StatusActive, CreatedAt: time.Now().UTC()}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("insert user: %v", err)
	}

	if err := Close(db); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := Close(nil); err == nil {
		t.Fatalf("Close(nil) should fail")
	}
}
