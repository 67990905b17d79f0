package duckdb

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/tinytelemetry/smileguide/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore("")
	if err != nil {
		t.Fatalf("NewStore(\"\") failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGetValue_Missing(t *testing.T) {
	store := newTestStore(t)

	v, found, err := store.GetValue(context.Background(), "aiAssistantAvatar")
	if err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if found || v != "" {
		t.Errorf("GetValue = (%q, %v), want (\"\", false)", v, found)
	}
}

func TestSetValue_Upserts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SetValue(ctx, "language", "af"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if err := store.SetValue(ctx, "language", "zu"); err != nil {
		t.Fatalf("SetValue (overwrite): %v", err)
	}

	v, found, err := store.GetValue(ctx, "language")
	if err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if !found || v != "zu" {
		t.Errorf("GetValue = (%q, %v), want (zu, true)", v, found)
	}
}

func TestDeleteValue(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SetValue(ctx, "currentUserId", "u1"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if err := store.DeleteValue(ctx, "currentUserId"); err != nil {
		t.Fatalf("DeleteValue: %v", err)
	}
	if err := store.DeleteValue(ctx, "currentUserId"); err != nil {
		t.Fatalf("DeleteValue (missing): %v", err)
	}
	if _, found, _ := store.GetValue(ctx, "currentUserId"); found {
		t.Error("value still present after delete")
	}
}

func TestValuesPersistAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "smileguide.duckdb")
	ctx := context.Background()

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.SetValue(ctx, "aiAssistantAvatar", "data:image/png;base64,AAAA"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	store.Close()

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	v, found, err := reopened.GetValue(ctx, "aiAssistantAvatar")
	if err != nil || !found || v != "data:image/png;base64,AAAA" {
		t.Errorf("GetValue after reopen = (%q, %v, %v)", v, found, err)
	}
}

func TestConcurrentSetGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.SetValue(ctx, "language", "en"); err != nil {
				t.Errorf("SetValue: %v", err)
			}
			if _, _, err := store.GetValue(ctx, "language"); err != nil {
				t.Errorf("GetValue: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	u := model.User{ID: "u1", Name: "Thandi", Email: "Thandi@Example.com", CreatedAt: time.Now()}
	if err := store.CreateUser(ctx, u, "hash"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	dup := model.User{ID: "u2", Name: "Other", Email: "thandi@example.com", CreatedAt: time.Now()}
	if err := store.CreateUser(ctx, dup, "hash"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate CreateUser err = %v, want ErrDuplicate", err)
	}
}

func TestUserLookups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	u := model.User{ID: "u1", Name: "Pieter", Email: "pieter@example.com", CreatedAt: time.Now()}
	if err := store.CreateUser(ctx, u, "secret-hash"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, hash, err := store.UserByEmail(ctx, "  PIETER@example.com ")
	if err != nil {
		t.Fatalf("UserByEmail: %v", err)
	}
	if got.ID != "u1" || got.Name != "Pieter" || hash != "secret-hash" {
		t.Errorf("UserByEmail = %+v, %q", got, hash)
	}

	byID, err := store.UserByID(ctx, "u1")
	if err != nil {
		t.Fatalf("UserByID: %v", err)
	}
	if byID.Email != "pieter@example.com" {
		t.Errorf("UserByID email = %q", byID.Email)
	}

	if _, err := store.UserByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UserByID(missing) err = %v, want ErrNotFound", err)
	}
	if _, _, err := store.UserByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UserByEmail(missing) err = %v, want ErrNotFound", err)
	}
}

func TestSymptomLogs_OrderAndLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		err := store.InsertSymptomLog(ctx, model.SymptomLog{
			ID:       "s" + string(rune('a'+i)),
			UserID:   "u1",
			LoggedAt: base.Add(time.Duration(i) * 24 * time.Hour),
			Symptoms: []string{"toothache"},
			Severity: i + 1,
		})
		if err != nil {
			t.Fatalf("InsertSymptomLog %d: %v", i, err)
		}
	}
	if err := store.InsertSymptomLog(ctx, model.SymptomLog{
		ID: "other", UserID: "u2", LoggedAt: base, Symptoms: []string{"bleeding gums"}, Severity: 2,
	}); err != nil {
		t.Fatalf("InsertSymptomLog other user: %v", err)
	}

	logs, err := store.SymptomLogs(ctx, "u1", 3)
	if err != nil {
		t.Fatalf("SymptomLogs: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("len = %d, want 3", len(logs))
	}
	if logs[0].Severity != 3 || logs[2].Severity != 5 {
		t.Errorf("severities = %d..%d, want 3..5 oldest first", logs[0].Severity, logs[2].Severity)
	}
	if len(logs[0].Symptoms) != 1 || logs[0].Symptoms[0] != "toothache" {
		t.Errorf("symptoms = %v", logs[0].Symptoms)
	}
}

func TestSchemaStatus_UpToDateAfterOpen(t *testing.T) {
	store := newTestStore(t)

	st, err := store.SchemaStatus(context.Background())
	if err != nil {
		t.Fatalf("SchemaStatus: %v", err)
	}
	if !st.UpToDate() || st.Current != st.Latest || st.Current == 0 {
		t.Errorf("SchemaStatus = %+v, want current == latest > 0", st)
	}
}
