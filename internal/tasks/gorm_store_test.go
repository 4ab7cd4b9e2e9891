package tasks

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"

	"github.com/skillsenselab/taskhive/internal/logger"
	"github.com/skillsenselab/taskhive/internal/store"
)

func newTestGormStore(t *testing.T) *GormStore {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := store.OpenWithDialector(context.Background(), sqlite.Open(dsn), store.Config{
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	}, logger.NewDefault("test"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.AutoMigrate(&Task{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewGormStore(db.Gorm)
}

func TestGormStore_CRUD(t *testing.T) {
	s := newTestGormStore(t)
	ctx := context.Background()

	desc := "details"
	task := &Task{Title: "first", Description: &desc, Status: StatusNew, Priority: PriorityNormal, AuthorID: 1}
	if err := s.Create(ctx, task); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if task.ID == 0 {
		t.Fatal("Create() did not assign an id")
	}

	got, err := s.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("FindByID() error: %v", err)
	}
	if got.Title != "first" || got.Description == nil || *got.Description != desc {
		t.Errorf("FindByID() = %+v", got)
	}

	got.Title = "renamed"
	got.Status = StatusCompleted
	if err := s.Update(ctx, got); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	again, _ := s.FindByID(ctx, task.ID)
	if again.Title != "renamed" || again.Status != StatusCompleted {
		t.Errorf("after update = %+v", again)
	}

	if err := s.Delete(ctx, task.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := s.FindByID(ctx, task.ID); err != ErrNotFound {
		t.Errorf("FindByID() after delete = %v, want ErrNotFound", err)
	}
}

func TestGormStore_DeleteMissing(t *testing.T) {
	s := newTestGormStore(t)
	if err := s.Delete(context.Background(), 999); err != ErrNotFound {
		t.Errorf("Delete() missing = %v, want ErrNotFound", err)
	}
}

func TestGormStore_ListPage(t *testing.T) {
	s := newTestGormStore(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		if err := s.Create(ctx, &Task{Title: fmt.Sprintf("t%d", i), Status: StatusNew, Priority: PriorityNormal, AuthorID: 1}); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}
	// Another owner's task must not leak into the page or the count.
	if err := s.Create(ctx, &Task{Title: "foreign", Status: StatusNew, Priority: PriorityNormal, AuthorID: 2}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	items, total, err := s.ListPage(ctx, 1, 1, 5)
	if err != nil {
		t.Fatalf("ListPage() error: %v", err)
	}
	if total != 7 {
		t.Errorf("total = %d, want 7", total)
	}
	if len(items) != 5 {
		t.Fatalf("page 1 len = %d, want 5", len(items))
	}
	if items[0].Title != "t6" {
		t.Errorf("page 1 starts with %q, want newest task t6", items[0].Title)
	}

	items, _, err = s.ListPage(ctx, 1, 2, 5)
	if err != nil {
		t.Fatalf("ListPage() page 2 error: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("page 2 len = %d, want 2", len(items))
	}

	items, _, err = s.ListPage(ctx, 1, 3, 5)
	if err != nil {
		t.Fatalf("ListPage() page 3 error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("page 3 len = %d, want 0", len(items))
	}
}
