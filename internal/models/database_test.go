package models

import (
	"testing"

	"github.com/postboard/api/internal/config"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle", DSN: "x"}, false)
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestOpen_MigrateAndCreate(t *testing.T) {
	db, err := Open(&config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"}, false)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer Close(db)

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}

	user := &User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	if len(user.ID) != 36 {
		t.Errorf("ID = %q, expected a uuid", user.ID)
	}

	dup := &User{Username: "alice", Email: "other@example.com", PasswordHash: "x"}
	if err := db.Create(dup).Error; err == nil {
		t.Error("duplicate username should violate the unique index")
	}

	post := &Post{Message: "hello", UserID: user.ID}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}

	var loaded Post
	if err := db.Preload("Author").First(&loaded, "id = ?", post.ID).Error; err != nil {
		t.Fatalf("load post: %v", err)
	}
	if loaded.Author == nil || loaded.Author.Username != "alice" {
		t.Errorf("Author = %+v, expected alice", loaded.Author)
	}
	if loaded.OwnerID() != user.ID {
		t.Errorf("OwnerID() = %q, expected %q", loaded.OwnerID(), user.ID)
	}
}

func TestBase_KeepsPresetID(t *testing.T) {
	b := &Base{ID: "preset"}
	if err := b.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate() error = %v", err)
	}
	if b.ID != "preset" {
		t.Errorf("ID = %q, expected preset", b.ID)
	}
}
