package store

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/VidhyaSama/synchronyUseCase/pkg/domain"
)

func TestMemoryStoreUsers(t *testing.T) {
	m := NewMemoryStore()
	u := domain.User{ID: "u1", Email: "a@b.com", PasswordHash: "hash", CreatedAt: time.Now().UTC()}
	if err := m.SaveUser(u); err != nil {
		t.Fatalf("save user: %v", err)
	}
	ok, err := m.HasUserEmail("a@b.com")
	if err != nil || !ok {
		t.Fatalf("HasUserEmail = %v, %v; want true, nil", ok, err)
	}
	got, found, err := m.GetUserByEmail("a@b.com")
	if err != nil || !found {
		t.Fatalf("GetUserByEmail found=%v err=%v", found, err)
	}
	if got.ID != "u1" {
		t.Fatalf("user ID = %q, want u1", got.ID)
	}
	if _, found, _ := m.GetUserByEmail("missing@b.com"); found {
		t.Fatalf("expected unknown email to be absent")
	}
	if _, found, _ := m.GetUserByID("u1"); !found {
		t.Fatalf("expected user by ID")
	}
}

func TestMemoryStoreGallery(t *testing.T) {
	m := NewMemoryStore()
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	img := domain.GalleryImage{ID: "g1", OwnerID: "u1", FileName: "cat.png", Image: payload}
	if err := m.SaveImage(img); err != nil {
		t.Fatalf("save image: %v", err)
	}
	if err := m.SaveImage(domain.GalleryImage{ID: "g2", OwnerID: "u2", FileName: "dog.png", Image: []byte{1}}); err != nil {
		t.Fatalf("save second image: %v", err)
	}

	list, err := m.ListImagesByOwner("u1")
	if err != nil {
		t.Fatalf("list images: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list len = %d, want 1", len(list))
	}
	if list[0].Image != nil {
		t.Fatalf("listing should not carry byte payloads")
	}
	if list[0].FileName != "cat.png" {
		t.Fatalf("file name = %q, want cat.png", list[0].FileName)
	}

	got, found, err := m.GetImage("g1")
	if err != nil || !found {
		t.Fatalf("GetImage found=%v err=%v", found, err)
	}
	if !bytes.Equal(got.Image, payload) {
		t.Fatalf("payload mismatch after round trip")
	}

	if err := m.DeleteImage("g1"); err != nil {
		t.Fatalf("delete image: %v", err)
	}
	if _, found, _ := m.GetImage("g1"); found {
		t.Fatalf("expected image gone after delete")
	}
	if err := m.DeleteImage("g1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
	if err := m.DeleteImage("never-existed"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete of unknown id err = %v, want ErrNotFound", err)
	}
}
