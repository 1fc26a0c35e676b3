package app

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/VidhyaSama/synchronyUseCase/internal/store"
	"github.com/VidhyaSama/synchronyUseCase/pkg/domain"
)

func newTestApp(t *testing.T) (*App, *store.MemoryStore) {
	t.Helper()
	mem := store.NewMemoryStore()
	a, err := New(Config{
		TokenSecret: "test-secret",
		TokenTTL:    time.Minute,
		Users:       mem,
		Gallery:     mem,
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a, mem
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	a, _ := newTestApp(t)
	token, err := a.Register("A@B.com", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	subject, err := a.Tokens().VerifySubject(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if subject != "a@b.com" {
		t.Fatalf("token subject = %q, want a@b.com", subject)
	}
}

func TestRegisterDuplicateEmailFails(t *testing.T) {
	a, _ := newTestApp(t)
	if _, err := a.Register("a@b.com", "secret1"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := a.Register("a@b.com", "secret1"); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("second register err = %v, want ErrAlreadyExists", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	a, _ := newTestApp(t)
	if _, err := a.Register("not-an-email", "secret1"); err == nil {
		t.Fatalf("expected invalid email to fail")
	}
	if _, err := a.Register("a@b.com", "x"); err == nil {
		t.Fatalf("expected short password to fail")
	}
	if _, err := a.Register("a@b.com", "waytoolongpassword"); err == nil {
		t.Fatalf("expected long password to fail")
	}
}

func TestLogin(t *testing.T) {
	a, _ := newTestApp(t)
	if _, err := a.Register("a@b.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := a.Login("a@b.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if subject, err := a.Tokens().VerifySubject(token); err != nil || subject != "a@b.com" {
		t.Fatalf("login token subject = %q, err = %v", subject, err)
	}
	if _, err := a.Login("a@b.com", "wrongpw"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("wrong password err = %v, want ErrNotFound", err)
	}
	if _, err := a.Login("nobody@b.com", "secret1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown email err = %v, want ErrNotFound", err)
	}
}

func TestUserFromToken(t *testing.T) {
	a, _ := newTestApp(t)
	token, err := a.Register("a@b.com", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	user, ok := a.UserFromToken(token)
	if !ok || user.Email != "a@b.com" {
		t.Fatalf("UserFromToken = %+v, %v", user, ok)
	}
	if _, ok := a.UserFromToken("garbage"); ok {
		t.Fatalf("expected garbage token to be rejected")
	}
	// A valid token whose subject no longer resolves must be rejected.
	phantom, err := a.Tokens().Issue("ghost@b.com")
	if err != nil {
		t.Fatalf("issue phantom token: %v", err)
	}
	if _, ok := a.UserFromToken(phantom); ok {
		t.Fatalf("expected unresolvable subject to be rejected")
	}
}

func TestUploadListFetchDelete(t *testing.T) {
	a, _ := newTestApp(t)
	if _, err := a.Register("a@b.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	payload := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a}

	ok, err := a.UploadImage("a@b.com", "cat.png", payload)
	if err != nil || !ok {
		t.Fatalf("upload = %v, %v; want true, nil", ok, err)
	}

	listing, err := a.ListImages("a@b.com")
	if err != nil {
		t.Fatalf("list images: %v", err)
	}
	if len(listing) != 1 {
		t.Fatalf("listing groups = %d, want 1", len(listing))
	}
	group := listing[0]
	if group.Email != "a@b.com" || group.UserID == "" {
		t.Fatalf("unexpected group: %+v", group)
	}
	if len(group.ImageData) != 1 || group.ImageData[0].FileName != "cat.png" {
		t.Fatalf("unexpected image data: %+v", group.ImageData)
	}

	id := group.ImageData[0].GalleryID
	got, err := a.GetImage(id)
	if err != nil {
		t.Fatalf("get image: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("fetched bytes differ from uploaded payload")
	}

	if err := a.DeleteImage(id); err != nil {
		t.Fatalf("delete image: %v", err)
	}
	if _, err := a.GetImage(id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("fetch after delete err = %v, want ErrNotFound", err)
	}
	if err := a.DeleteImage(id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestUploadEdgeCases(t *testing.T) {
	a, _ := newTestApp(t)
	if _, err := a.Register("a@b.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := a.UploadImage("a@b.com", "empty.png", nil); !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("empty upload err = %v, want ErrEmptyImage", err)
	}
	if _, err := a.UploadImage("nobody@b.com", "cat.png", []byte{1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown caller err = %v, want ErrNotFound", err)
	}
}

type failingGallery struct {
	store.GalleryStore
}

func (failingGallery) SaveImage(domain.GalleryImage) error {
	return errors.New("disk on fire")
}

func TestUploadStoreFailureReturnsFalse(t *testing.T) {
	mem := store.NewMemoryStore()
	a, err := New(Config{
		TokenSecret: "test-secret",
		Users:       mem,
		Gallery:     failingGallery{mem},
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if _, err := a.Register("a@b.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	ok, err := a.UploadImage("a@b.com", "cat.png", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("store failure should not surface as error, got: %v", err)
	}
	if ok {
		t.Fatalf("expected upload to report false on store failure")
	}
}

func TestNewRequiresSecretAndStorage(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected missing token secret to fail")
	}
	if _, err := New(Config{TokenSecret: "s"}); err == nil {
		t.Fatalf("expected missing database URL to fail")
	}
}
