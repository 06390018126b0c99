package core

import (
	"errors"
	"strings"
	"testing"
)

func TestCreateAdminAndAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)

	doc, err := svc.CreateAdmin("ops", "s3cret-pass", "ops@example.com")
	if err != nil {
		t.Fatalf("CreateAdmin() error = %v", err)
	}
	if len(doc.Admins) != 1 {
		t.Fatalf("admin count = %d, want 1", len(doc.Admins))
	}
	admin := doc.Admins[0]
	if admin.ID != 1 {
		t.Errorf("id = %d, want 1", admin.ID)
	}
	if admin.Password == "s3cret-pass" || !strings.HasPrefix(admin.Password, "$2") {
		t.Error("password not stored as bcrypt hash")
	}

	got, err := svc.Authenticate("ops", "s3cret-pass")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if got.Username != "ops" {
		t.Errorf("username = %q", got.Username)
	}

	if _, err := svc.Authenticate("ops", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("wrong password: err = %v, want ErrBadCredentials", err)
	}
	if _, err := svc.Authenticate("nobody", "s3cret-pass"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("unknown user: err = %v, want ErrBadCredentials", err)
	}
}

func TestCreateAdmin_DuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.CreateAdmin("ops", "pass-one", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateAdmin("ops", "pass-two", ""); !errors.Is(err, ErrDuplicateAdmin) {
		t.Fatalf("err = %v, want ErrDuplicateAdmin", err)
	}
}

func TestUpdateAdminPassword(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.CreateAdmin("ops", "old-pass", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateAdminPassword(1, "new-pass"); err != nil {
		t.Fatalf("UpdateAdminPassword() error = %v", err)
	}

	if _, err := svc.Authenticate("ops", "old-pass"); err == nil {
		t.Error("old password still valid after update")
	}
	if _, err := svc.Authenticate("ops", "new-pass"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}

	if _, err := svc.UpdateAdminPassword(42, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: err = %v, want ErrNotFound", err)
	}
}

func TestDeleteAdmin(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.CreateAdmin("ops", "pass", ""); err != nil {
		t.Fatal(err)
	}
	doc, err := svc.DeleteAdmin(1)
	if err != nil {
		t.Fatalf("DeleteAdmin() error = %v", err)
	}
	if len(doc.Admins) != 0 {
		t.Errorf("admin count = %d, want 0", len(doc.Admins))
	}
}

func TestMapError(t *testing.T) {
	if msg := MapError(ErrDuplicateCategory); msg.Code != "CAT001" {
		t.Errorf("code = %q, want CAT001", msg.Code)
	}
	if msg := MapError(errors.New("something odd")); msg.Code != "ERR000" {
		t.Errorf("fallback code = %q, want ERR000", msg.Code)
	}
	if msg := MapError(nil); msg.Message != "" {
		t.Errorf("nil error produced message %q", msg.Message)
	}
}
