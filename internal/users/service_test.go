package users

import (
	"context"
	"errors"
	"testing"

	"github.com/listplus/listplus-backend/pkg/db/models"
	pkgerrors "github.com/listplus/listplus-backend/pkg/errors"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users   map[string]*models.User
	findErr error

	created *models.User
	updated *models.User
	deleted string
}

func newStubUserRepo(users ...*models.User) *stubUserRepo {
	byID := make(map[string]*models.User)
	for _, u := range users {
		byID[u.ID] = u
	}
	return &stubUserRepo{users: byID}
}

func (s *stubUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	var out []models.User
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (s *stubUserRepo) Create(_ context.Context, user *models.User) error {
	s.created = user
	s.users[user.ID] = user
	return nil
}

func (s *stubUserRepo) Update(_ context.Context, user *models.User) error {
	s.updated = user
	s.users[user.ID] = user
	return nil
}

func (s *stubUserRepo) Delete(_ context.Context, id string) error {
	s.deleted = id
	delete(s.users, id)
	return nil
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestStoreUserCreates(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := NewService(repo)

	dto, created, err := svc.StoreUser(context.Background(), StoreUserInput{
		UID: "sub-1", Email: "a@example.com", Name: "Alice",
	})
	if err != nil {
		t.Fatalf("store user: %v", err)
	}
	if !created {
		t.Fatal("expected created=true for a fresh uid")
	}
	if repo.created == nil || repo.created.ID != "sub-1" {
		t.Fatalf("expected create call for sub-1, got %+v", repo.created)
	}
	if dto.Email != "a@example.com" {
		t.Fatalf("dto email: %q", dto.Email)
	}
}

func TestStoreUserUpdatesExisting(t *testing.T) {
	repo := newStubUserRepo(&models.User{ID: "sub-1", Email: "old@example.com", Name: "Old"})
	svc, _ := NewService(repo)

	dto, created, err := svc.StoreUser(context.Background(), StoreUserInput{
		UID: "sub-1", Email: "new@example.com", Name: "New",
	})
	if err != nil {
		t.Fatalf("store user: %v", err)
	}
	if created {
		t.Fatal("expected created=false for an existing uid")
	}
	if repo.updated == nil || repo.updated.Email != "new@example.com" {
		t.Fatalf("expected update with new email, got %+v", repo.updated)
	}
	if dto.Name != "New" {
		t.Fatalf("dto name: %q", dto.Name)
	}
}

func TestStoreUserValidatesInput(t *testing.T) {
	svc, _ := NewService(newStubUserRepo())
	_, _, err := svc.StoreUser(context.Background(), StoreUserInput{UID: "sub-1"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	svc, _ := NewService(newStubUserRepo())
	_, err := svc.GetProfile(context.Background(), "missing")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateProfileMergesFields(t *testing.T) {
	phone := "+34600000000"
	repo := newStubUserRepo(&models.User{ID: "sub-1", Email: "a@example.com", Name: "Alice"})
	svc, _ := NewService(repo)

	name := "Alicia"
	dto, err := svc.UpdateProfile(context.Background(), "sub-1", UpdateProfileInput{Name: &name, Phone: &phone})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if dto.Name != "Alicia" || dto.Phone == nil || *dto.Phone != phone {
		t.Fatalf("merge result: %+v", dto)
	}
	if dto.Email != "a@example.com" {
		t.Fatal("email should be untouched")
	}
}

func TestUpdateProfileRejectsBlankName(t *testing.T) {
	repo := newStubUserRepo(&models.User{ID: "sub-1", Email: "a@example.com", Name: "Alice"})
	svc, _ := NewService(repo)

	blank := "   "
	_, err := svc.UpdateProfile(context.Background(), "sub-1", UpdateProfileInput{Name: &blank})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteProfile(t *testing.T) {
	repo := newStubUserRepo(&models.User{ID: "sub-1", Email: "a@example.com", Name: "Alice"})
	svc, _ := NewService(repo)

	if err := svc.DeleteProfile(context.Background(), "sub-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if repo.deleted != "sub-1" {
		t.Fatalf("expected delete of sub-1, got %q", repo.deleted)
	}
}

func TestGetByIDsSkipsBlanksAndUnknown(t *testing.T) {
	repo := newStubUserRepo(
		&models.User{ID: "sub-1", Email: "a@example.com", Name: "Alice"},
		&models.User{ID: "sub-2", Email: "b@example.com", Name: "Bob"},
	)
	svc, _ := NewService(repo)

	dtos, err := svc.GetByIDs(context.Background(), []string{"sub-1", " ", "sub-2", "ghost"})
	if err != nil {
		t.Fatalf("batch get: %v", err)
	}
	if len(dtos) != 2 {
		t.Fatalf("expected 2 users, got %d", len(dtos))
	}
}

func TestGetByIDsRequiresIDs(t *testing.T) {
	svc, _ := NewService(newStubUserRepo())
	_, err := svc.GetByIDs(context.Background(), []string{"", "  "})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRepoErrorsSurfaceAsDependency(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("boom")
	svc, _ := NewService(repo)

	_, err := svc.GetProfile(context.Background(), "sub-1")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
