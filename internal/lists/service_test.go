package lists

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/listplus/listplus-backend/internal/invite"
	"github.com/listplus/listplus-backend/pkg/db/models"
	pkgerrors "github.com/listplus/listplus-backend/pkg/errors"
	"gorm.io/gorm"
)

var hexCode = regexp.MustCompile(`^[0-9a-f]{16}$`)

type stubListRepo struct {
	lists map[uuid.UUID]*models.List
	items map[uuid.UUID]*models.ListItem

	createErrs []error // consumed one per Create call
	saveErrs   []error // consumed one per MutateForUpdate save
	findErr    error

	createdCodes []string
	cascaded     []uuid.UUID
	deletedItems []uuid.UUID
}

func newStubListRepo(lists ...*models.List) *stubListRepo {
	r := &stubListRepo{
		lists: make(map[uuid.UUID]*models.List),
		items: make(map[uuid.UUID]*models.ListItem),
	}
	for _, l := range lists {
		r.lists[l.ID] = l
	}
	return r
}

func (r *stubListRepo) FindByID(_ context.Context, id uuid.UUID) (*models.List, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	list, ok := r.lists[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *list
	return &copied, nil
}

func (r *stubListRepo) ListByMember(_ context.Context, userID string) ([]models.List, error) {
	var out []models.List
	for _, l := range r.lists {
		for _, m := range l.Members {
			if m == userID {
				out = append(out, *l)
				break
			}
		}
	}
	return out, nil
}

func (r *stubListRepo) Create(_ context.Context, list *models.List) error {
	r.createdCodes = append(r.createdCodes, list.InviteCode)
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		if err != nil {
			return err
		}
	}
	if list.ID == uuid.Nil {
		list.ID = uuid.New()
	}
	r.lists[list.ID] = list
	return nil
}

func (r *stubListRepo) Update(_ context.Context, list *models.List) error {
	r.lists[list.ID] = list
	return nil
}

func (r *stubListRepo) MutateForUpdate(_ context.Context, id uuid.UUID, fn func(list *models.List) error) error {
	list, ok := r.lists[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *list
	copied.Members = append([]string(nil), list.Members...)
	if err := fn(&copied); err != nil {
		return err
	}
	if len(r.saveErrs) > 0 {
		err := r.saveErrs[0]
		r.saveErrs = r.saveErrs[1:]
		if err != nil {
			return err
		}
	}
	r.lists[id] = &copied
	return nil
}

func (r *stubListRepo) MutateByInviteCode(_ context.Context, code string, fn func(list *models.List) error) (*models.List, error) {
	for id, l := range r.lists {
		if l.InviteCode == code {
			copied := *l
			copied.Members = append([]string(nil), l.Members...)
			if err := fn(&copied); err != nil {
				return nil, err
			}
			r.lists[id] = &copied
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubListRepo) DeleteCascade(_ context.Context, id uuid.UUID) error {
	r.cascaded = append(r.cascaded, id)
	delete(r.lists, id)
	for itemID, item := range r.items {
		if item.ListID == id {
			delete(r.items, itemID)
		}
	}
	return nil
}

func (r *stubListRepo) ListItems(_ context.Context, listID uuid.UUID) ([]models.ListItem, error) {
	var out []models.ListItem
	for _, item := range r.items {
		if item.ListID == listID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *stubListRepo) FindItem(_ context.Context, listID, itemID uuid.UUID) (*models.ListItem, error) {
	item, ok := r.items[itemID]
	if !ok || item.ListID != listID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *stubListRepo) CreateItem(_ context.Context, item *models.ListItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ID] = item
	return nil
}

func (r *stubListRepo) UpdateItem(_ context.Context, item *models.ListItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *stubListRepo) DeleteItem(_ context.Context, listID, itemID uuid.UUID) error {
	r.deletedItems = append(r.deletedItems, itemID)
	delete(r.items, itemID)
	return nil
}

func newTestService(repo listRepository) Service {
	return newServiceWithRepo(repo, invite.NewGenerator("https://app.example.com"), 3)
}

func baseList(creator string, members ...string) *models.List {
	return &models.List{
		ID:         uuid.New(),
		Name:       "groceries",
		CreatedBy:  creator,
		Members:    append([]string{creator}, members...),
		InviteCode: "aaaabbbbccccdddd",
	}
}

func wantCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != code {
		t.Fatalf("expected %s, got %v", code, err)
	}
}

func TestCreateSeedsCreatorMembership(t *testing.T) {
	repo := newStubListRepo()
	svc := newTestService(repo)

	dto, err := svc.Create(context.Background(), "alice", CreateListInput{Name: " groceries "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Name != "groceries" {
		t.Fatalf("name: %q", dto.Name)
	}
	if len(dto.Members) != 1 || dto.Members[0] != "alice" {
		t.Fatalf("members: %v", dto.Members)
	}
	if dto.CreatedBy != "alice" {
		t.Fatalf("createdBy: %q", dto.CreatedBy)
	}
	if !hexCode.MatchString(dto.InviteCode) {
		t.Fatalf("invite code %q is not 16 hex chars", dto.InviteCode)
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc := newTestService(newStubListRepo())
	_, err := svc.Create(context.Background(), "alice", CreateListInput{Name: "  "})
	wantCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateRerollsOnInviteCollision(t *testing.T) {
	repo := newStubListRepo()
	repo.createErrs = []error{errors.New(`duplicate key value violates unique constraint "lists_invite_code_key"`)}
	svc := newTestService(repo)

	dto, err := svc.Create(context.Background(), "alice", CreateListInput{Name: "groceries"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(repo.createdCodes) != 2 {
		t.Fatalf("expected 2 create attempts, got %d", len(repo.createdCodes))
	}
	if repo.createdCodes[0] == repo.createdCodes[1] {
		t.Fatal("expected a fresh code on re-roll")
	}
	if dto.InviteCode != repo.createdCodes[1] {
		t.Fatal("stored code should be the re-rolled one")
	}
}

func TestCreateGivesUpAfterMaxAttempts(t *testing.T) {
	collision := errors.New(`duplicate key value violates unique constraint "lists_invite_code_key"`)
	repo := newStubListRepo()
	repo.createErrs = []error{collision, collision, collision}
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), "alice", CreateListInput{Name: "groceries"})
	wantCode(t, err, pkgerrors.CodeInternal)
}

func TestGetEnforcesMembership(t *testing.T) {
	list := baseList("alice", "bob")
	svc := newTestService(newStubListRepo(list))

	if _, err := svc.Get(context.Background(), "bob", list.ID); err != nil {
		t.Fatalf("member get: %v", err)
	}
	_, err := svc.Get(context.Background(), "eve", list.ID)
	wantCode(t, err, pkgerrors.CodeForbidden)

	_, err = svc.Get(context.Background(), "alice", uuid.New())
	wantCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateAllowsAnyMember(t *testing.T) {
	list := baseList("alice", "bob")
	repo := newStubListRepo(list)
	svc := newTestService(repo)

	name := "weekly run"
	dto, err := svc.Update(context.Background(), "bob", list.ID, UpdateListInput{Name: &name})
	if err != nil {
		t.Fatalf("member update: %v", err)
	}
	if dto.Name != "weekly run" {
		t.Fatalf("name: %q", dto.Name)
	}

	_, err = svc.Update(context.Background(), "eve", list.ID, UpdateListInput{Name: &name})
	wantCode(t, err, pkgerrors.CodeForbidden)
}

func TestDeleteIsCreatorOnlyAndCascades(t *testing.T) {
	list := baseList("alice", "bob")
	repo := newStubListRepo(list)
	repo.items[uuid.New()] = &models.ListItem{ID: uuid.New(), ListID: list.ID, Name: "milk"}
	svc := newTestService(repo)

	err := svc.Delete(context.Background(), "bob", list.ID)
	wantCode(t, err, pkgerrors.CodeForbidden)

	if err := svc.Delete(context.Background(), "alice", list.ID); err != nil {
		t.Fatalf("creator delete: %v", err)
	}
	if len(repo.cascaded) != 1 || repo.cascaded[0] != list.ID {
		t.Fatalf("expected cascade of %s, got %v", list.ID, repo.cascaded)
	}
}

func TestAddMemberCapAndDuplicateOrdering(t *testing.T) {
	list := baseList("alice")
	repo := newStubListRepo(list)
	svc := newTestService(repo)

	dto, err := svc.AddMember(context.Background(), "alice", list.ID, "bob")
	if err != nil {
		t.Fatalf("add member: %v", err)
	}
	if len(dto.Members) != 2 {
		t.Fatalf("members: %v", dto.Members)
	}

	// Full now: a third member is rejected on capacity.
	_, err = svc.AddMember(context.Background(), "alice", list.ID, "carol")
	wantCode(t, err, pkgerrors.CodeConflict)
	if got := pkgerrors.As(err).Message(); got != "list is full" {
		t.Fatalf("expected capacity message, got %q", got)
	}

	// Re-adding bob reports the duplicate, not the capacity.
	_, err = svc.AddMember(context.Background(), "alice", list.ID, "bob")
	if got := pkgerrors.As(err).Message(); got != "user is already a member of this list" {
		t.Fatalf("expected duplicate message, got %q", got)
	}

	_, err = svc.AddMember(context.Background(), "bob", list.ID, "carol")
	wantCode(t, err, pkgerrors.CodeForbidden)
}

func TestRemoveMember(t *testing.T) {
	list := baseList("alice", "bob")
	repo := newStubListRepo(list)
	svc := newTestService(repo)

	// Members can leave on their own.
	dto, err := svc.RemoveMember(context.Background(), "bob", list.ID, "bob")
	if err != nil {
		t.Fatalf("self leave: %v", err)
	}
	if len(dto.Members) != 1 || dto.Members[0] != "alice" {
		t.Fatalf("members after leave: %v", dto.Members)
	}

	// The creator can never be removed.
	_, err = svc.RemoveMember(context.Background(), "alice", list.ID, "alice")
	wantCode(t, err, pkgerrors.CodeConflict)

	_, err = svc.RemoveMember(context.Background(), "alice", list.ID, "ghost")
	wantCode(t, err, pkgerrors.CodeNotFound)
}

func TestRegenerateInvite(t *testing.T) {
	list := baseList("alice", "bob")
	oldCode := list.InviteCode
	repo := newStubListRepo(list)
	svc := newTestService(repo)

	_, err := svc.RegenerateInvite(context.Background(), "bob", list.ID)
	wantCode(t, err, pkgerrors.CodeForbidden)

	dto, err := svc.RegenerateInvite(context.Background(), "alice", list.ID)
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if dto.InviteCode == oldCode {
		t.Fatal("expected a fresh code")
	}
	if dto.InviteLink != "https://app.example.com/join/"+dto.InviteCode {
		t.Fatalf("invite link: %q", dto.InviteLink)
	}

	// The old code no longer joins.
	_, err = svc.JoinByInvite(context.Background(), "carol", oldCode)
	wantCode(t, err, pkgerrors.CodeNotFound)
}

func TestJoinLeaveRejoinScenario(t *testing.T) {
	list := baseList("alice")
	repo := newStubListRepo(list)
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.JoinByInvite(ctx, "bob", list.InviteCode); err != nil {
		t.Fatalf("bob joins: %v", err)
	}
	_, err := svc.JoinByInvite(ctx, "carol", list.InviteCode)
	wantCode(t, err, pkgerrors.CodeConflict)

	if _, err := svc.RemoveMember(ctx, "bob", list.ID, "bob"); err != nil {
		t.Fatalf("bob leaves: %v", err)
	}
	dto, err := svc.JoinByInvite(ctx, "carol", list.InviteCode)
	if err != nil {
		t.Fatalf("carol rejoins freed slot: %v", err)
	}
	if len(dto.Members) != 2 {
		t.Fatalf("members: %v", dto.Members)
	}

	_, err = svc.JoinByInvite(ctx, "carol", list.InviteCode)
	wantCode(t, err, pkgerrors.CodeConflict)
}

func TestAddItemDefaultsAndAuthor(t *testing.T) {
	list := baseList("alice", "bob")
	repo := newStubListRepo(list)
	svc := newTestService(repo)

	dto, err := svc.AddItem(context.Background(), "bob", list.ID, AddItemInput{Name: "milk"})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if dto.Completed {
		t.Fatal("new items start incomplete")
	}
	if dto.BrandName != "" || dto.Amount != "" || dto.Quantity != "" {
		t.Fatalf("expected empty defaults, got %+v", dto)
	}
	if dto.CreatedBy != "bob" {
		t.Fatalf("createdBy: %q", dto.CreatedBy)
	}

	_, err = svc.AddItem(context.Background(), "bob", list.ID, AddItemInput{Name: " "})
	wantCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.AddItem(context.Background(), "eve", list.ID, AddItemInput{Name: "milk"})
	wantCode(t, err, pkgerrors.CodeForbidden)
}

func TestUpdateItemMergesPatch(t *testing.T) {
	list := baseList("alice")
	repo := newStubListRepo(list)
	item := &models.ListItem{ID: uuid.New(), ListID: list.ID, Name: "milk", CreatedBy: "alice"}
	repo.items[item.ID] = item
	svc := newTestService(repo)

	done := true
	brand := "oatly"
	dto, err := svc.UpdateItem(context.Background(), "alice", list.ID, item.ID, UpdateItemInput{
		Completed: &done,
		BrandName: &brand,
	})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if !dto.Completed || dto.BrandName != "oatly" || dto.Name != "milk" {
		t.Fatalf("merge result: %+v", dto)
	}

	_, err = svc.UpdateItem(context.Background(), "alice", list.ID, uuid.New(), UpdateItemInput{Completed: &done})
	wantCode(t, err, pkgerrors.CodeNotFound)
}

func TestDeleteItem(t *testing.T) {
	list := baseList("alice")
	repo := newStubListRepo(list)
	item := &models.ListItem{ID: uuid.New(), ListID: list.ID, Name: "milk", CreatedBy: "alice"}
	repo.items[item.ID] = item
	svc := newTestService(repo)

	if err := svc.DeleteItem(context.Background(), "alice", list.ID, item.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	err := svc.DeleteItem(context.Background(), "alice", list.ID, item.ID)
	wantCode(t, err, pkgerrors.CodeNotFound)
}
