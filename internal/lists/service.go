package lists

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/listplus/listplus-backend/internal/invite"
	"github.com/listplus/listplus-backend/internal/policy"
	"github.com/listplus/listplus-backend/pkg/db"
	"github.com/listplus/listplus-backend/pkg/db/models"
	pkgerrors "github.com/listplus/listplus-backend/pkg/errors"
	"gorm.io/gorm"
)

const inviteCodeConstraint = "lists_invite_code_key"

type listRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.List, error)
	ListByMember(ctx context.Context, userID string) ([]models.List, error)
	Create(ctx context.Context, list *models.List) error
	Update(ctx context.Context, list *models.List) error
	MutateForUpdate(ctx context.Context, id uuid.UUID, fn func(list *models.List) error) error
	MutateByInviteCode(ctx context.Context, code string, fn func(list *models.List) error) (*models.List, error)
	DeleteCascade(ctx context.Context, id uuid.UUID) error
	ListItems(ctx context.Context, listID uuid.UUID) ([]models.ListItem, error)
	FindItem(ctx context.Context, listID, itemID uuid.UUID) (*models.ListItem, error)
	CreateItem(ctx context.Context, item *models.ListItem) error
	UpdateItem(ctx context.Context, item *models.ListItem) error
	DeleteItem(ctx context.Context, listID, itemID uuid.UUID) error
}

// Service exposes list lifecycle, membership and item operations.
type Service interface {
	Create(ctx context.Context, actor string, input CreateListInput) (*ListDTO, error)
	ListMine(ctx context.Context, actor string) ([]ListDTO, error)
	Get(ctx context.Context, actor string, id uuid.UUID) (*ListDTO, error)
	Update(ctx context.Context, actor string, id uuid.UUID, input UpdateListInput) (*ListDTO, error)
	Delete(ctx context.Context, actor string, id uuid.UUID) error

	AddMember(ctx context.Context, actor string, id uuid.UUID, memberID string) (*ListDTO, error)
	RemoveMember(ctx context.Context, actor string, id uuid.UUID, memberID string) (*ListDTO, error)
	RegenerateInvite(ctx context.Context, actor string, id uuid.UUID) (*InviteDTO, error)
	JoinByInvite(ctx context.Context, actor, code string) (*ListDTO, error)

	ListItems(ctx context.Context, actor string, listID uuid.UUID) ([]ItemDTO, error)
	AddItem(ctx context.Context, actor string, listID uuid.UUID, input AddItemInput) (*ItemDTO, error)
	UpdateItem(ctx context.Context, actor string, listID, itemID uuid.UUID, input UpdateItemInput) (*ItemDTO, error)
	DeleteItem(ctx context.Context, actor string, listID, itemID uuid.UUID) error
}

// ServiceParams groups dependencies for the list service.
type ServiceParams struct {
	Repo            *Repository
	Codes           *invite.Generator
	CodeMaxAttempts int
}

type service struct {
	repo        listRepository
	codes       *invite.Generator
	maxAttempts int
}

// NewService builds a list service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "list repo is required")
	}
	if params.Codes == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invite generator is required")
	}
	attempts := params.CodeMaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &service{repo: params.Repo, codes: params.Codes, maxAttempts: attempts}, nil
}

func newServiceWithRepo(repo listRepository, codes *invite.Generator, attempts int) *service {
	return &service{repo: repo, codes: codes, maxAttempts: attempts}
}

func membershipOf(list *models.List) policy.Membership {
	return policy.Membership{
		Kind:      policy.KindList,
		CreatedBy: list.CreatedBy,
		Members:   list.Members,
	}
}

func (s *service) Create(ctx context.Context, actor string, input CreateListInput) (*ListDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "list name is required")
	}

	list := &models.List{
		Name:      name,
		CreatedBy: actor,
		Members:   []string{actor},
	}

	// Re-roll on an invite-code collision; the unique index is the source
	// of truth for uniqueness.
	var lastErr error
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		code, err := s.codes.Code()
		if err != nil {
			return nil, err
		}
		list.InviteCode = code
		if lastErr = s.repo.Create(ctx, list); lastErr == nil {
			return toListDTO(list), nil
		}
		if !db.IsUniqueViolation(lastErr, inviteCodeConstraint) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, lastErr, "create list")
		}
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, lastErr, "could not allocate a unique invite code")
}

func (s *service) ListMine(ctx context.Context, actor string) ([]ListDTO, error) {
	records, err := s.repo.ListByMember(ctx, actor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load lists")
	}
	dtos := make([]ListDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *toListDTO(&records[i]))
	}
	return dtos, nil
}

func (s *service) Get(ctx context.Context, actor string, id uuid.UUID) (*ListDTO, error) {
	list, err := s.findList(ctx, id)
	if err != nil {
		return nil, err
	}
	if !membershipOf(list).CanView(actor) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "you are not a member of this list")
	}
	return toListDTO(list), nil
}

func (s *service) Update(ctx context.Context, actor string, id uuid.UUID, input UpdateListInput) (*ListDTO, error) {
	list, err := s.findList(ctx, id)
	if err != nil {
		return nil, err
	}
	if !membershipOf(list).CanEditMeta(actor) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "you are not a member of this list")
	}
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "list name cannot be empty")
		}
		list.Name = trimmed
	}
	if err := s.repo.Update(ctx, list); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update list")
	}
	return toListDTO(list), nil
}

func (s *service) Delete(ctx context.Context, actor string, id uuid.UUID) error {
	list, err := s.findList(ctx, id)
	if err != nil {
		return err
	}
	if !membershipOf(list).CanDelete(actor) {
		return policy.ErrNotCreator(policy.KindList)
	}
	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete list")
	}
	return nil
}

func (s *service) AddMember(ctx context.Context, actor string, id uuid.UUID, memberID string) (*ListDTO, error) {
	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "member id is required")
	}

	var updated *models.List
	err := s.repo.MutateForUpdate(ctx, id, func(list *models.List) error {
		if err := membershipOf(list).CheckAddMember(actor, memberID); err != nil {
			return err
		}
		list.Members = append(list.Members, memberID)
		updated = list
		return nil
	})
	if err != nil {
		return nil, s.mapListErr(err, "add member")
	}
	return toListDTO(updated), nil
}

func (s *service) RemoveMember(ctx context.Context, actor string, id uuid.UUID, memberID string) (*ListDTO, error) {
	var updated *models.List
	err := s.repo.MutateForUpdate(ctx, id, func(list *models.List) error {
		m := membershipOf(list)
		if err := m.CheckRemoveMember(actor, memberID); err != nil {
			return err
		}
		if !m.IsMember(memberID) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "member not found in this list")
		}
		list.Members = removeMember(list.Members, memberID)
		updated = list
		return nil
	})
	if err != nil {
		return nil, s.mapListErr(err, "remove member")
	}
	return toListDTO(updated), nil
}

func (s *service) RegenerateInvite(ctx context.Context, actor string, id uuid.UUID) (*InviteDTO, error) {
	var code string
	var lastErr error
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		fresh, err := s.codes.Code()
		if err != nil {
			return nil, err
		}
		lastErr = s.repo.MutateForUpdate(ctx, id, func(list *models.List) error {
			if !membershipOf(list).CanRegenerateInvite(actor) {
				return policy.ErrNotCreator(policy.KindList)
			}
			list.InviteCode = fresh
			return nil
		})
		if lastErr == nil {
			code = fresh
			break
		}
		if !db.IsUniqueViolation(lastErr, inviteCodeConstraint) {
			return nil, s.mapListErr(lastErr, "regenerate invite")
		}
	}
	if code == "" {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, lastErr, "could not allocate a unique invite code")
	}
	return &InviteDTO{InviteCode: code, InviteLink: s.codes.ListLink(code)}, nil
}

func (s *service) JoinByInvite(ctx context.Context, actor, code string) (*ListDTO, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invite code is required")
	}

	list, err := s.repo.MutateByInviteCode(ctx, code, func(list *models.List) error {
		if err := membershipOf(list).CheckJoin(actor); err != nil {
			return err
		}
		list.Members = append(list.Members, actor)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "invite code not recognised")
		}
		return nil, s.mapListErr(err, "join list")
	}
	return toListDTO(list), nil
}

func (s *service) ListItems(ctx context.Context, actor string, listID uuid.UUID) ([]ItemDTO, error) {
	if _, err := s.viewableList(ctx, actor, listID); err != nil {
		return nil, err
	}
	records, err := s.repo.ListItems(ctx, listID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load list items")
	}
	dtos := make([]ItemDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *toItemDTO(&records[i]))
	}
	return dtos, nil
}

func (s *service) AddItem(ctx context.Context, actor string, listID uuid.UUID, input AddItemInput) (*ItemDTO, error) {
	if _, err := s.viewableList(ctx, actor, listID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}

	item := &models.ListItem{
		ListID:    listID,
		Name:      name,
		BrandName: input.BrandName,
		Amount:    input.Amount,
		Quantity:  input.Quantity,
		CreatedBy: actor,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create list item")
	}
	return toItemDTO(item), nil
}

func (s *service) UpdateItem(ctx context.Context, actor string, listID, itemID uuid.UUID, input UpdateItemInput) (*ItemDTO, error) {
	if _, err := s.viewableList(ctx, actor, listID); err != nil {
		return nil, err
	}
	item, err := s.findItem(ctx, listID, itemID)
	if err != nil {
		return nil, err
	}
	applyItemPatch(item, input)
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update list item")
	}
	return toItemDTO(item), nil
}

func (s *service) DeleteItem(ctx context.Context, actor string, listID, itemID uuid.UUID) error {
	if _, err := s.viewableList(ctx, actor, listID); err != nil {
		return err
	}
	if _, err := s.findItem(ctx, listID, itemID); err != nil {
		return err
	}
	if err := s.repo.DeleteItem(ctx, listID, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete list item")
	}
	return nil
}

func (s *service) findList(ctx context.Context, id uuid.UUID) (*models.List, error) {
	list, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "list not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load list")
	}
	return list, nil
}

func (s *service) viewableList(ctx context.Context, actor string, id uuid.UUID) (*models.List, error) {
	list, err := s.findList(ctx, id)
	if err != nil {
		return nil, err
	}
	if !membershipOf(list).CanView(actor) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "you are not a member of this list")
	}
	return list, nil
}

func (s *service) findItem(ctx context.Context, listID, itemID uuid.UUID) (*models.ListItem, error) {
	item, err := s.repo.FindItem(ctx, listID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "list item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load list item")
	}
	return item, nil
}

// mapListErr keeps coded errors (policy rejections and the like) intact and
// wraps everything else.
func (s *service) mapListErr(err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "list not found")
	}
	if typed := pkgerrors.As(err); typed != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}

func removeMember(members []string, target string) []string {
	out := members[:0]
	for _, m := range members {
		if m != target {
			out = append(out, m)
		}
	}
	return out
}

func applyItemPatch(item *models.ListItem, input UpdateItemInput) {
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Completed != nil {
		item.Completed = *input.Completed
	}
	if input.BrandName != nil {
		item.BrandName = *input.BrandName
	}
	if input.Amount != nil {
		item.Amount = *input.Amount
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
}
