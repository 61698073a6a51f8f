package groups

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

const inviteCodeConstraint = "groups_invite_code_key"

type groupRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Group, error)
	ListByMember(ctx context.Context, userID string) ([]models.Group, error)
	Create(ctx context.Context, group *models.Group) error
	Update(ctx context.Context, group *models.Group) error
	MutateForUpdate(ctx context.Context, id uuid.UUID, fn func(group *models.Group) error) error
	MutateByInviteCode(ctx context.Context, code string, fn func(group *models.Group) error) (*models.Group, error)
	DeleteCascade(ctx context.Context, id uuid.UUID) error
	ListItems(ctx context.Context, groupID uuid.UUID) ([]models.GroupItem, error)
	FindItem(ctx context.Context, groupID, itemID uuid.UUID) (*models.GroupItem, error)
	CreateItem(ctx context.Context, item *models.GroupItem) error
	UpdateItem(ctx context.Context, item *models.GroupItem) error
	DeleteItem(ctx context.Context, groupID, itemID uuid.UUID) error
	ArchiveAndDeleteItem(ctx context.Context, item *models.GroupItem, cancelledBy string) error
	ListCancelledItems(ctx context.Context, groupID uuid.UUID) ([]models.GroupCancelledItem, error)
}

// Service exposes group lifecycle, membership, item and archive operations.
type Service interface {
	Create(ctx context.Context, actor string, input CreateGroupInput) (*GroupDTO, error)
	ListMine(ctx context.Context, actor string) ([]GroupDTO, error)
	Get(ctx context.Context, actor string, id uuid.UUID) (*GroupDTO, error)
	Update(ctx context.Context, actor string, id uuid.UUID, input UpdateGroupInput) (*GroupDTO, error)
	Delete(ctx context.Context, actor string, id uuid.UUID) error

	AddMember(ctx context.Context, actor string, id uuid.UUID, memberID string) (*GroupDTO, error)
	RemoveMember(ctx context.Context, actor string, id uuid.UUID, memberID string) (*GroupDTO, error)
	RegenerateInvite(ctx context.Context, actor string, id uuid.UUID) (*InviteDTO, error)
	JoinByInvite(ctx context.Context, actor, code string) (*GroupDTO, error)

	ListItems(ctx context.Context, actor string, groupID uuid.UUID) ([]ItemDTO, error)
	AddItem(ctx context.Context, actor string, groupID uuid.UUID, input AddItemInput) (*ItemDTO, error)
	UpdateItem(ctx context.Context, actor string, groupID, itemID uuid.UUID, input UpdateItemInput) (*ItemDTO, error)
	DeleteItem(ctx context.Context, actor string, groupID, itemID uuid.UUID) error
	ListCancelledItems(ctx context.Context, actor string, groupID uuid.UUID) ([]CancelledItemDTO, error)
}

// ServiceParams groups dependencies for the group service.
type ServiceParams struct {
	Repo            *Repository
	Codes           *invite.Generator
	CodeMaxAttempts int
}

type service struct {
	repo        groupRepository
	codes       *invite.Generator
	maxAttempts int
}

// NewService builds a group service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "group repo is required")
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

func newServiceWithRepo(repo groupRepository, codes *invite.Generator, attempts int) *service {
	return &service{repo: repo, codes: codes, maxAttempts: attempts}
}

func membershipOf(group *models.Group) policy.Membership {
	return policy.Membership{
		Kind:      policy.KindGroup,
		CreatedBy: group.CreatedBy,
		Members:   group.Members,
	}
}

func (s *service) Create(ctx context.Context, actor string, input CreateGroupInput) (*GroupDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "group name is required")
	}

	group := &models.Group{
		Name:          name,
		CreatedBy:     actor,
		Members:       []string{actor},
		ScheduledDate: input.ScheduledDate,
		ScheduledTime: input.ScheduledTime,
	}

	var lastErr error
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		code, err := s.codes.Code()
		if err != nil {
			return nil, err
		}
		group.InviteCode = code
		if lastErr = s.repo.Create(ctx, group); lastErr == nil {
			return toGroupDTO(group), nil
		}
		if !db.IsUniqueViolation(lastErr, inviteCodeConstraint) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, lastErr, "create group")
		}
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, lastErr, "could not allocate a unique invite code")
}

func (s *service) ListMine(ctx context.Context, actor string) ([]GroupDTO, error) {
	records, err := s.repo.ListByMember(ctx, actor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load groups")
	}
	dtos := make([]GroupDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *toGroupDTO(&records[i]))
	}
	return dtos, nil
}

func (s *service) Get(ctx context.Context, actor string, id uuid.UUID) (*GroupDTO, error) {
	group, err := s.viewableGroup(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toGroupDTO(group), nil
}

func (s *service) Update(ctx context.Context, actor string, id uuid.UUID, input UpdateGroupInput) (*GroupDTO, error) {
	group, err := s.findGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	if !membershipOf(group).CanEditMeta(actor) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "you are not a member of this group")
	}
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "group name cannot be empty")
		}
		group.Name = trimmed
	}
	if input.ScheduledDate != nil {
		group.ScheduledDate = input.ScheduledDate
	}
	if input.ScheduledTime != nil {
		group.ScheduledTime = input.ScheduledTime
	}
	if err := s.repo.Update(ctx, group); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update group")
	}
	return toGroupDTO(group), nil
}

func (s *service) Delete(ctx context.Context, actor string, id uuid.UUID) error {
	group, err := s.findGroup(ctx, id)
	if err != nil {
		return err
	}
	if !membershipOf(group).CanDelete(actor) {
		return policy.ErrNotCreator(policy.KindGroup)
	}
	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete group")
	}
	return nil
}

func (s *service) AddMember(ctx context.Context, actor string, id uuid.UUID, memberID string) (*GroupDTO, error) {
	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "member id is required")
	}

	var updated *models.Group
	err := s.repo.MutateForUpdate(ctx, id, func(group *models.Group) error {
		if err := membershipOf(group).CheckAddMember(actor, memberID); err != nil {
			return err
		}
		group.Members = append(group.Members, memberID)
		updated = group
		return nil
	})
	if err != nil {
		return nil, s.mapGroupErr(err, "add member")
	}
	return toGroupDTO(updated), nil
}

func (s *service) RemoveMember(ctx context.Context, actor string, id uuid.UUID, memberID string) (*GroupDTO, error) {
	var updated *models.Group
	err := s.repo.MutateForUpdate(ctx, id, func(group *models.Group) error {
		m := membershipOf(group)
		if err := m.CheckRemoveMember(actor, memberID); err != nil {
			return err
		}
		if !m.IsMember(memberID) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "member not found in this group")
		}
		group.Members = removeMember(group.Members, memberID)
		updated = group
		return nil
	})
	if err != nil {
		return nil, s.mapGroupErr(err, "remove member")
	}
	return toGroupDTO(updated), nil
}

func (s *service) RegenerateInvite(ctx context.Context, actor string, id uuid.UUID) (*InviteDTO, error) {
	var code string
	var lastErr error
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		fresh, err := s.codes.Code()
		if err != nil {
			return nil, err
		}
		lastErr = s.repo.MutateForUpdate(ctx, id, func(group *models.Group) error {
			if !membershipOf(group).CanRegenerateInvite(actor) {
				return policy.ErrNotCreator(policy.KindGroup)
			}
			group.InviteCode = fresh
			return nil
		})
		if lastErr == nil {
			code = fresh
			break
		}
		if !db.IsUniqueViolation(lastErr, inviteCodeConstraint) {
			return nil, s.mapGroupErr(lastErr, "regenerate invite")
		}
	}
	if code == "" {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, lastErr, "could not allocate a unique invite code")
	}
	return &InviteDTO{InviteCode: code, InviteLink: s.codes.GroupLink(code)}, nil
}

func (s *service) JoinByInvite(ctx context.Context, actor, code string) (*GroupDTO, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invite code is required")
	}

	group, err := s.repo.MutateByInviteCode(ctx, code, func(group *models.Group) error {
		if err := membershipOf(group).CheckJoin(actor); err != nil {
			return err
		}
		group.Members = append(group.Members, actor)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "invite code not recognised")
		}
		return nil, s.mapGroupErr(err, "join group")
	}
	return toGroupDTO(group), nil
}

func (s *service) ListItems(ctx context.Context, actor string, groupID uuid.UUID) ([]ItemDTO, error) {
	if _, err := s.viewableGroup(ctx, actor, groupID); err != nil {
		return nil, err
	}
	records, err := s.repo.ListItems(ctx, groupID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load group items")
	}
	dtos := make([]ItemDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *toItemDTO(&records[i]))
	}
	return dtos, nil
}

func (s *service) AddItem(ctx context.Context, actor string, groupID uuid.UUID, input AddItemInput) (*ItemDTO, error) {
	if _, err := s.viewableGroup(ctx, actor, groupID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}

	item := &models.GroupItem{
		GroupID:   groupID,
		Name:      name,
		BrandName: input.BrandName,
		Amount:    input.Amount,
		Quantity:  input.Quantity,
		CreatedBy: actor,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create group item")
	}
	return toItemDTO(item), nil
}

func (s *service) UpdateItem(ctx context.Context, actor string, groupID, itemID uuid.UUID, input UpdateItemInput) (*ItemDTO, error) {
	if _, err := s.viewableGroup(ctx, actor, groupID); err != nil {
		return nil, err
	}
	item, err := s.findItem(ctx, groupID, itemID)
	if err != nil {
		return nil, err
	}
	applyItemPatch(item, input)
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update group item")
	}
	return toItemDTO(item), nil
}

// DeleteItem removes the item. Incomplete items are first snapshotted into
// the cancelled archive; completed items are dropped without trace.
func (s *service) DeleteItem(ctx context.Context, actor string, groupID, itemID uuid.UUID) error {
	if _, err := s.viewableGroup(ctx, actor, groupID); err != nil {
		return err
	}
	item, err := s.findItem(ctx, groupID, itemID)
	if err != nil {
		return err
	}
	if item.Completed {
		if err := s.repo.DeleteItem(ctx, groupID, itemID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete group item")
		}
		return nil
	}
	if err := s.repo.ArchiveAndDeleteItem(ctx, item, actor); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "archive group item")
	}
	return nil
}

func (s *service) ListCancelledItems(ctx context.Context, actor string, groupID uuid.UUID) ([]CancelledItemDTO, error) {
	if _, err := s.viewableGroup(ctx, actor, groupID); err != nil {
		return nil, err
	}
	records, err := s.repo.ListCancelledItems(ctx, groupID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cancelled items")
	}
	dtos := make([]CancelledItemDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *toCancelledItemDTO(&records[i]))
	}
	return dtos, nil
}

func (s *service) findGroup(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "group not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load group")
	}
	return group, nil
}

func (s *service) viewableGroup(ctx context.Context, actor string, id uuid.UUID) (*models.Group, error) {
	group, err := s.findGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	if !membershipOf(group).CanView(actor) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "you are not a member of this group")
	}
	return group, nil
}

func (s *service) findItem(ctx context.Context, groupID, itemID uuid.UUID) (*models.GroupItem, error) {
	item, err := s.repo.FindItem(ctx, groupID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "group item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load group item")
	}
	return item, nil
}

func (s *service) mapGroupErr(err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "group not found")
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

func applyItemPatch(item *models.GroupItem, input UpdateItemInput) {
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
