package groups

import (
	"time"

	"github.com/google/uuid"
	"github.com/listplus/listplus-backend/pkg/db/models"
)

// GroupDTO is the API shape of a shared group.
type GroupDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	CreatedBy     string    `json:"createdBy"`
	Members       []string  `json:"members"`
	InviteCode    string    `json:"inviteCode"`
	ScheduledDate *string   `json:"scheduledDate,omitempty"`
	ScheduledTime *string   `json:"scheduledTime,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// InviteDTO is returned when the invite code is rolled.
type InviteDTO struct {
	InviteCode string `json:"inviteCode"`
	InviteLink string `json:"inviteLink"`
}

// CreateGroupInput carries the fields for a new group.
type CreateGroupInput struct {
	Name          string  `json:"name" validate:"required"`
	ScheduledDate *string `json:"scheduledDate,omitempty"`
	ScheduledTime *string `json:"scheduledTime,omitempty"`
}

// UpdateGroupInput is a partial group update; nil fields are untouched.
type UpdateGroupInput struct {
	Name          *string `json:"name,omitempty"`
	ScheduledDate *string `json:"scheduledDate,omitempty"`
	ScheduledTime *string `json:"scheduledTime,omitempty"`
}

// AddMemberInput names the user to add to the group.
type AddMemberInput struct {
	MemberID string `json:"memberId" validate:"required"`
}

// ItemDTO is the API shape of a group item.
type ItemDTO struct {
	ID        uuid.UUID `json:"id"`
	GroupID   uuid.UUID `json:"groupId"`
	Name      string    `json:"name"`
	Completed bool      `json:"completed"`
	BrandName string    `json:"brandName"`
	Amount    string    `json:"amount"`
	Quantity  string    `json:"quantity"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CancelledItemDTO is the API shape of an archived group item.
type CancelledItemDTO struct {
	ID                uuid.UUID `json:"id"`
	GroupID           uuid.UUID `json:"groupId"`
	Name              string    `json:"name"`
	BrandName         string    `json:"brandName"`
	Amount            string    `json:"amount"`
	Quantity          string    `json:"quantity"`
	OriginalCreatedAt time.Time `json:"originalCreatedAt"`
	OriginalCreatedBy string    `json:"originalCreatedBy"`
	CancelledAt       time.Time `json:"cancelledAt"`
	CancelledBy       string    `json:"cancelledBy"`
}

// AddItemInput carries the fields for a new group item.
type AddItemInput struct {
	Name      string `json:"name" validate:"required"`
	BrandName string `json:"brandName,omitempty"`
	Amount    string `json:"amount,omitempty"`
	Quantity  string `json:"quantity,omitempty"`
}

// UpdateItemInput is a partial item update; nil fields are untouched.
type UpdateItemInput struct {
	Name      *string `json:"name,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	BrandName *string `json:"brandName,omitempty"`
	Amount    *string `json:"amount,omitempty"`
	Quantity  *string `json:"quantity,omitempty"`
}

func toGroupDTO(group *models.Group) *GroupDTO {
	return &GroupDTO{
		ID:            group.ID,
		Name:          group.Name,
		CreatedBy:     group.CreatedBy,
		Members:       append([]string(nil), group.Members...),
		InviteCode:    group.InviteCode,
		ScheduledDate: group.ScheduledDate,
		ScheduledTime: group.ScheduledTime,
		CreatedAt:     group.CreatedAt,
		UpdatedAt:     group.UpdatedAt,
	}
}

func toItemDTO(item *models.GroupItem) *ItemDTO {
	return &ItemDTO{
		ID:        item.ID,
		GroupID:   item.GroupID,
		Name:      item.Name,
		Completed: item.Completed,
		BrandName: item.BrandName,
		Amount:    item.Amount,
		Quantity:  item.Quantity,
		CreatedBy: item.CreatedBy,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func toCancelledItemDTO(item *models.GroupCancelledItem) *CancelledItemDTO {
	return &CancelledItemDTO{
		ID:                item.ID,
		GroupID:           item.GroupID,
		Name:              item.Name,
		BrandName:         item.BrandName,
		Amount:            item.Amount,
		Quantity:          item.Quantity,
		OriginalCreatedAt: item.OriginalCreatedAt,
		OriginalCreatedBy: item.OriginalCreatedBy,
		CancelledAt:       item.CancelledAt,
		CancelledBy:       item.CancelledBy,
	}
}
