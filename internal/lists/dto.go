package lists

import (
	"time"

	"github.com/google/uuid"
	"github.com/listplus/listplus-backend/pkg/db/models"
)

// ListDTO is the API shape of a shared list.
type ListDTO struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	CreatedBy  string    `json:"createdBy"`
	Members    []string  `json:"members"`
	InviteCode string    `json:"inviteCode"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// InviteDTO is returned when the invite code is rolled.
type InviteDTO struct {
	InviteCode string `json:"inviteCode"`
	InviteLink string `json:"inviteLink"`
}

// CreateListInput carries the fields for a new list.
type CreateListInput struct {
	Name string `json:"name" validate:"required"`
}

// UpdateListInput is a partial list update; nil fields are untouched.
type UpdateListInput struct {
	Name *string `json:"name,omitempty"`
}

// AddMemberInput names the user to add to the list.
type AddMemberInput struct {
	MemberID string `json:"memberId" validate:"required"`
}

// ItemDTO is the API shape of a list item.
type ItemDTO struct {
	ID        uuid.UUID `json:"id"`
	ListID    uuid.UUID `json:"listId"`
	Name      string    `json:"name"`
	Completed bool      `json:"completed"`
	BrandName string    `json:"brandName"`
	Amount    string    `json:"amount"`
	Quantity  string    `json:"quantity"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AddItemInput carries the fields for a new list item.
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

func toListDTO(list *models.List) *ListDTO {
	return &ListDTO{
		ID:         list.ID,
		Name:       list.Name,
		CreatedBy:  list.CreatedBy,
		Members:    append([]string(nil), list.Members...),
		InviteCode: list.InviteCode,
		CreatedAt:  list.CreatedAt,
		UpdatedAt:  list.UpdatedAt,
	}
}

func toItemDTO(item *models.ListItem) *ItemDTO {
	return &ItemDTO{
		ID:        item.ID,
		ListID:    item.ListID,
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
