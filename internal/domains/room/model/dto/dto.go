package dto

import (
	"mime/multipart"

	"hotel/internal/domains/room/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateRoomRequest struct {
	RoomNumber  string                `json:"room_number" validate:"required,max=20"`
	Type        string                `json:"type"        validate:"required,max=50"`
	Floor       int                   `json:"floor"       validate:"gte=0"`
	Price       decimal.Decimal       `json:"price"       validate:"gt=0,money"`
	Description string                `json:"description" validate:"omitempty,max=500"`
	Image       *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpeg image/webp,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
}

// ToModel builds a new room. Fresh rooms are always Available.
func (c *CreateRoomRequest) ToModel(user string, imageURL string) model.Room {
	return model.Room{
		ID:          uuid.NewString(),
		RoomNumber:  c.RoomNumber,
		Type:        c.Type,
		Floor:       c.Floor,
		Price:       c.Price.Round(2),
		Status:      model.StatusAvailable,
		Description: c.Description,
		Image:       imageURL,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateRoomRequest struct {
	RoomNumber  string                `db:"room_number" json:"room_number" validate:"omitempty,max=20"`
	Type        string                `db:"type"        json:"type"        validate:"omitempty,max=50"`
	Floor       *int                  `db:"floor"       json:"floor"       validate:"omitempty,gte=0"`
	Price       *decimal.Decimal      `db:"price"       json:"price"       validate:"omitempty,gt=0,money"`
	Description string                `db:"description" json:"description" validate:"omitempty,max=500"`
	Image       *multipart.FileHeader `json:"image"     validate:"omitempty,mimetypes=image/png image/jpeg image/webp,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
}

type UpdateRoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Available Cleaning Maintenance Out-of-Service"`
}

type RoomResponse struct {
	ID          string          `json:"id"`
	RoomNumber  string          `json:"room_number"`
	Type        string          `json:"type"`
	Floor       int             `json:"floor"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.Type = model.Type
	r.Floor = model.Floor
	r.Price = model.Price
	r.Status = model.Status
	r.Description = model.Description
	r.Image = model.Image
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
