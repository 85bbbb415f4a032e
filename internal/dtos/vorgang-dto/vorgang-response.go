package vorgang_dto

import (
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/dtos"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
)

type RegisterVorgangResponse struct {
	ID              string               `json:"id"`
	SequentialLabel string               `json:"sequential_label"`
	Status          entity.VorgangStatus `json:"status"`
	ReceivedAt      time.Time            `json:"received_at"`
}

type VorgangListResponse struct {
	Items      []entity.VorgangEntity `json:"items"`
	Pagination dtos.PaginationMeta    `json:"pagination"`
}

type DesignateResponse struct {
	ID              string                    `json:"id"`
	SequentialLabel string                    `json:"sequential_label"`
	Status          entity.VorgangStatus      `json:"status"`
	DesignatedAt    *time.Time                `json:"designated_at,omitempty"`
	Assignments     []entity.AssignmentEntity `json:"assignments"`
}

type AssignmentResponse struct {
	VorgangID     string                  `json:"vorgang_id"`
	VorgangStatus entity.VorgangStatus    `json:"vorgang_status"`
	Assignment    entity.AssignmentEntity `json:"assignment"`
}

type DeliverResponse struct {
	AssignmentResponse
	Completed bool `json:"completed"`
}

type DeleteVorgangResponse struct {
	ID              string `json:"id"`
	SequentialLabel string `json:"sequential_label"`
	RenumberPending bool   `json:"renumber_pending"`
}

type StatisticsResponse struct {
	Counts []entity.VorgangStatusCount `json:"counts"`
	Total  int64                       `json:"total"`
}
