package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mmdatafocus/recon_backend/config"
	"github.com/mmdatafocus/recon_backend/utils"
)

// Delivery is an as-yet-unmerged delivery confirmation, one per delivery
// note number. Rows are consumed (read and deleted) by the delivery merge
// once a Report with del_number = delivery_no exists.
type Delivery struct {
	ID            string    `gorm:"type:char(36);primaryKey" json:"id"`
	PlantCode     string    `gorm:"size:50;not null" json:"plantCode"`
	VenderCode    string    `gorm:"size:50;not null" json:"venderCode"`
	DeliveryNo    string    `gorm:"size:100;not null;uniqueIndex" json:"deliveryNo"`
	DeliveryDate  time.Time `gorm:"not null" json:"deliveryDate"`
	PartNo        string    `gorm:"size:100;not null" json:"partNo"`
	Qty           string    `gorm:"size:50;not null" json:"qty"`
	ReceiveArea   string    `gorm:"size:100;not null" json:"receiveArea"`
	FollowingProc string    `gorm:"size:100;not null" json:"followingProc"`
	Vat           string    `gorm:"size:20;not null" json:"vat"`
	PrivilegeFlag string    `gorm:"size:10;not null" json:"privilegeFlag"`
	ReferenceNoTag string   `gorm:"size:100;not null" json:"referenceNoTag"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Delivery) TableName() string {
	return "delivery_reports"
}

func (d *Delivery) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

var deliveryOverwriteColumns = []string{
	"vender_code",
	"plant_code",
	"delivery_no",
	"delivery_date",
	"part_no",
	"qty",
	"receive_area",
	"following_proc",
	"vat",
	"privilege_flag",
	"reference_no_tag",
	"updated_at",
}

// NewDeliveryReport is one record of a delivery-report upload. The delivery
// date arrives as a yyyy/MM/dd display string.
type NewDeliveryReport struct {
	VenderCode     string `json:"venderCode" binding:"required"`
	PlantCode      string `json:"plantCode" binding:"required"`
	DeliveryNo     string `json:"deliveryNo" binding:"required"`
	DeliveryDate   string `json:"deliveryDate" binding:"required"`
	PartNo         string `json:"partNo"`
	Qty            string `json:"qty"`
	ReceiveArea    string `json:"receiveArea"`
	FollowingProc  string `json:"followingProc"`
	Vat            string `json:"vat"`
	PrivilegeFlag  string `json:"privilegeFlag"`
	ReferenceNoTag string `json:"referenceNoTag"`
}

func (input *NewDeliveryReport) toRecord(loc *time.Location) (*Delivery, error) {
	deliveryDate, err := utils.ParseDateIn(input.DeliveryDate, utils.DateLayoutSlashYMD, loc)
	if err != nil {
		return nil, err
	}
	return &Delivery{
		VenderCode:     input.VenderCode,
		PlantCode:      input.PlantCode,
		DeliveryNo:     input.DeliveryNo,
		DeliveryDate:   deliveryDate,
		PartNo:         input.PartNo,
		Qty:            input.Qty,
		ReceiveArea:    input.ReceiveArea,
		FollowingProc:  input.FollowingProc,
		Vat:            input.Vat,
		PrivilegeFlag:  input.PrivilegeFlag,
		ReferenceNoTag: input.ReferenceNoTag,
	}, nil
}

// CreateDeliveryReports persists an upload batch as one atomic upsert keyed
// by delivery_no, last occurrence winning inside the batch. Re-submitting a
// delivery note whose row was already consumed by a merge recreates the row;
// a later merge overwrites the report's delivery group again (last write
// wins).
func CreateDeliveryReports(ctx context.Context, loc *time.Location, inputs []*NewDeliveryReport) error {

	records := make([]*Delivery, 0, len(inputs))
	for _, input := range inputs {
		record, err := input.toRecord(loc)
		if err != nil {
			return utils.NewBadRequest(err)
		}
		records = append(records, record)
	}
	records = DeduplicateBy(records, func(d *Delivery) string { return d.DeliveryNo })

	db := config.GetDB()
	return upsertInChunks(ctx, db, records, "delivery_no", deliveryOverwriteColumns)
}
