package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mmdatafocus/recon_backend/config"
	"github.com/mmdatafocus/recon_backend/utils"
)

// Report is the denormalized reconciliation row, one per delivery note
// number. The invoice_* and delivery_* groups stay NULL until the matching
// merge runs.
type Report struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	PlantCode string    `gorm:"size:50;not null" json:"plantCode"`
	VenderCode string   `gorm:"size:50;not null" json:"venderCode"`
	DelNumber string    `gorm:"size:100;not null;uniqueIndex" json:"delNumber"`
	DelDate   time.Time `gorm:"not null" json:"delDate"`
	DelPeriod int       `gorm:"not null" json:"delPeriod"`

	DelSlideDate   *time.Time `json:"delSlideDate"`
	DelSlidePeriod *int       `json:"delSlidePeriod"`
	ReceivedDate   time.Time  `gorm:"not null" json:"receivedDate"`
	DelCtl         string     `gorm:"size:50;not null" json:"delCtl"`
	WorkGroup      *string    `gorm:"size:100" json:"workGroup"`
	PoNo           *string    `gorm:"size:100" json:"poNo"`
	MaterialName   string     `gorm:"size:255;not null" json:"materialName"`
	MaterialNo     string     `gorm:"size:100;not null" json:"materialNo"`
	PoQty          int        `gorm:"not null" json:"poQty"`
	ReceiveQty     int        `gorm:"not null" json:"receiveQty"`
	ReceiveArea    string     `gorm:"size:100;not null" json:"receiveArea"`
	FollowingProc  string     `gorm:"size:100;not null" json:"followingProc"`
	PrivilegeFlag  string     `gorm:"size:10;not null" json:"privilegeFlag"`
	BarcodeStatus  string     `gorm:"size:10;not null" json:"barcodeStatus"`
	TagId          string     `gorm:"size:100;not null" json:"tagId"`
	OrganizeId     string     `gorm:"size:100;not null" json:"organizeId"`
	VatSaleFlag    string     `gorm:"size:10;not null" json:"vatSaleFlag"`

	// invoice group, written only by the invoice merge
	InvoiceDateShipped         *string `gorm:"size:50" json:"invoiceDateShipped"`
	InvoiceInvoiceNo           *string `gorm:"size:100" json:"invoiceInvoiceNo"`
	InvoiceCustomerOrderNumber *string `gorm:"size:100" json:"invoiceCustomerOrderNumber"`
	InvoicePrice               *string `gorm:"size:50" json:"invoicePrice"`
	InvoiceSalesAmount         *string `gorm:"size:50" json:"invoiceSalesAmount"`

	// delivery group, written only by the delivery merge
	DeliveryPlantCode      *string    `gorm:"size:50" json:"deliveryPlantCode"`
	DeliveryVenderCode     *string    `gorm:"size:50" json:"deliveryVenderCode"`
	DeliveryDeliveryNo     *string    `gorm:"size:100" json:"deliveryDeliveryNo"`
	DeliveryDeliveryDate   *time.Time `json:"deliveryDeliveryDate"`
	DeliveryPartNo         *string    `gorm:"size:100" json:"deliveryPartNo"`
	DeliveryQty            *string    `gorm:"size:50" json:"deliveryQty"`
	DeliveryReceiveArea    *string    `gorm:"size:100" json:"deliveryReceiveArea"`
	DeliveryFollowingProc  *string    `gorm:"size:100" json:"deliveryFollowingProc"`
	DeliveryVat            *string    `gorm:"size:20" json:"deliveryVat"`
	DeliveryPrivilegeFlag  *string    `gorm:"size:10" json:"deliveryPrivilegeFlag"`
	DeliveryReferenceNoTag *string    `gorm:"size:100" json:"deliveryReferenceNoTag"`

	IsExportedDIT  *bool `gorm:"column:is_exported_dit;not null;default:false" json:"isExportedDIT"`
	IsExportedDITT *bool `gorm:"column:is_exported_ditt;not null;default:false" json:"isExportedDITT"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// reportOverwriteColumns are the columns refreshed when an upsert hits the
// del_number unique key. The id, created_at, merge groups and export flags
// are never overwritten by ingestion.
var reportOverwriteColumns = []string{
	"plant_code",
	"vender_code",
	"del_number",
	"del_date",
	"del_period",
	"del_slide_date",
	"del_slide_period",
	"received_date",
	"del_ctl",
	"work_group",
	"po_no",
	"material_name",
	"material_no",
	"po_qty",
	"receive_qty",
	"receive_area",
	"following_proc",
	"privilege_flag",
	"barcode_status",
	"tag_id",
	"organize_id",
	"vat_sale_flag",
	"updated_at",
}

// NewReport is one record of a report upload. Dates arrive as dd/MM/yyyy
// display strings.
type NewReport struct {
	PlantCode      string  `json:"plantCode" binding:"required"`
	VenderCode     string  `json:"venderCode" binding:"required"`
	DelNumber      string  `json:"delNumber" binding:"required"`
	DelDate        string  `json:"delDate" binding:"required"`
	DelPeriod      int     `json:"delPeriod"`
	DelSlideDate   *string `json:"delSlideDate"`
	DelSlidePeriod *int    `json:"delSlidePeriod"`
	ReceivedDate   string  `json:"receivedDate" binding:"required"`
	DelCtl         string  `json:"delCtl"`
	WorkGroup      *string `json:"workGroup"`
	PoNo           *string `json:"poNo"`
	MaterialName   string  `json:"materialName"`
	MaterialNo     string  `json:"materialNo"`
	PoQty          int     `json:"poQty"`
	ReceiveQty     int     `json:"receiveQty"`
	ReceiveArea    string  `json:"receiveArea"`
	FollowingProc  string  `json:"followingProc"`
	PrivilegeFlag  string  `json:"privilegeFlag"`
	BarcodeStatus  string  `json:"barcodeStatus"`
	TagId          string  `json:"tagId"`
	OrganizeId     string  `json:"organizeId"`
	VatSaleFlag    string  `json:"vatSaleFlag"`
}

func (input *NewReport) toRecord(loc *time.Location) (*Report, error) {
	delDate, err := utils.ParseDateIn(input.DelDate, utils.DateLayoutSlashDMY, loc)
	if err != nil {
		return nil, err
	}
	receivedDate, err := utils.ParseDateIn(input.ReceivedDate, utils.DateLayoutSlashDMY, loc)
	if err != nil {
		return nil, err
	}
	var delSlideDate *time.Time
	if input.DelSlideDate != nil && *input.DelSlideDate != "" {
		t, err := utils.ParseDateIn(*input.DelSlideDate, utils.DateLayoutSlashDMY, loc)
		if err != nil {
			return nil, err
		}
		delSlideDate = &t
	}

	return &Report{
		PlantCode:      input.PlantCode,
		VenderCode:     input.VenderCode,
		DelNumber:      input.DelNumber,
		DelDate:        delDate,
		DelPeriod:      input.DelPeriod,
		DelSlideDate:   delSlideDate,
		DelSlidePeriod: input.DelSlidePeriod,
		ReceivedDate:   receivedDate,
		DelCtl:         input.DelCtl,
		WorkGroup:      input.WorkGroup,
		PoNo:           input.PoNo,
		MaterialName:   input.MaterialName,
		MaterialNo:     input.MaterialNo,
		PoQty:          input.PoQty,
		ReceiveQty:     input.ReceiveQty,
		ReceiveArea:    input.ReceiveArea,
		FollowingProc:  input.FollowingProc,
		PrivilegeFlag:  input.PrivilegeFlag,
		BarcodeStatus:  input.BarcodeStatus,
		TagId:          input.TagId,
		OrganizeId:     input.OrganizeId,
		VatSaleFlag:    input.VatSaleFlag,
		IsExportedDIT:  utils.NewFalse(),
		IsExportedDITT: utils.NewFalse(),
	}, nil
}

// CreateReports persists an upload batch as one atomic upsert keyed by
// del_number. Duplicate keys inside the batch collapse to the last occurrence
// before anything touches the database.
func CreateReports(ctx context.Context, loc *time.Location, inputs []*NewReport) error {

	records := make([]*Report, 0, len(inputs))
	for _, input := range inputs {
		record, err := input.toRecord(loc)
		if err != nil {
			return utils.NewBadRequest(err)
		}
		records = append(records, record)
	}
	records = DeduplicateBy(records, func(r *Report) string { return r.DelNumber })

	db := config.GetDB()
	return upsertInChunks(ctx, db, records, "del_number", reportOverwriteColumns)
}
