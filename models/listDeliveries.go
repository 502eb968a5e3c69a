package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/recon_backend/config"
	"github.com/mmdatafocus/recon_backend/utils"
)

// ListDeliveryReports returns one page of unmerged delivery reports, newest
// delivery date first, plus the total count of the filtered set. When both
// bounds are supplied (dd-MM-yyyy) the delivery date is filtered inclusively.
func ListDeliveryReports(ctx context.Context, loc *time.Location, dateStart string, dateEnd string, limit int, offset int) ([]*Delivery, int64, error) {

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&Delivery{})

	if dateStart != "" && dateEnd != "" {
		start, err := utils.ParseDateIn(dateStart, utils.DateLayoutDashDMY, loc)
		if err != nil {
			return nil, 0, utils.NewBadRequest(err)
		}
		end, err := utils.ParseDateIn(dateEnd, utils.DateLayoutDashDMY, loc)
		if err != nil {
			return nil, 0, utils.NewBadRequest(err)
		}
		dbCtx = dbCtx.Where("delivery_date BETWEEN ? AND ?", start, end)
	}

	var count int64
	if err := dbCtx.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var deliveryReports []*Delivery
	err := dbCtx.Order("delivery_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&deliveryReports).Error
	if err != nil {
		return nil, 0, err
	}
	return deliveryReports, count, nil
}
