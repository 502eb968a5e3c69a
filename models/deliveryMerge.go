package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mmdatafocus/recon_backend/config"
)

const deliveryMergeLockName = "delivery-merge"

// deliveryMatch is one delivery_reports row joined to the report it will be
// merged into.
type deliveryMatch struct {
	ID             string
	ReportId       string
	PlantCode      string
	VenderCode     string
	DeliveryNo     string
	DeliveryDate   time.Time
	PartNo         string
	Qty            string
	ReceiveArea    string
	FollowingProc  string
	Vat            string
	PrivilegeFlag  string
	ReferenceNoTag string
}

// MergeDeliveryReports copies the delivery group of every delivery_reports
// row that has a matching report (delivery_no = del_number, exact string
// equality) into that report, then deletes the consumed rows — even rows
// whose individual field values are empty. Read, update and delete run in one
// transaction, so a delivery row is never deleted unless its data committed
// to the report.
//
// At most one merge runs at a time: a Redis lock keeps concurrent instances
// from piling up, and a MySQL advisory lock held across the commit enforces
// the guarantee even when Redis is down.
func MergeDeliveryReports(ctx context.Context) error {

	// Redis lock is a best-effort optimization; reliability rests on the
	// advisory lock below.
	if locker := config.GetRedisLock(); locker != nil {
		lock, err := locker.Obtain(ctx, deliveryMergeLockName, time.Minute, nil)
		if err == nil {
			defer lock.Release(ctx)
		}
	}

	// GET_LOCK is connection-scoped, so the advisory lock, the merge
	// transaction and the release all run on one pinned connection. The lock
	// is released only after the commit lands, so a competing merge can never
	// take its read snapshot against a half-committed merge.
	db := config.GetDB()
	return db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		if err := acquireMergeLock(conn); err != nil {
			return err
		}
		defer releaseMergeLock(conn)

		tx := conn.Begin()
		if tx.Error != nil {
			return tx.Error
		}
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
				panic(r)
			}
		}()

		var matches []*deliveryMatch
		err := tx.Raw(`
SELECT
	d.id,
	r.id AS report_id,
	d.plant_code,
	d.vender_code,
	d.delivery_no,
	d.delivery_date,
	d.part_no,
	d.qty,
	d.receive_area,
	d.following_proc,
	d.vat,
	d.privilege_flag,
	d.reference_no_tag
FROM delivery_reports d
JOIN reports r ON d.delivery_no = r.del_number
`).Scan(&matches).Error
		if err != nil {
			tx.Rollback()
			return err
		}

		if len(matches) == 0 {
			tx.Rollback()
			return nil
		}

		if err := applyDeliveryMerge(tx, matches); err != nil {
			tx.Rollback()
			return err
		}

		deliveryIds := make([]string, 0, len(matches))
		for _, match := range matches {
			deliveryIds = append(deliveryIds, match.ID)
		}
		if err := tx.Where("id IN ?", deliveryIds).Delete(&Delivery{}).Error; err != nil {
			tx.Rollback()
			return err
		}

		return tx.Commit().Error
	})
}

// applyDeliveryMerge rewrites the delivery group of the matched reports with
// one bulk update keyed by report id, the payload bound as a derived table of
// placeholder rows.
func applyDeliveryMerge(tx *gorm.DB, matches []*deliveryMatch) error {

	var sb strings.Builder
	args := make([]interface{}, 0, len(matches)*12)
	for i, m := range matches {
		if i == 0 {
			sb.WriteString("SELECT ? AS id, ? AS plant_code, ? AS vender_code, ? AS delivery_no, ? AS delivery_date, ? AS part_no, ? AS qty, ? AS receive_area, ? AS following_proc, ? AS vat, ? AS privilege_flag, ? AS reference_no_tag")
		} else {
			sb.WriteString(" UNION ALL SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?")
		}
		args = append(args,
			m.ReportId, m.PlantCode, m.VenderCode, m.DeliveryNo, m.DeliveryDate,
			m.PartNo, m.Qty, m.ReceiveArea, m.FollowingProc, m.Vat,
			m.PrivilegeFlag, m.ReferenceNoTag,
		)
	}

	sql := `
UPDATE reports r
JOIN (` + sb.String() + `) src ON r.id = src.id
SET
	r.delivery_plant_code = src.plant_code,
	r.delivery_vender_code = src.vender_code,
	r.delivery_delivery_no = src.delivery_no,
	r.delivery_delivery_date = src.delivery_date,
	r.delivery_part_no = src.part_no,
	r.delivery_qty = src.qty,
	r.delivery_receive_area = src.receive_area,
	r.delivery_following_proc = src.following_proc,
	r.delivery_vat = src.vat,
	r.delivery_privilege_flag = src.privilege_flag,
	r.delivery_reference_no_tag = src.reference_no_tag,
	r.updated_at = NOW()
`

	return tx.Exec(sql, args...).Error
}

// Both calls must run on the pinned connection that owns the merge
// transaction, never on the pool at large.
func acquireMergeLock(conn *gorm.DB) error {
	var ok int
	if err := conn.Raw("SELECT GET_LOCK(?, 30)", deliveryMergeLockName).Scan(&ok).Error; err != nil {
		return err
	}
	if ok != 1 {
		return fmt.Errorf("could not acquire %s lock", deliveryMergeLockName)
	}
	return nil
}

func releaseMergeLock(conn *gorm.DB) {
	var ok int
	_ = conn.Raw("SELECT RELEASE_LOCK(?)", deliveryMergeLockName).Scan(&ok).Error
}
