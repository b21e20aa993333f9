package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/bloodx-backend/internal/domain"
)

// assignment is one column update, kept ordered so generated SQL is stable.
type assignment struct {
	col string
	val any
}

// updateByID sets cols on the row identified by id and reports how many rows
// matched the id and how many actually changed. A row whose columns already
// hold the target values counts as matched but not modified.
func updateByID(ctx context.Context, db *gorm.DB, model any, id string, cols []assignment) (domain.UpdateResult, error) {
	var matched int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&matched).Error; err != nil {
		return domain.UpdateResult{}, err
	}
	res := domain.UpdateResult{Acknowledged: true, MatchedCount: matched}
	if matched == 0 || len(cols) == 0 {
		return res, nil
	}

	set := make(map[string]any, len(cols))
	diff := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for _, a := range cols {
		set[a.col] = a.val
		diff = append(diff, a.col+" IS NULL OR "+a.col+" <> ?")
		args = append(args, a.val)
	}

	tx := db.WithContext(ctx).Model(model).
		Where("id = ?", id).
		Where("("+strings.Join(diff, ") OR (")+")", args...).
		Updates(set)
	if tx.Error != nil {
		return domain.UpdateResult{}, tx.Error
	}
	res.ModifiedCount = tx.RowsAffected
	return res, nil
}

// deleteByID hard-deletes the row identified by id.
func deleteByID(ctx context.Context, db *gorm.DB, model any, id string) (domain.DeleteResult, error) {
	tx := db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if tx.Error != nil {
		return domain.DeleteResult{}, tx.Error
	}
	return domain.DeleteResult{Acknowledged: true, DeletedCount: tx.RowsAffected}, nil
}
