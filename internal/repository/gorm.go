package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/talentshowcase/search-service/internal/domain"
)

// NewGormStores wires all five type stores onto one GORM connection.
func NewGormStores(db *gorm.DB) Stores {
	return Stores{
		Users:       &gormUserStore{db: db},
		Communities: &gormCommunityStore{db: db},
		Jobs:        &gormJobStore{db: db},
		Talents:     &gormTalentStore{db: db},
		Posts:       &gormPostStore{db: db},
	}
}

// likePattern builds a case-insensitive substring pattern. Columns are
// lowered in SQL so behavior is identical across postgres, mysql and sqlite.
func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

// nameCollation forces byte-order comparison on a name sort column. The
// aggregator compares titles with strings.Compare, so database windows must
// use the same ordering; locale-aware default collations (postgres, mysql)
// would sort case-insensitively and let windows miss rows the merged page
// needs. sqlite compares BINARY by default.
func nameCollation(driver string) string {
	switch driver {
	case "postgres":
		return ` COLLATE "C"`
	case "mysql":
		return " COLLATE utf8mb4_bin"
	default:
		return ""
	}
}

// orderClause maps the validated sort enums onto a store's columns. The id
// column is always the final tie-break so windows are a stable prefix of
// the global order. Relevance is a constant score, so its secondary key
// (creation time descending) decides the order.
func orderClause(sort Sort, driver, dateCol, nameCol, idCol string) string {
	dir := "ASC"
	if sort.Order == domain.SortOrderDesc {
		dir = "DESC"
	}
	switch sort.By {
	case domain.SortByDate:
		return fmt.Sprintf("%s %s, %s ASC", dateCol, dir, idCol)
	case domain.SortByName:
		return fmt.Sprintf("%s%s %s, %s ASC", nameCol, nameCollation(driver), dir, idCol)
	default:
		return fmt.Sprintf("%s DESC, %s ASC", dateCol, idCol)
	}
}
