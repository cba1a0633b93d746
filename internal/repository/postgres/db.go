package postgres

import (
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/pkg/errors"
)

func ConnectDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	if err := db.DB().Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	db.LogMode(false)
	return db, nil
}

// Tables names the table backing each entity type.
type Tables struct {
	Customers string
	Products  string
	Orders    string
}

func Migrate(db *gorm.DB, t Tables) error {
	for name, model := range map[string]Entity{
		t.Customers: &CustomerEntity{},
		t.Products:  &ProductEntity{},
		t.Orders:    &OrderEntity{},
	} {
		if err := db.Table(name).AutoMigrate(model).Error; err != nil {
			return errors.Wrapf(err, "migrate table %s", name)
		}
	}
	return nil
}
