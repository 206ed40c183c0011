package dal

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm/logger"

	"aff-commission-api/internal/config"
	mainmodel "aff-commission-api/internal/model/main"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var MainDB *gorm.DB

func InitMainDB() {
	c := config.C.MysqlMain
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.Database, c.Charset)
	// 配置日志输出
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  config.C.Server.Mode == "debug",
		},
	)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: newLogger,
		// 唯一键冲突统一转换为 gorm.ErrDuplicatedKey，分佣幂等依赖此行为
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("connect main db failed: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(2 * time.Hour)
	MainDB = db
}

// AutoMigrate 同步分佣相关表结构
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&mainmodel.Affiliate{},
		&mainmodel.Order{},
		&mainmodel.Commission{},
		&mainmodel.CommissionSplit{},
		&mainmodel.PaymentAlert{},
	)
}
