package configs

import (
	"fmt"
	"net"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const retryDelay = 5 * time.Second

func MySQLDSN(cfg ENV) string {
	c := mysqldriver.NewConfig()
	c.User = cfg.DBUser
	c.Passwd = cfg.DBPassword
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.DBHost, cfg.DBPort)
	c.DBName = cfg.DBName
	c.ParseTime = true
	c.Loc = time.UTC
	c.Params = map[string]string{"charset": "utf8mb4"}
	return c.FormatDSN()
}

// OpenConnection connects to MySQL, retrying while the server comes up.
func OpenConnection(cfg ENV, log *logrus.Logger) (*gorm.DB, error) {
	dsn := MySQLDSN(cfg)
	maxRetries := cfg.DBMaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	gormCfg := &gorm.Config{
		Logger: gormlogger.New(log, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		entry := log.WithFields(logrus.Fields{"attempt": i + 1, "max": maxRetries, "host": cfg.DBHost})
		entry.Info("connecting to database")

		db, err := gorm.Open(mysql.Open(dsn), gormCfg)
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					sqlDB.SetMaxOpenConns(25)
					sqlDB.SetMaxIdleConns(10)
					sqlDB.SetConnMaxLifetime(30 * time.Minute)
					log.Info("database connection successful")
					return db, nil
				}
			}
			err = pingErr
		}

		lastErr = err
		entry.WithError(err).Warnf("database not ready, retrying in %v", retryDelay)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	return nil, fmt.Errorf("failed to connect to the database after %d attempts: %w", maxRetries, lastErr)
}
