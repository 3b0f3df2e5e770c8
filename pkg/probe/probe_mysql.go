package probe

import (
	"database/sql"
	"net"

	"github.com/go-sql-driver/mysql"
	log "github.com/sirupsen/logrus"

	"github.com/vexlabs/vexcheck/internal/config"
	"github.com/vexlabs/vexcheck/internal/helper"
)

type mySQLProbe struct {
	dsn string
}

func NewMySQLProbe(cfg *config.MySQL) *mySQLProbe {
	cfg.User = helper.ResolveEnv(cfg.User)
	cfg.Password = helper.ResolveEnv(cfg.Password)
	cfg.Database = helper.ResolveEnv(cfg.Database)
	cfg.Hostname = helper.ResolveEnv(cfg.Hostname)
	cfg.Port = helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Port), "3306", "port", "mysql")

	connCfg := mysql.Config{
		User:                 cfg.User,
		Passwd:               cfg.Password,
		Net:                  "tcp",
		Addr:                 net.JoinHostPort(cfg.Hostname, cfg.Port),
		DBName:               cfg.Database,
		AllowNativePasswords: true,
	}

	return &mySQLProbe{
		dsn: connCfg.FormatDSN(),
	}
}

func (m *mySQLProbe) Exec() error {
	db, err := sql.Open("mysql", m.dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	r, err := db.Query("SELECT 1")
	if err != nil {
		return err
	}
	r.Close()

	log.WithFields(log.Fields{"kind": "probe", "name": "mysql", "status": "alive"}).Debug()
	return nil
}
