package probe

import (
	"context"
	"net"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/vexlabs/vexcheck/internal/config"
	"github.com/vexlabs/vexcheck/internal/helper"
)

type mongoDBProbe struct {
	user     string
	password string
	hostname string
	database string
	port     string
}

func NewMongoDBProbe(cfg *config.MongoDB) *mongoDBProbe {
	cfg.User = helper.ResolveEnv(cfg.User)
	cfg.Password = helper.ResolveEnv(cfg.Password)
	cfg.Hostname = helper.ResolveEnv(cfg.Hostname)
	cfg.Database = helper.ResolveEnv(cfg.Database)
	cfg.Port = helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Port), "27017", "port", "mongodb")

	return &mongoDBProbe{
		user:     cfg.User,
		password: cfg.Password,
		hostname: cfg.Hostname,
		database: cfg.Database,
		port:     cfg.Port,
	}
}

func (m *mongoDBProbe) Exec() error {
	u := url.URL{
		Scheme: "mongodb",
		Host:   net.JoinHostPort(m.hostname, m.port),
		Path:   m.database,
	}

	if m.user != "" && m.password != "" {
		u.User = url.UserPassword(m.user, m.password)
	}

	client, err := mongo.NewClient(options.Client().ApplyURI(u.String()))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := client.Connect(ctx); err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(ctx) }()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return err
	}

	log.WithFields(log.Fields{"kind": "probe", "name": "mongodb", "status": "alive", "host": u.Host}).Debug()
	return nil
}
