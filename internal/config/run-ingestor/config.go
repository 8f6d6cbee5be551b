package run_ingestor_config

import (
	"github.com/NordCoder/Runboard/internal/obs"
	"github.com/NordCoder/Runboard/internal/obs/retry"
	pg "github.com/NordCoder/Runboard/internal/repository/postgres"
)

type Kafka struct {
	Brokers       []string `mapstructure:"brokers"`
	Topic         string   `mapstructure:"topic"`
	GroupID       string   `mapstructure:"group_id"`
	FromBeginning bool     `mapstructure:"from_beginning"`
	Partitions    int      `mapstructure:"partitions"`
}

type Server struct {
	MetricsAddr string `mapstructure:"metrics_addr"`
}

type Config struct {
	DB     pg.Config      `mapstructure:"db"`
	Kafka  Kafka          `mapstructure:"kafka"`
	Server Server         `mapstructure:"server"`
	Retry  retry.Config   `mapstructure:"retry"`
	OTEL   obs.OTELConfig `mapstructure:"otel"`
	Log    obs.LogConfig  `mapstructure:"log"`
}

type ErrConfig string

func (e ErrConfig) Error() string { return string(e) }
