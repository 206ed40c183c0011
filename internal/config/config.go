package config

import (
	"flag"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type ServerCfg struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}
type MysqlCfg struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Database     string `mapstructure:"database"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}
type RabbitCfg struct {
	URL           string `mapstructure:"url"`
	Exchange      string `mapstructure:"exchange"`
	Queue         string `mapstructure:"queue"`
	PrefetchCount int    `mapstructure:"prefetchCount"`
}
type RedisCfg struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}
type SecurityCfg struct {
	WebhookToken string `mapstructure:"webhookToken"`
}

// WalletCfg 钱包服务商接口（仅用于校验钱包是否可用）
type WalletCfg struct {
	ApiUrl      string `mapstructure:"apiUrl"`
	ApiKey      string `mapstructure:"apiKey"`
	CacheTtlSec int    `mapstructure:"cacheTtlSec"`
	TimeoutSec  int    `mapstructure:"timeoutSec"`
}

// CommissionCfg 平台固定受益方钱包
type CommissionCfg struct {
	HouseAWalletID string `mapstructure:"houseAWalletId"`
	HouseBWalletID string `mapstructure:"houseBWalletId"`
}

type NotifyCfg struct {
	ChatID string `mapstructure:"chatId"`
}

type SnowflakeCfg struct {
	NodeID int64 `mapstructure:"nodeId"`
}

type Root struct {
	Server     ServerCfg     `mapstructure:"server"`
	MysqlMain  MysqlCfg      `mapstructure:"mysql_main"`
	RabbitMQ   RabbitCfg     `mapstructure:"rabbitmq"`
	Redis      RedisCfg      `mapstructure:"redis"`
	Security   SecurityCfg   `mapstructure:"security"`
	Wallet     WalletCfg     `mapstructure:"wallet"`
	Commission CommissionCfg `mapstructure:"commission"`
	Notify     NotifyCfg     `mapstructure:"notify"`
	Snowflake  SnowflakeCfg  `mapstructure:"snowflake"`
}

var C Root

func Init() {
	env := flag.String("env", "dev", "config env: dev|prod")
	flag.Parse()

	v := viper.New()
	v.SetConfigFile("config/config." + *env + ".yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config file failed: %v", err)
	}
	if err := v.Unmarshal(&C); err != nil {
		log.Fatalf("unmarshal config failed: %v", err)
	}
	applyDefaults(&C)
}

// sane defaults
func applyDefaults(c *Root) {
	if strings.TrimSpace(c.Server.Port) == "" {
		c.Server.Port = "8080"
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "commission_events"
	}
	if c.RabbitMQ.Queue == "" {
		c.RabbitMQ.Queue = "payment_events"
	}
	if c.Wallet.CacheTtlSec <= 0 {
		c.Wallet.CacheTtlSec = 300
	}
	if c.Wallet.TimeoutSec <= 0 {
		c.Wallet.TimeoutSec = 5
	}
	if c.Snowflake.NodeID < 0 || c.Snowflake.NodeID > 1023 {
		c.Snowflake.NodeID = 1
	}
}
