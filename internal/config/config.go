package config

import (
	"flag"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type ProjectCfg struct {
	Name string `mapstructure:"name"`
}
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
	URL string `mapstructure:"url"`
}
type RedisCfg struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}
type OrderCfg struct {
	ValidityMinutes  int `mapstructure:"validityMinutes"`  // 订单有效期（分钟）
	ReaperIntervalS  int `mapstructure:"reaperIntervalS"`  // 超时扫描间隔（秒）
	TimestampWindowS int `mapstructure:"timestampWindowS"` // 请求时间戳有效窗口（秒）
}
type NotifyCfg struct {
	TimeoutSec         int `mapstructure:"timeoutSec"`         // 商户通知HTTP超时
	MaxRetry           int `mapstructure:"maxRetry"`           // 最大重试次数
	BreakerThreshold   int `mapstructure:"breakerThreshold"`   // 熔断失败阈值
	BreakerCooldownSec int `mapstructure:"breakerCooldownSec"` // 熔断冷却时间（秒）
	DeferDelaySec      int `mapstructure:"deferDelaySec"`      // 熔断期间延迟入队时间（秒）
	SlowAvgMs          int `mapstructure:"slowAvgMs"`          // 慢商户平均响应阈值（毫秒）
}
type TelegramCfg struct {
	ChatID string `mapstructure:"chatId"`
}

type Root struct {
	Project   ProjectCfg  `mapstructure:"project"`
	Server    ServerCfg   `mapstructure:"server"`
	MysqlMain MysqlCfg    `mapstructure:"mysql_main"`
	MysqlOrd  MysqlCfg    `mapstructure:"mysql_order"`
	RabbitMQ  RabbitCfg   `mapstructure:"rabbitmq"`
	Redis     RedisCfg    `mapstructure:"redis"`
	Order     OrderCfg    `mapstructure:"order"`
	Notify    NotifyCfg   `mapstructure:"notify"`
	Telegram  TelegramCfg `mapstructure:"telegram"`
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

	// sane defaults
	if strings.TrimSpace(C.Project.Name) == "" {
		C.Project.Name = "fpa"
	}
	if strings.TrimSpace(C.Server.Port) == "" {
		C.Server.Port = "8080"
	}
	if C.Order.ValidityMinutes <= 0 {
		C.Order.ValidityMinutes = 30
	}
	if C.Order.ReaperIntervalS <= 0 {
		C.Order.ReaperIntervalS = 300
	}
	if C.Order.TimestampWindowS <= 0 {
		C.Order.TimestampWindowS = 300
	}
	if C.Notify.TimeoutSec <= 0 {
		C.Notify.TimeoutSec = 10
	}
	if C.Notify.MaxRetry <= 0 {
		C.Notify.MaxRetry = 3
	}
	if C.Notify.BreakerThreshold <= 0 {
		C.Notify.BreakerThreshold = 5
	}
	if C.Notify.BreakerCooldownSec <= 0 {
		C.Notify.BreakerCooldownSec = 300
	}
	if C.Notify.DeferDelaySec <= 0 {
		C.Notify.DeferDelaySec = 60
	}
	if C.Notify.SlowAvgMs <= 0 {
		C.Notify.SlowAvgMs = 3000
	}
}
