package botconfig

import (
	"time"

	"HaliteBot/internal/engine/tuning"
)

type Config struct {
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Bot     BotConfig     `yaml:"bot" mapstructure:"bot"`
	Engine  tuning.Tuning `yaml:"engine" mapstructure:"engine"`
	Debug   DebugConfig   `yaml:"debug" mapstructure:"debug"`
	MongoDB MongoDBConfig `yaml:"mongodb" mapstructure:"mongodb"`
	MySQL   MySQLConfig   `yaml:"mysql" mapstructure:"mysql"`
	Batch   BatchConfig   `yaml:"batch" mapstructure:"batch"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

type BotConfig struct {
	Name string `yaml:"name" mapstructure:"name"`
	// stdio | ws
	Transport string `yaml:"transport" mapstructure:"transport"`
	WSURL     string `yaml:"ws_url" mapstructure:"ws_url"`
	// 签发 ws 拨号 token 的密钥，环境变量 JWT_SECRET 优先
	JWTSecret string `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	// 单回合耗时超过该值记 WARN
	TurnBudget time.Duration `yaml:"turn_budget" mapstructure:"turn_budget"`
	// 回合等待超时，0 表示不限
	ReadTimeout time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
}

type DebugConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Host     string `yaml:"host" mapstructure:"host"`
	HTTPPort int    `yaml:"http_port" mapstructure:"http_port"`
	GRPCPort int    `yaml:"grpc_port" mapstructure:"grpc_port"`
	// 开启后 /debug/* 需要 Bearer token
	RequireToken bool `yaml:"require_token" mapstructure:"require_token"`
}

type MongoDBConfig struct {
	Enabled         bool   `yaml:"enabled" mapstructure:"enabled"`
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type MySQLConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

// BatchConfig 对应批量对局脚本的参数。
type BatchConfig struct {
	HaliteBin string `yaml:"halite_bin" mapstructure:"halite_bin"`
	BotA      string `yaml:"bot_a" mapstructure:"bot_a"`
	BotB      string `yaml:"bot_b" mapstructure:"bot_b"`
	Games     int    `yaml:"games" mapstructure:"games"`
	Seed      int    `yaml:"seed" mapstructure:"seed"`
	// 地图尺寸：从 MinSize 起每两局增加 SizeStep，超过 MaxSize 回到 MinSize
	MinSize  int `yaml:"min_size" mapstructure:"min_size"`
	MaxSize  int `yaml:"max_size" mapstructure:"max_size"`
	SizeStep int `yaml:"size_step" mapstructure:"size_step"`
	// 单局超时
	GameTimeout time.Duration `yaml:"game_timeout" mapstructure:"game_timeout"`
}
