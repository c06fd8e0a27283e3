package botconfig

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"HaliteBot/internal/engine/tuning"
	"HaliteBot/internal/shared/config"
)

// Conf 是启动时读到的配置快照，之后只读。
var Conf Config

var (
	mu      sync.Mutex
	staging Config
	live    atomic.Pointer[tuning.Tuning]
)

// Watcher 接收热更新结果，回调在 fsnotify 的 goroutine 上执行。
type Watcher struct {
	OnReload   func(tuning.Tuning)
	// 日志级别同样支持热更新
	OnLogLevel func(level string)
	OnError    func(error)
}

// Load 读取配置；cfgName 为空时向上查找 configs/conf.yml。
// 热更新只替换 engine 段的调参和日志级别，其余字段以启动时为准。
func Load(cfgName string, w Watcher) error {
	path, err := config.Resolve(cfgName)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	err = config.Load(path, &staging,
		config.WithOnChange(func(fsnotify.Event) {
			mu.Lock()
			t := staging.Engine.Normalize()
			level := staging.Log.Level
			mu.Unlock()
			live.Store(&t)
			if w.OnLogLevel != nil {
				w.OnLogLevel(level)
			}
			if w.OnReload != nil {
				w.OnReload(t)
			}
		}),
		config.WithOnError(w.OnError),
	)
	if err != nil {
		return err
	}

	Conf = staging
	Conf.Engine = Conf.Engine.Normalize()
	t := Conf.Engine
	live.Store(&t)

	// 环境变量优先；若未设置则回填配置中的 jwt_secret，兼容本地开发场景。
	if os.Getenv("JWT_SECRET") == "" && Conf.Bot.JWTSecret != "" {
		_ = os.Setenv("JWT_SECRET", Conf.Bot.JWTSecret)
	}
	return nil
}

// Tuning 返回当前生效的调参；未加载配置时返回默认值。
func Tuning() tuning.Tuning {
	if t := live.Load(); t != nil {
		return *t
	}
	return tuning.Default()
}

// SetTuning 直接替换生效的调参，测试和调试接口使用。
func SetTuning(t tuning.Tuning) {
	t = t.Normalize()
	live.Store(&t)
}
