package config

import (
	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"HaliteBot/modules/kit/errx"
)

type options struct {
	onChange func(fsnotify.Event)
	onError  func(error)
	watch    bool
}

type Option func(*options)

// WithOnChange 配置文件变更且重新解码成功后回调。
func WithOnChange(fn func(fsnotify.Event)) Option {
	return func(o *options) { o.onChange = fn }
}

// WithOnError 热更新解码失败时回调，target 保持旧值。
func WithOnError(fn func(error)) Option {
	return func(o *options) { o.onError = fn }
}

// WithoutWatch 只读取一次，不监听文件。
func WithoutWatch() Option {
	return func(o *options) { o.watch = false }
}

// Load 读取 YAML 配置并解码到 target，默认监听文件变化。
// 热更新在 fsnotify 的 goroutine 里直接写 target，调用方应把 target 当作暂存区，
// 在 onChange 回调里拷贝出去再发布。
func Load(configPath string, target any, opts ...Option) error {
	o := options{watch: true}
	for _, opt := range opts {
		opt(&o)
	}
	if !fileExist(configPath) {
		return errx.ErrBadConfig.WithData("path", configPath).WithCause(errNotFound)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return errx.ErrBadConfig.WithData("path", configPath).WithCause(err)
	}
	if err := decode(v, target); err != nil {
		return errx.ErrBadConfig.WithData("path", configPath).WithCause(err)
	}

	if o.watch {
		v.OnConfigChange(func(e fsnotify.Event) {
			if err := decode(v, target); err != nil {
				if o.onError != nil {
					o.onError(errx.ErrBadConfig.WithData("path", configPath).WithCause(err))
				}
				return
			}
			if o.onChange != nil {
				o.onChange(e)
			}
		})
		v.WatchConfig()
	}
	return nil
}

func decode(v *viper.Viper, target any) error {
	return v.Unmarshal(target, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
}
