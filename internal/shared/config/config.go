package config

import (
	"errors"
	"os"
	"path/filepath"

	"HaliteBot/modules/kit/errx"
)

const DefaultRelPath = "configs/conf.yml"

var errNotFound = errors.New("config file not found")

// Resolve 确定配置文件路径。
// 约定：
// 1) 传入 cfgName（相对/绝对路径）则优先使用；
// 2) 否则从当前目录开始向上查找 `configs/conf.yml`。
func Resolve(cfgName string) (string, error) {
	curDir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if cfgName != "" {
		if filepath.IsAbs(cfgName) {
			return cfgName, nil
		}
		return filepath.Join(curDir, cfgName), nil
	}
	return Find(curDir)
}

// Find 从 startDir 向上逐级查找 configs/conf.yml。
func Find(startDir string) (string, error) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, DefaultRelPath)
		if fileExist(candidate) {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errx.ErrBadConfig.WithData("start_dir", startDir).WithCause(errNotFound)
		}
		dir = parent
	}
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
