package botconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"HaliteBot/internal/engine/tuning"
)

const sampleConf = `
bot:
  name: zluhcs
  transport: stdio
  turn_budget: 800ms
  jwt_secret: local-secret
engine:
  growth_multiplier: 6
  campaign_end_tolerance: 12
debug:
  enabled: true
  http_port: 9100
`

func TestLoad_读取并补齐调参(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	p := filepath.Join(t.TempDir(), "conf.yml")
	if err := os.WriteFile(p, []byte(sampleConf), 0o644); err != nil {
		t.Fatalf("write err=%v", err)
	}
	if err := Load(p, Watcher{}); err != nil {
		t.Fatalf("Load err=%v", err)
	}

	if Conf.Bot.Name != "zluhcs" || Conf.Bot.TurnBudget != 800*time.Millisecond {
		t.Fatalf("bot 段解码错误: %+v", Conf.Bot)
	}
	got := Tuning()
	if got.GrowthMultiplier != 6 || got.EndTolerance() != 12 {
		t.Fatalf("期望覆盖值生效, got=%+v", got)
	}
	if got.StrengthCap != tuning.Default().StrengthCap {
		t.Fatalf("未填写的项应回落默认值, got=%d", got.StrengthCap)
	}
	if os.Getenv("JWT_SECRET") != "local-secret" {
		t.Fatalf("期望回填 JWT_SECRET")
	}
}

func TestSetTuning_零值补齐(t *testing.T) {
	SetTuning(tuning.Tuning{OverstackLimit: 300})
	got := Tuning()
	if got.OverstackLimit != 300 || got.GrowthMultiplier != 5 {
		t.Fatalf("期望 300/5, got=%+v", got)
	}
}

func TestLoad_容忍值可显式配置为零(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	p := filepath.Join(t.TempDir(), "conf.yml")
	conf := "engine:\n  campaign_end_tolerance: 0\n"
	if err := os.WriteFile(p, []byte(conf), 0o644); err != nil {
		t.Fatalf("write err=%v", err)
	}
	if err := Load(p, Watcher{}); err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if got := Tuning().EndTolerance(); got != 0 {
		t.Fatalf("期望保留 0, got=%d", got)
	}
}
