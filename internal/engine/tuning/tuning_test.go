package tuning

import "testing"

func TestNormalize_零值回落默认(t *testing.T) {
	got := Tuning{CampaignEndTolerance: Int(4)}.Normalize()
	if got.EndTolerance() != 4 {
		t.Fatalf("期望保留覆盖值 4, got=%d", got.EndTolerance())
	}
	d := Default()
	if got.GrowthMultiplier != d.GrowthMultiplier || got.OverstackLimit != d.OverstackLimit {
		t.Fatalf("期望其他字段回落默认值, got=%+v", got)
	}
	n := Default().Normalize()
	if n.GrowthMultiplier != d.GrowthMultiplier || n.EndTolerance() != d.EndTolerance() {
		t.Fatalf("期望默认值 Normalize 后不变, got=%+v", n)
	}
}

func TestEndTolerance_零为合法取值(t *testing.T) {
	got := Tuning{CampaignEndTolerance: Int(0)}.Normalize()
	if got.CampaignEndTolerance == nil || *got.CampaignEndTolerance != 0 || got.EndTolerance() != 0 {
		t.Fatalf("显式配置的 0 应保留, got=%v", got.CampaignEndTolerance)
	}
	if v := (Tuning{}).Normalize().EndTolerance(); v != 10 {
		t.Fatalf("未填写时期望默认 10, got=%d", v)
	}
	if v := (Tuning{CampaignEndTolerance: Int(-1)}).EndTolerance(); v != 10 {
		t.Fatalf("负值期望回落默认 10, got=%d", v)
	}
}
