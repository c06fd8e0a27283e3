package tuning

// Tuning 收拢引擎里所有经验阈值。数值来自对局调参，保持默认值不变；
// 通过配置覆盖时，未填写（零值）的项回落到默认值。
// CampaignEndTolerance 的 0 是合法取值（要求攻下全部敌格），因此用指针区分未填写。
type Tuning struct {
	// 成长阈值：strength >= production * GrowthMultiplier 才允许移动
	GrowthMultiplier int `yaml:"growth_multiplier" mapstructure:"growth_multiplier"`
	// 目标搜索最远距离 = min(w,h) / GoalDistanceDivisor
	GoalDistanceDivisor int `yaml:"goal_distance_divisor" mapstructure:"goal_distance_divisor"`
	// 距离容差带：距离不超过 best+GoalDistanceBand 时按价值比较
	GoalDistanceBand int `yaml:"goal_distance_band" mapstructure:"goal_distance_band"`
	// 目标点沿行进方向累计的格数
	GoalForwardSteps int `yaml:"goal_forward_steps" mapstructure:"goal_forward_steps"`
	// 目标点两侧垂直方向的观察深度
	GoalSideDepth int `yaml:"goal_side_depth" mapstructure:"goal_side_depth"`
	// 进攻区半径 = min(w,h) / AttackRadiusDivisor
	AttackRadiusDivisor int `yaml:"attack_radius_divisor" mapstructure:"attack_radius_divisor"`
	// 容忍多少个未攻下的敌格即判定战役结束
	CampaignEndTolerance *int `yaml:"campaign_end_tolerance" mapstructure:"campaign_end_tolerance"`
	StrengthCap          int  `yaml:"strength_cap" mapstructure:"strength_cap"`
	// 内部格 strength 超过该值时无视溢出直接前往目标
	OverflowMoverThreshold int `yaml:"overflow_mover_threshold" mapstructure:"overflow_mover_threshold"`
	// 同一目的地的流入总量上限，超出的移动会被撤回
	OverstackLimit int `yaml:"overstack_limit" mapstructure:"overstack_limit"`
}

const defaultEndTolerance = 10

func Int(v int) *int { return &v }

func Default() Tuning {
	return Tuning{
		GrowthMultiplier:       5,
		GoalDistanceDivisor:    2,
		GoalDistanceBand:       2,
		GoalForwardSteps:       4,
		GoalSideDepth:          2,
		AttackRadiusDivisor:    3,
		CampaignEndTolerance:   Int(defaultEndTolerance),
		StrengthCap:            255,
		OverflowMoverThreshold: 200,
		OverstackLimit:         275,
	}
}

// EndTolerance 返回生效的战役结束容忍值，未填写或为负时取默认值。
func (t Tuning) EndTolerance() int {
	if t.CampaignEndTolerance == nil || *t.CampaignEndTolerance < 0 {
		return defaultEndTolerance
	}
	return *t.CampaignEndTolerance
}

// Normalize 用默认值补齐零值字段。
func (t Tuning) Normalize() Tuning {
	d := Default()
	fill := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&t.GrowthMultiplier, d.GrowthMultiplier)
	fill(&t.GoalDistanceDivisor, d.GoalDistanceDivisor)
	fill(&t.GoalDistanceBand, d.GoalDistanceBand)
	fill(&t.GoalForwardSteps, d.GoalForwardSteps)
	fill(&t.GoalSideDepth, d.GoalSideDepth)
	fill(&t.AttackRadiusDivisor, d.AttackRadiusDivisor)
	t.CampaignEndTolerance = Int(t.EndTolerance())
	fill(&t.StrengthCap, d.StrengthCap)
	fill(&t.OverflowMoverThreshold, d.OverflowMoverThreshold)
	fill(&t.OverstackLimit, d.OverstackLimit)
	return t
}
