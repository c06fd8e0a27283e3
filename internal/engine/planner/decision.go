package planner

import "HaliteBot/internal/engine/grid"

// Reason 标明一次决策走的是哪条分支。
type Reason int

const (
	ReasonNone Reason = iota
	// 目的地守军弱于自身，直接占领
	ReasonCapture
	// 占领且朝进攻区标签更高处推进
	ReasonAttack
	// 未达成长阈值，原地积累
	ReasonGrow
	// 战役中朝更高标签的邻居压上
	ReasonPress
	// 内部格前往最近的边界目标
	ReasonGoal
	// 避免溢出，改投余量最大的邻居
	ReasonRedistribute
	// 边界格没有好的选择
	ReasonHold
	// 边界预处理中被调去支援邻居
	ReasonHelp
	// 复核阶段因流入过量被撤回
	ReasonRevoked
)

func (r Reason) String() string {
	switch r {
	case ReasonCapture:
		return "capture"
	case ReasonAttack:
		return "attack"
	case ReasonGrow:
		return "grow"
	case ReasonPress:
		return "press"
	case ReasonGoal:
		return "goal"
	case ReasonRedistribute:
		return "redistribute"
	case ReasonHold:
		return "hold"
	case ReasonHelp:
		return "help"
	case ReasonRevoked:
		return "revoked"
	}
	return "none"
}

// Decision 是单个格子的决策：Still 或 Move(direction, reason)。
type Decision struct {
	Direction grid.Direction
	Reason    Reason
}

func Still(r Reason) Decision {
	return Decision{Direction: grid.Still, Reason: r}
}

// Move 的 d 必须是四个基本方向之一。
func Move(d grid.Direction, r Reason) Decision {
	if d == grid.Still {
		panic("planner: Move with Still direction")
	}
	return Decision{Direction: d, Reason: r}
}

func (d Decision) IsMove() bool { return d.Direction != grid.Still }

func (d Decision) String() string {
	if !d.IsMove() {
		return "still(" + d.Reason.String() + ")"
	}
	return d.Direction.String() + "(" + d.Reason.String() + ")"
}
