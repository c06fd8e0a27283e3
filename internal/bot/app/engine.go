package app

import (
	"context"
	"errors"
	"time"

	"HaliteBot/internal/bot/domain"
	"HaliteBot/internal/engine/attack"
	"HaliteBot/internal/engine/grid"
	"HaliteBot/internal/engine/planner"
	"HaliteBot/internal/engine/tuning"
	"HaliteBot/internal/replay"
	"HaliteBot/internal/shared/transport"
	"HaliteBot/modules/kit/logx"
	"HaliteBot/modules/kit/tracex"

	"go.uber.org/zap"
)

type Options struct {
	BotName string
	Session string
	// 超过预算的回合以 WARN 记录，0 表示不检查
	TurnBudget time.Duration
	// 等待下一帧的超时，0 表示只受 ctx 控制
	ReadTimeout time.Duration
	Tuning      TuningSource
	Recorder    Recorder
	Publisher   SnapshotPublisher
	Health      HealthReporter
	Log         logx.Logger
	Now         func() time.Time
}

// Engine 驱动一局对局的回合循环，所有引擎状态只在 Run 所在的 goroutine 上读写。
type Engine struct {
	tr   transport.Transport
	opts Options

	self       grid.AgentID
	classifier *attack.Classifier
	planner    *planner.Planner
}

func NewEngine(tr transport.Transport, opts Options) *Engine {
	if opts.Tuning == nil {
		opts.Tuning = tuning.Default
	}
	if opts.Recorder == nil {
		opts.Recorder = replay.NopRepository{}
	}
	if opts.Log == nil {
		opts.Log = logx.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Session == "" {
		opts.Session = tracex.NewSessionID()
	}
	return &Engine{tr: tr, opts: opts}
}

func (e *Engine) Session() string { return e.opts.Session }

func (e *Engine) Planner() *planner.Planner { return e.planner }

// Prepare 用初始地图建立进攻区分类器和规划器。
func (e *Engine) Prepare(g *grid.Grid, self grid.AgentID) {
	t := e.opts.Tuning()
	e.self = self
	e.classifier = attack.New(g.Width(), g.Height(), t)
	e.planner = planner.New(self, e.classifier, t)
}

// Run 完成握手后逐回合规划，对局正常结束或 ctx 取消时返回 nil。
func (e *Engine) Run(ctx context.Context) error {
	initCtx := tracex.TurnContext(ctx, e.opts.Session, 0)
	g, self, err := e.tr.ReceiveInitialState(initCtx)
	if err != nil {
		if errors.Is(err, transport.ErrGameOver) || ctx.Err() != nil {
			return nil
		}
		return ErrHandshake.WithCause(err).WithData("stage", "receive_init")
	}
	e.Prepare(g, self)
	if err := e.tr.SendInit(initCtx, e.opts.BotName); err != nil {
		return ErrHandshake.WithCause(err).WithData("stage", "send_init")
	}
	e.opts.Log.WithContext(initCtx).Info("bot ready",
		zap.String("name", e.opts.BotName),
		zap.Int("self", int(self)),
		zap.Int("width", g.Width()),
		zap.Int("height", g.Height()),
	)

	e.setServing(true)
	defer e.setServing(false)

	prev := g
	for turn := 1; ; turn++ {
		if ctx.Err() != nil {
			return nil
		}
		tctx := tracex.TurnContext(ctx, e.opts.Session, turn)
		next, err := e.receive(tctx, prev)
		if errors.Is(err, transport.ErrGameOver) {
			e.opts.Log.WithContext(tctx).Info("game over", zap.Int("turns", turn-1))
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return ErrTransportBroken.WithCause(err).WithData("stage", "receive_frame")
		}
		if _, err := e.PlayTurn(tctx, turn, next); err != nil {
			if errors.Is(err, transport.ErrGameOver) {
				e.opts.Log.WithContext(tctx).Info("game over", zap.Int("turns", turn))
				return nil
			}
			return err
		}
		prev = next
	}
}

func (e *Engine) receive(ctx context.Context, prev *grid.Grid) (*grid.Grid, error) {
	if e.opts.ReadTimeout <= 0 {
		return e.tr.ReceiveTurnUpdate(ctx, prev)
	}
	rctx, cancel := context.WithTimeout(ctx, e.opts.ReadTimeout)
	defer cancel()
	return e.tr.ReceiveTurnUpdate(rctx, prev)
}

// PlayTurn 规划并发送一回合的移动，随后做战役结束判定、回放记录和快照发布。
func (e *Engine) PlayTurn(ctx context.Context, turn int, g *grid.Grid) (domain.TurnSnapshot, error) {
	start := e.opts.Now()
	e.planner.SetTuning(e.opts.Tuning())

	wasActive := e.classifier.Active()
	plan := e.planner.Plan(g)
	owned := g.CountOwned(e.self)
	if err := verifyPlan(g, e.self, plan.Moves, owned); err != nil {
		return domain.TurnSnapshot{}, err
	}
	if err := e.tr.SendMoves(ctx, plan.Moves); err != nil {
		if errors.Is(err, transport.ErrGameOver) {
			return domain.TurnSnapshot{}, err
		}
		return domain.TurnSnapshot{}, ErrTransportBroken.WithCause(err).WithData("stage", "send_moves")
	}

	attacking := e.classifier.Active()
	enemy := e.classifier.Enemy()
	var labels []int
	if wasActive || plan.Engaged {
		labels = e.classifier.Labels()
	}
	ended, progress := e.classifier.CheckCampaignEnd(g, e.self)
	if ended {
		e.opts.Log.WithContext(ctx).Info("campaign ended",
			zap.Int("enemy", int(enemy)),
			zap.Int("enemy_territory", progress.EnemyTerritory),
			zap.Int("my_count", progress.MyCount),
		)
	}
	if plan.Engaged {
		e.opts.Log.WithContext(ctx).Info("campaign engaged", zap.Int("enemy", int(enemy)))
	}

	now := e.opts.Now()
	elapsed := now.Sub(start)
	if labels != nil {
		e.record(ctx, turn, g, plan, labels, attacking, ended, enemy, progress, now)
	}

	snap := domain.TurnSnapshot{
		Session:   e.opts.Session,
		Turn:      turn,
		Self:      int(e.self),
		Attacking: e.classifier.Active(),
		Engaged:   plan.Engaged,
		Ended:     ended,
		Enemy:     int(enemy),
		Width:     g.Width(),
		Height:    g.Height(),
		Owned:     owned,
		Moves:     len(plan.Moves),
		Revoked:   plan.Revoked,
		Progress:  domain.Progress{EnemyTerritory: progress.EnemyTerritory, MyCount: progress.MyCount},
		ElapsedMS: elapsed.Milliseconds(),
		At:        now,
		Labels:    labels,
	}
	if e.opts.Publisher != nil {
		e.opts.Publisher.Publish(snap)
	}

	logx.ReportTurnWithLoggerContext(ctx, e.opts.Log, logx.TurnLog{
		Owned:     owned,
		Moves:     len(plan.Moves),
		Attacking: attacking,
		Elapsed:   elapsed,
	}, e.opts.TurnBudget, zap.Int("revoked", plan.Revoked))
	return snap, nil
}

func (e *Engine) record(ctx context.Context, turn int, g *grid.Grid, plan *planner.Plan, labels []int,
	attacking, ended bool, enemy grid.AgentID, progress attack.Progress, at time.Time) {
	moves := make([]replay.Move, 0, len(plan.Moves))
	for _, m := range plan.Moves {
		moves = append(moves, replay.Move{
			X:         m.X,
			Y:         m.Y,
			Direction: int(m.Direction),
			Reason:    plan.Decisions[g.Index(m.X, m.Y)].Reason.String(),
		})
	}
	rec := replay.TurnRecord{
		Session:        e.opts.Session,
		Turn:           turn,
		Self:           int(e.self),
		Attacking:      attacking,
		Engaged:        plan.Engaged,
		Ended:          ended,
		Enemy:          int(enemy),
		EnemyTerritory: progress.EnemyTerritory,
		MyCount:        progress.MyCount,
		Width:          g.Width(),
		Height:         g.Height(),
		Labels:         labels,
		Moves:          moves,
		RecordedAt:     at,
	}
	if err := e.opts.Recorder.Save(ctx, rec); err != nil {
		logx.ReportSysErrorWithLoggerContext(ctx, e.opts.Log, logx.NewSysLog("replay_save",
			Wrap(CodeUnavailable, "回放记录保存失败", err)))
	}
}

func (e *Engine) setServing(serving bool) {
	if e.opts.Health != nil {
		e.opts.Health.SetServing(serving)
	}
}

// verifyPlan 检查每个己方格恰好一条移动。
func verifyPlan(g *grid.Grid, self grid.AgentID, moves []grid.Move, owned int) error {
	if len(moves) != owned {
		return ErrPlanInvariant.WithDataMap(map[string]any{"moves": len(moves), "owned": owned})
	}
	seen := make([]bool, g.Size())
	for _, m := range moves {
		i := g.Index(m.X, m.Y)
		if g.AtIndex(i).Owner != self {
			return ErrPlanInvariant.WithDataMap(map[string]any{"x": m.X, "y": m.Y, "reason": "not_owned"})
		}
		if seen[i] {
			return ErrPlanInvariant.WithDataMap(map[string]any{"x": m.X, "y": m.Y, "reason": "duplicate"})
		}
		seen[i] = true
	}
	return nil
}
