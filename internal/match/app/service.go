package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"HaliteBot/internal/match/domain"
	"HaliteBot/internal/match/infra/runner"
	"HaliteBot/modules/kit/logx"
)

type GameRunner interface {
	Run(ctx context.Context, g domain.Game) (runner.Outcome, error)
}

type ResultRepo interface {
	Save(ctx context.Context, res *domain.Result) error
}

type Options struct {
	Batch       string
	Games       int
	GameTimeout time.Duration
	Schedule    domain.ScheduleConfig
	// 每局结束后回调，cmd 用它打印进度
	OnGame func(res domain.Result)
}

type Service struct {
	runner GameRunner
	repo   ResultRepo
	log    logx.Logger
}

func NewService(r GameRunner, repo ResultRepo, log logx.Logger) *Service {
	if log == nil {
		log = logx.Nop()
	}
	return &Service{runner: r, repo: repo, log: log}
}

// Run 按赛程跑完 Games 局，返回累计战绩。单局进程失败只记日志并计为未判出，
// ctx 取消时提前返回已完成部分。
func (s *Service) Run(ctx context.Context, opts Options) (domain.Tally, error) {
	var tally domain.Tally
	sched := domain.NewSchedule(opts.Schedule)
	botA, botB := opts.Schedule.BotA, opts.Schedule.BotB

	for i := 0; i < opts.Games; i++ {
		if err := ctx.Err(); err != nil {
			return tally, nil
		}
		g := sched.Next()
		outcome, err := s.play(ctx, g, opts.GameTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return tally, nil
			}
			logx.ReportSysErrorWithLoggerContext(ctx, s.log, logx.NewSysLog("batch game", err),
				zap.Int("game", g.Number))
		}
		tally.Record(outcome.Winner, botA, botB)

		res := domain.Result{
			Batch:  opts.Batch,
			GameNo: g.Number,
			Seed:   g.Seed,
			Width:  g.Width,
			Height: g.Height,
			Seat1:  g.Seat1,
			Seat2:  g.Seat2,
			Winner: outcome.Winner,
			WinsA:  tally.WinsA,
			WinsB:  tally.WinsB,
			WinPct: tally.WinPct(),
			Elo:    tally.Elo(),
			LOS:    tally.LOS(),
		}
		if err := s.repo.Save(ctx, &res); err != nil {
			return tally, err
		}
		s.log.WithContext(ctx).Info("game finished",
			zap.Int("game", g.Number),
			zap.Int("seed", g.Seed),
			zap.Int("size", g.Width),
			zap.String("winner", outcome.Winner),
			zap.Int("wins_a", tally.WinsA),
			zap.Int("wins_b", tally.WinsB),
			zap.Float64("win_pct", res.WinPct),
			zap.Float64("elo", res.Elo),
			zap.Float64("los", res.LOS),
		)
		if opts.OnGame != nil {
			opts.OnGame(res)
		}
	}
	return tally, nil
}

func (s *Service) play(ctx context.Context, g domain.Game, timeout time.Duration) (runner.Outcome, error) {
	if timeout <= 0 {
		return s.runner.Run(ctx, g)
	}
	gctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.runner.Run(gctx, g)
}
