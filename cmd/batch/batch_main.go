package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"HaliteBot/internal/match/app"
	"HaliteBot/internal/match/domain"
	"HaliteBot/internal/match/infra/repo"
	"HaliteBot/internal/match/infra/runner"
	"HaliteBot/internal/shared/botconfig"
	"HaliteBot/internal/shared/infrastructure/db"
	"HaliteBot/internal/shared/logs"
	"HaliteBot/modules/kit/logx"
	"HaliteBot/modules/kit/tracex"
)

func main() {
	cfgPath := flag.String("config", "", "配置文件路径，默认向上查找 configs/conf.yml")
	games := flag.Int("games", 0, "覆盖 batch.games")
	flag.Parse()

	if err := botconfig.Load(*cfgPath, botconfig.Watcher{}); err != nil {
		panic(err)
	}
	conf := botconfig.Conf
	if err := logs.Init("batch", conf.Log); err != nil {
		panic(err)
	}
	defer logs.Logger().Sync()

	bc := conf.Batch
	if *games > 0 {
		bc.Games = *games
	}
	if bc.BotA == "" || bc.BotB == "" {
		logs.Fatal("batch.bot_a / batch.bot_b is required")
	}
	batch := tracex.NewTraceID()
	logs.Info("batch conf", zap.Any("batch", bc), zap.String("batch_id", batch))

	var results app.ResultRepo = repo.NewMemoryResultRepo()
	if conf.MySQL.Enabled {
		gormDB, err := db.Open(conf.MySQL)
		if err != nil {
			logs.Fatal("open db failed", zap.Error(err))
		}
		rr := repo.NewResultRepo(gormDB)
		if err := rr.Migrate(context.Background()); err != nil {
			logs.Fatal("migrate match_result failed", zap.Error(err))
		}
		results = rr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = tracex.WithTraceID(ctx, batch)

	svc := app.NewService(runner.NewHalite(bc.HaliteBin), results, logx.NewZapLogger(logs.Logger()))
	tally, err := svc.Run(ctx, app.Options{
		Batch:       batch,
		Games:       bc.Games,
		GameTimeout: bc.GameTimeout,
		Schedule: domain.ScheduleConfig{
			BotA:     bc.BotA,
			BotB:     bc.BotB,
			Seed:     bc.Seed,
			MinSize:  bc.MinSize,
			MaxSize:  bc.MaxSize,
			SizeStep: bc.SizeStep,
		},
		OnGame: func(res domain.Result) {
			fmt.Printf("  -> game %d/%d winner: %s %s %d %s %d win_pct: %.2f elo: %.2f los: %.2f\n",
				res.GameNo, bc.Games, res.Winner, bc.BotA, res.WinsA, bc.BotB, res.WinsB, res.WinPct, res.Elo, res.LOS)
		},
	})
	if err != nil {
		logx.ReportSysErrorWithLoggerContext(ctx, logx.NewZapLogger(logs.Logger()), logx.NewSysLog("batch run", err))
		os.Exit(1)
	}
	logs.Info("batch finished",
		zap.Int("games", tally.Games),
		zap.Int("wins_a", tally.WinsA),
		zap.Int("wins_b", tally.WinsB),
		zap.Float64("elo", tally.Elo()),
		zap.Float64("los", tally.LOS()),
	)
}
