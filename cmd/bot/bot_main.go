package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"HaliteBot/internal/bot/actors"
	"HaliteBot/internal/bot/app"
	debughttp "HaliteBot/internal/bot/interfaces/handler/http"
	"HaliteBot/internal/engine/tuning"
	"HaliteBot/internal/replay"
	replaymongo "HaliteBot/internal/replay/infra/mongodb"
	"HaliteBot/internal/shared/botconfig"
	"HaliteBot/internal/shared/infrastructure/mongo"
	"HaliteBot/internal/shared/logs"
	"HaliteBot/internal/shared/transport"
	transportgrpc "HaliteBot/internal/shared/transport/grpc"
	transporthttp "HaliteBot/internal/shared/transport/http"
	"HaliteBot/internal/shared/transport/stdio"
	"HaliteBot/internal/shared/transport/ws"
	"HaliteBot/modules/kit/errx"
	"HaliteBot/modules/kit/logx"
	"HaliteBot/modules/kit/tracex"
)

const defaultBotName = "AttackBot"

func main() {
	cfgPath := flag.String("config", "", "配置文件路径，默认向上查找 configs/conf.yml")
	probe := flag.String("probe", "", "查询 host:port 上 bot 的 grpc 健康状态后退出")
	flag.Parse()

	if *probe != "" {
		os.Exit(runProbe(*probe))
	}

	err := botconfig.Load(*cfgPath, botconfig.Watcher{
		OnReload: func(t tuning.Tuning) {
			logs.Info("engine tuning reloaded", zap.Any("tuning", t))
		},
		OnError: func(err error) {
			logs.Error("config reload failed", zap.Error(err))
		},
		OnLogLevel: logs.SetLevel,
	})
	// halite 在任意目录下拉起 bot，找不到配置时按默认值运行
	missingConf := errors.Is(err, errx.ErrBadConfig)
	if err != nil && !missingConf {
		fmt.Fprintln(os.Stderr, "load config failed:", err)
		os.Exit(1)
	}
	conf := botconfig.Conf
	if conf.Bot.Name == "" {
		conf.Bot.Name = defaultBotName
	}
	if err := logs.Init("bot", conf.Log); err != nil {
		panic(err)
	}
	defer logs.Logger().Sync()
	if missingConf {
		logs.Warn("config not found, running with defaults")
	}

	log := logx.NewZapLogger(logs.Logger())
	session := tracex.NewSessionID()
	logs.Info("conf", zap.Any("conf", conf), zap.String("session", session))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tr, closeTr, err := openTransport(ctx, conf.Bot, log)
	if err != nil {
		logs.Fatal("open transport failed", zap.Error(err))
	}
	defer closeTr()

	var recorder replay.Repository = replay.NewMemoryRepository(512)
	if conf.MongoDB.Enabled {
		client, err := mongo.Open(conf.MongoDB, logs.Logger())
		if err != nil {
			// 回放是旁路功能，连不上也照常对局
			logs.Error("open mongodb failed, replay kept in memory", zap.Error(err))
		} else {
			defer func() { _ = client.Disconnect(context.Background()) }()
			repo := replaymongo.NewTurnRepository(client.Database(conf.MongoDB.Database))
			if err := repo.EnsureIndexes(ctx); err != nil {
				logs.Warn("ensure replay indexes failed", zap.Error(err))
			}
			recorder = repo
		}
	}

	board := actors.NewBoard(0, time.Second)
	defer board.Shutdown()

	var health app.HealthReporter
	if conf.Debug.Enabled {
		health = startDebug(ctx, conf.Debug, board, recorder, session, log)
	}

	engine := app.NewEngine(tr, app.Options{
		BotName:     conf.Bot.Name,
		Session:     session,
		TurnBudget:  conf.Bot.TurnBudget,
		ReadTimeout: conf.Bot.ReadTimeout,
		Tuning:      botconfig.Tuning,
		Recorder:    recorder,
		Publisher:   board,
		Health:      health,
		Log:         log,
	})
	if err := engine.Run(ctx); err != nil {
		logx.ReportSysErrorWithLoggerContext(ctx, log, logx.NewSysLog("bot run", err))
		logs.Logger().Sync()
		os.Exit(1)
	}
}

func openTransport(ctx context.Context, cfg botconfig.BotConfig, log logx.Logger) (transport.Transport, func(), error) {
	switch cfg.Transport {
	case "", "stdio":
		return stdio.New(os.Stdin, os.Stdout, log), func() {}, nil
	case "ws":
		dctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		c, err := ws.Dial(dctx, cfg.WSURL, cfg.Name, log)
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	default:
		return nil, nil, errx.ErrBadConfig.WithData("transport", cfg.Transport)
	}
}

// startDebug 启动调试 HTTP 与 grpc 健康检查，随 ctx 结束关闭。
func startDebug(ctx context.Context, cfg botconfig.DebugConfig, board *actors.Board,
	replays replay.Repository, session string, log logx.Logger) app.HealthReporter {
	host := cfg.Host
	if host == "" {
		host = "127.0.0.1"
	}

	// gin 默认写 stdout，会污染对局协议
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = os.Stderr
	gin.DefaultErrorWriter = os.Stderr
	engine := gin.New()
	engine.Use(gin.Recovery())

	httpAddr := fmt.Sprintf("%s:%d", host, cfg.HTTPPort)
	server := transporthttp.NewHttpServer(httpAddr, engine, log)
	debughttp.NewDebugHandler(board, replays, session, cfg.RequireToken, log).RegisterRoutes(server.Group())
	go func() {
		logs.Info("debug http server started", zap.String("addr", httpAddr))
		if err := server.Start(); err != nil {
			logs.Error("debug http serve failed", zap.Error(err))
		}
	}()

	hs := transportgrpc.NewHealthServer()
	grpcAddr := fmt.Sprintf("%s:%d", host, cfg.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		logs.Error("listen health grpc failed", zap.Error(err))
	} else {
		go func() {
			logs.Info("health grpc server started", zap.String("addr", grpcAddr))
			if err := hs.Serve(lis); err != nil {
				logs.Error("health grpc serve failed", zap.Error(err))
			}
		}()
	}

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = server.Shutdown(sctx)
		hs.Stop()
	}()
	return hs
}

func runProbe(addr string) int {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	ctx = tracex.WithTraceID(ctx, tracex.NewTraceID())
	status, err := transportgrpc.Probe(ctx, addr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "probe failed:", err)
		return 2
	}
	fmt.Println(status.String())
	if status.String() != "SERVING" {
		return 1
	}
	return 0
}
