package main

import (
	"net/rpc"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wfunc/bingoserver/broadcast"
	"github.com/wfunc/bingoserver/config"
	"github.com/wfunc/bingoserver/engine"
	"github.com/wfunc/bingoserver/logger"
	"github.com/wfunc/bingoserver/monitor"
	"github.com/wfunc/bingoserver/persistence"
	"github.com/wfunc/bingoserver/room"
	bingorpc "github.com/wfunc/bingoserver/rpc"
	"github.com/wfunc/bingoserver/server"
	"github.com/wfunc/bingoserver/services"
	"github.com/wfunc/bingoserver/session"
	"github.com/wfunc/bingoserver/timer"
)

func main() {
	// Initialize logger
	logger.Init()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	mon := monitor.NewMonitor("bingo")
	if cfg.Server.MetricsAddress != "" {
		mon.StartServer(cfg.Server.MetricsAddress)
	}

	// Snapshot backend
	backend, err := newBackend(cfg)
	if err != nil {
		logger.Log.Fatalf("Failed to initialize snapshot backend: %v", err)
	}
	backend = mon.InstrumentBackend(backend)

	// Room store and engine
	store := room.NewStore(backend)
	store.Restore()
	eng := engine.New(store)

	sessionManager := session.NewManager()
	broadcaster := broadcast.NewRoomBroadcaster(sessionManager)
	gameService := services.NewGameService(eng, broadcaster, mon)

	// Optional ops RPC surface
	var rpcServer *bingorpc.Server
	if cfg.Server.RPCAddress != "" {
		rpcServer, err = bingorpc.NewServer(cfg.Server.RPCAddress)
		if err != nil {
			logger.Log.Fatalf("Failed to create RPC server: %v", err)
		}
		rpc.Register(bingorpc.NewBingoService(gameService))
		go rpcServer.Start()
	}

	// Background chores: safety snapshot and room gauge refresh
	scheduler := timer.NewManager()
	scheduler.Schedule(time.Minute, time.Minute, func() {
		if err := store.Persist(); err != nil {
			logger.Log.Errorf("Periodic snapshot failed: %v", err)
		}
	})
	scheduler.Schedule(10*time.Second, 10*time.Second, func() {
		mon.SetActiveRooms(store.Len())
	})

	// Final best-effort persist on shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-shutdown
		logger.Log.Info("Shutting down, writing final snapshot")
		scheduler.Stop()
		if rpcServer != nil {
			rpcServer.Stop()
		}
		if err := store.Persist(); err != nil {
			logger.Log.Errorf("Final snapshot failed: %v", err)
		}
		backend.Close()
		logger.Sync()
		os.Exit(0)
	}()

	gameServer := server.NewGameServer(cfg.Server, cfg.Admin, gameService, sessionManager, mon)

	logger.Log.Infof("Starting bingo server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}

func newBackend(cfg *config.Config) (persistence.Backend, error) {
	switch cfg.Persistence.Backend {
	case "postgres":
		pg := cfg.Persistence.Postgres
		return persistence.NewGormPostgres(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
	default:
		return persistence.NewFileStore(cfg.Game.StateFile), nil
	}
}
