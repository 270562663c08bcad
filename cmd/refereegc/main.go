// Command refereegc runs the referee control engine: it owns the
// authoritative game, broadcasts control messages to players and monitors,
// ingests player status/team-message/monitor-registration datagrams, and
// appends every applied action to a persisted log.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/robocupgc/gamecontroller/engine"
	"github.com/robocupgc/gamecontroller/eventloop"
	"github.com/robocupgc/gamecontroller/gamestate"
	"github.com/robocupgc/gamecontroller/logsink"
	"github.com/robocupgc/gamecontroller/netsvc"
	"github.com/robocupgc/gamecontroller/support/logging"
	"github.com/robocupgc/gamecontroller/support/network"
)

func main() {
	cfg := parseFlags()

	zlog, err := buildZapLogger(cfg.debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "refereegc: could not build logger: %v\n", err)
		os.Exit(1)
	}
	defer zlog.Sync()
	logger := logging.Must(zlog.Sugar())

	if err := run(cfg, logger); err != nil {
		logger.Errorf("refereegc: %v", err)
		os.Exit(1)
	}
}

func buildZapLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

type flags struct {
	homeName, awayName     string
	homeNumber, awayNumber int
	playersPerTeam         int
	challengeMode          bool

	controlPort            int
	teamMessagePort        int
	statusPort             int
	monitorRequestPort     int
	broadcastAddr          string
	teamMessageMulticast   bool
	teamMessageMulticastIP string

	logDir string
	fsync  bool

	metricsAddr string
	debug       bool
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.homeName, "home-name", "Home", "Short name of the home team, for the log file name")
	flag.StringVar(&f.awayName, "away-name", "Away", "Short name of the away team, for the log file name")
	flag.IntVar(&f.homeNumber, "home-number", 1, "Home team's competition number")
	flag.IntVar(&f.awayNumber, "away-number", 2, "Away team's competition number")
	flag.IntVar(&f.playersPerTeam, "players-per-team", 7, "Players fielded per team")
	flag.BoolVar(&f.challengeMode, "challenge-mode", false, "Run under challenge-mode rules")

	flag.IntVar(&f.controlPort, "control-port", 3838, "UDP port control messages are broadcast to")
	flag.IntVar(&f.teamMessagePort, "team-message-port", 3939, "Base UDP port team messages are received on (team number n listens on this port+n)")
	flag.IntVar(&f.statusPort, "status-port", 3939+100, "UDP port player status messages are received on")
	flag.IntVar(&f.monitorRequestPort, "monitor-request-port", 3636, "UDP port monitor registration requests are received on")
	flag.StringVar(&f.broadcastAddr, "broadcast-addr", "255.255.255.255", "Broadcast address control messages are sent to")
	flag.BoolVar(&f.teamMessageMulticast, "team-message-multicast", false, "Join the team-message multicast group instead of binding plain unicast sockets")
	flag.StringVar(&f.teamMessageMulticastIP, "team-message-multicast-addr", "239.0.0.1", "Multicast group team-message sockets join when -team-message-multicast is set")

	flag.StringVar(&f.logDir, "log-dir", ".", "Directory the per-run log file is written to")
	flag.BoolVar(&f.fsync, "fsync", false, "fsync the log file after every entry")

	flag.StringVar(&f.metricsAddr, "metrics-addr", ":9090", "Address the Prometheus metrics endpoint listens on")
	flag.BoolVar(&f.debug, "debug", false, "Use a development logger and verbose log levels")

	flag.Parse()
	return f
}

func run(f flags, logger logging.L) error {
	reg := prometheus.NewRegistry()
	engine.RegisterMonitoring(reg)
	eventloop.RegisterMonitoring(reg)
	netsvc.RegisterMonitoring(reg)
	logsink.RegisterMonitoring(reg)

	params := gamestate.DefaultParams()
	params.PlayersPerTeam = f.playersPerTeam
	params.ChallengeMode = f.challengeMode

	start := time.Now()
	logPath := filepath.Join(f.logDir, logsink.FileName(start, f.homeName, f.awayName))
	sink, err := logsink.Open(logPath, f.fsync)
	if err != nil {
		return fmt.Errorf("opening log sink: %w", err)
	}
	defer sink.Close()
	sink.LogMetadata(map[string]interface{}{
		"home":           f.homeName,
		"away":           f.awayName,
		"homeNumber":     f.homeNumber,
		"awayNumber":     f.awayNumber,
		"playersPerTeam": f.playersPerTeam,
		"challengeMode":  f.challengeMode,
		"startedAt":      start,
	})

	e := engine.New(params, f.homeNumber, f.awayNumber, sink, logger)
	loop := eventloop.New(e, logger, 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svcConfig := netsvc.Config{
		ControlPort:        f.controlPort,
		TeamMessagePort:    f.teamMessagePort,
		StatusPort:         f.statusPort,
		MonitorRequestPort: f.monitorRequestPort,
	}
	closers, err := startNetwork(ctx, svcConfig, f, e, loop, sink, logger)
	if err != nil {
		return fmt.Errorf("starting network services: %w", err)
	}
	defer closeAll(closers)

	go serveMetrics(f.metricsAddr, reg, logger)

	go loop.Run(ctx)

	waitForShutdown(logger)
	cancel()
	return nil
}

// startNetwork binds every UDP socket the referee control system needs and
// launches its listener/sender goroutine. Every goroutine is driven by ctx
// and stops on cancellation; the returned closers release the sockets that
// ctx cancellation alone does not close (the outbound player/monitor
// sockets, which are never read from).
func startNetwork(ctx context.Context, cfg netsvc.Config, f flags, e *engine.Engine, loop *eventloop.Loop, raw netsvc.RawSink, logger logging.L) ([]func() error, error) {
	var closers []func() error

	monitors := netsvc.NewMonitorRegistry()
	players := netsvc.NewPlayerHosts()

	monitorReqConn, err := net.ListenUDP("udp4", &net.UDPAddr{Port: cfg.MonitorRequestPort})
	if err != nil {
		return nil, fmt.Errorf("binding monitor request port: %w", err)
	}
	go netsvc.NewMonitorRequestListener(monitorReqConn, monitors, players, raw, logger).Run(ctx)

	statusConn, err := net.ListenUDP("udp4", &net.UDPAddr{Port: cfg.StatusPort})
	if err != nil {
		return nil, fmt.Errorf("binding status port: %w", err)
	}
	go netsvc.NewStatusListener(statusConn, loop.StatusSink(), monitors, players, raw, logger).Run(ctx)

	var multicastIP net.IP
	if f.teamMessageMulticast {
		multicastIP, err = network.ParseIP4Address(f.teamMessageMulticastIP)
		if err != nil {
			return nil, fmt.Errorf("parsing team message multicast address: %w", err)
		}
	}

	for _, team := range [2]struct {
		side   gamestate.Side
		number int
	}{
		{gamestate.Home, f.homeNumber},
		{gamestate.Away, f.awayNumber},
	} {
		port := cfg.TeamMessagePort + team.number
		var conn *net.UDPConn
		if f.teamMessageMulticast {
			conn, err = (&network.ResolvedConn{
				Addr: &net.IPNet{IP: multicastIP},
				Port: port,
			}).ListenMulticastUDP4()
		} else {
			conn, err = net.ListenUDP("udp4", &net.UDPAddr{Port: port})
		}
		if err != nil {
			return nil, fmt.Errorf("binding team message port for %s: %w", team.side, err)
		}
		go netsvc.NewTeamMessageListener(conn, loop.TeamMessageEvents(), team.side, raw, logger).Run(ctx)
	}

	broadcastIP, err := network.ParseIP4Address(f.broadcastAddr)
	if err != nil {
		return nil, fmt.Errorf("parsing broadcast address: %w", err)
	}
	broadcastAddr := &net.UDPAddr{IP: broadcastIP, Port: cfg.ControlPort}
	playerConn, err := net.DialUDP("udp4", nil, broadcastAddr)
	if err != nil {
		return nil, fmt.Errorf("dialing player broadcast address: %w", err)
	}
	playerSender := network.UDPDatagramSender(playerConn)
	closers = append(closers, playerSender.Close)

	monitorConn, err := net.ListenUDP("udp4", &net.UDPAddr{})
	if err != nil {
		return nil, fmt.Errorf("binding monitor send socket: %w", err)
	}
	closers = append(closers, monitorConn.Close)

	sender := netsvc.NewControlSender(e, monitors, playerSender, monitorConn, logger)
	go sender.Run(ctx)

	return closers, nil
}

func closeAll(closers []func() error) {
	for _, c := range closers {
		_ = c()
	}
}

func serveMetrics(addr string, reg *prometheus.Registry, logger logging.L) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Errorf("refereegc: metrics server stopped: %v", err)
	}
}

func waitForShutdown(logger logging.L) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	logger.Infof("refereegc: received %s, shutting down", s)
}
