package netsvc_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"math"
	"net"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/robocupgc/gamecontroller/gamestate"
	"github.com/robocupgc/gamecontroller/netsvc"
	"github.com/robocupgc/gamecontroller/wire"
)

func validStatusMessage() []byte {
	buf := &bytes.Buffer{}
	buf.Write(wire.StatusHeader[:])
	buf.WriteByte(wire.ProtocolVersion)
	buf.WriteByte(5) // player number
	buf.WriteByte(1) // team number
	buf.WriteByte(0) // fallen
	for _, f := range []float32{1.5, -2.5, 0, 0.2, 3, 4} {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(f))
		buf.Write(b[:])
	}
	return buf.Bytes()
}

func loopbackUDP() *net.UDPConn {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	Expect(err).NotTo(HaveOccurred())
	return conn
}

var _ = Describe("MonitorRequestListener", func() {
	It("registers the sender of a well-formed request and ignores garbage", func() {
		conn := loopbackUDP()
		monitors := netsvc.NewMonitorRegistry()
		players := netsvc.NewPlayerHosts()
		listener := netsvc.NewMonitorRequestListener(conn, monitors, players, nil, nil)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() { listener.Run(ctx); close(done) }()

		client, err := net.DialUDP("udp4", nil, conn.LocalAddr().(*net.UDPAddr))
		Expect(err).NotTo(HaveOccurred())
		defer client.Close()

		_, err = client.Write([]byte("garbage"))
		Expect(err).NotTo(HaveOccurred())

		req := append(append([]byte{}, wire.MonitorRequestHeader[:]...), wire.ProtocolVersion)
		_, err = client.Write(req)
		Expect(err).NotTo(HaveOccurred())

		Eventually(func() int { return len(monitors.Active()) }, time.Second).Should(Equal(1))

		cancel()
		Eventually(done, time.Second).Should(BeClosed())
	})

	It("ignores a request from a host already known to be a player", func() {
		conn := loopbackUDP()
		monitors := netsvc.NewMonitorRegistry()
		players := netsvc.NewPlayerHosts()
		listener := netsvc.NewMonitorRequestListener(conn, monitors, players, nil, nil)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go listener.Run(ctx)

		client, err := net.DialUDP("udp4", nil, conn.LocalAddr().(*net.UDPAddr))
		Expect(err).NotTo(HaveOccurred())
		defer client.Close()
		players.Mark(client.LocalAddr().(*net.UDPAddr).IP)

		req := append(append([]byte{}, wire.MonitorRequestHeader[:]...), wire.ProtocolVersion)
		_, err = client.Write(req)
		Expect(err).NotTo(HaveOccurred())

		Consistently(func() int { return len(monitors.Active()) }, 100*time.Millisecond).Should(Equal(0))
	})
})

type recordingStatusSink struct {
	received chan *wire.StatusMessage
}

func (s *recordingStatusSink) OnStatus(from *net.UDPAddr, msg *wire.StatusMessage) {
	s.received <- msg
}

var _ = Describe("StatusListener", func() {
	It("hands well-formed status messages to its sink and discards garbage", func() {
		conn := loopbackUDP()
		sink := &recordingStatusSink{received: make(chan *wire.StatusMessage, 1)}
		listener := netsvc.NewStatusListener(conn, sink, nil, nil, nil, nil)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go listener.Run(ctx)

		client, err := net.DialUDP("udp4", nil, conn.LocalAddr().(*net.UDPAddr))
		Expect(err).NotTo(HaveOccurred())
		defer client.Close()

		_, err = client.Write(make([]byte, 3))
		Expect(err).NotTo(HaveOccurred())

		Consistently(sink.received, 100*time.Millisecond).ShouldNot(Receive())
	})

	It("marks the sender as a player and tears down any monitor lease it held", func() {
		conn := loopbackUDP()
		sink := &recordingStatusSink{received: make(chan *wire.StatusMessage, 1)}
		monitors := netsvc.NewMonitorRegistry()
		players := netsvc.NewPlayerHosts()
		listener := netsvc.NewStatusListener(conn, sink, monitors, players, nil, nil)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go listener.Run(ctx)

		client, err := net.DialUDP("udp4", nil, conn.LocalAddr().(*net.UDPAddr))
		Expect(err).NotTo(HaveOccurred())
		defer client.Close()

		hostIP := client.LocalAddr().(*net.UDPAddr).IP
		monitors.Register(&net.UDPAddr{IP: hostIP, Port: 9999})
		Expect(monitors.Active()).To(HaveLen(1))

		_, err = client.Write(validStatusMessage())
		Expect(err).NotTo(HaveOccurred())

		Eventually(sink.received, time.Second).Should(Receive())
		Expect(players.IsPlayer(hostIP)).To(BeTrue())
		Eventually(func() int { return len(monitors.Active()) }, time.Second).Should(Equal(0))
	})
})

var _ = Describe("TeamMessageListener", func() {
	It("reports a TeamMessageEvent for every datagram received", func() {
		conn := loopbackUDP()
		events := make(chan netsvc.TeamMessageEvent, 4)
		listener := netsvc.NewTeamMessageListener(conn, events, gamestate.Home, nil, nil)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go listener.Run(ctx)

		client, err := net.DialUDP("udp4", nil, conn.LocalAddr().(*net.UDPAddr))
		Expect(err).NotTo(HaveOccurred())
		defer client.Close()

		_, err = client.Write([]byte("hello"))
		Expect(err).NotTo(HaveOccurred())

		var got netsvc.TeamMessageEvent
		Eventually(events, time.Second).Should(Receive(&got))
		Expect(got).To(Equal(netsvc.TeamMessageEvent{Side: gamestate.Home, Illegal: false}))
	})
})
