package wire_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/robocupgc/gamecontroller/wire"
)

func validMonitorRequest() []byte {
	data := make([]byte, wire.MonitorRequestSize)
	copy(data, wire.MonitorRequestHeader[:])
	data[4] = wire.ProtocolVersion
	return data
}

var _ = Describe("DecodeMonitorRequest", func() {
	It("accepts a well-formed request", func() {
		Expect(wire.DecodeMonitorRequest(validMonitorRequest())).To(Succeed())
	})

	It("rejects a datagram of the wrong length", func() {
		Expect(wire.DecodeMonitorRequest(validMonitorRequest()[:3])).To(HaveOccurred())
	})

	It("rejects a datagram with the wrong header", func() {
		data := validMonitorRequest()
		data[0] = 'X'
		Expect(wire.DecodeMonitorRequest(data)).To(HaveOccurred())
	})

	It("rejects a datagram with the wrong version", func() {
		data := validMonitorRequest()
		data[4] = wire.ProtocolVersion + 1
		Expect(wire.DecodeMonitorRequest(data)).To(HaveOccurred())
	})
})
