package wire_test

import (
	"bytes"
	"encoding/binary"
	"math"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/robocupgc/gamecontroller/wire"
)

func validStatusMessage() []byte {
	buf := &bytes.Buffer{}
	buf.Write(wire.StatusHeader[:])
	buf.WriteByte(wire.ProtocolVersion)
	buf.WriteByte(5)  // player number
	buf.WriteByte(1)  // team number
	buf.WriteByte(0)  // fallen
	writeFloat32(buf, 1.5)
	writeFloat32(buf, -2.5)
	writeFloat32(buf, 0)
	writeFloat32(buf, 0.2)
	writeFloat32(buf, 3)
	writeFloat32(buf, 4)
	return buf.Bytes()
}

func writeFloat32(buf *bytes.Buffer, f float32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(f))
	buf.Write(b[:])
}

var _ = Describe("DecodeStatusMessage", func() {
	It("accepts a well-formed status message", func() {
		msg, err := wire.DecodeStatusMessage(validStatusMessage())
		Expect(err).NotTo(HaveOccurred())
		Expect(msg.PlayerNumber).To(Equal(uint8(5)))
		Expect(msg.PoseX).To(Equal(float32(1.5)))
	})

	It("rejects a datagram of the wrong length", func() {
		_, err := wire.DecodeStatusMessage(validStatusMessage()[:10])
		Expect(err).To(HaveOccurred())
	})

	It("rejects a datagram with the wrong header", func() {
		data := validStatusMessage()
		data[0] = 'X'
		_, err := wire.DecodeStatusMessage(data)
		Expect(err).To(HaveOccurred())
	})

	It("rejects a datagram with the wrong version", func() {
		data := validStatusMessage()
		data[4] = wire.ProtocolVersion + 1
		_, err := wire.DecodeStatusMessage(data)
		Expect(err).To(HaveOccurred())
	})

	It("rejects an out-of-range player number", func() {
		data := validStatusMessage()
		data[5] = 0
		_, err := wire.DecodeStatusMessage(data)
		Expect(err).To(HaveOccurred())

		data[5] = 21
		_, err = wire.DecodeStatusMessage(data)
		Expect(err).To(HaveOccurred())
	})

	It("rejects an invalid fallen flag", func() {
		data := validStatusMessage()
		data[7] = 2
		_, err := wire.DecodeStatusMessage(data)
		Expect(err).To(HaveOccurred())
	})

	It("rejects a NaN float field", func() {
		data := validStatusMessage()
		binary.LittleEndian.PutUint32(data[8:12], math.Float32bits(float32(math.NaN())))
		_, err := wire.DecodeStatusMessage(data)
		Expect(err).To(HaveOccurred())
	})
})
