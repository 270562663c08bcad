package wire

import (
	"bytes"
	"math"

	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
)

// StatusMessage is the fixed-layout datagram a player sends back to the
// engine, reporting its pose and what it can see of the ball.
type StatusMessage struct {
	Header  [4]byte
	Version uint8

	PlayerNumber uint8
	TeamNumber   uint8
	Fallen       uint8

	PoseX     float32 `struc:",little"`
	PoseY     float32 `struc:",little"`
	PoseTheta float32 `struc:",little"`

	BallAge float32 `struc:",little"`
	BallX   float32 `struc:",little"`
	BallY   float32 `struc:",little"`
}

// StatusMessageSize is the exact wire size of a StatusMessage.
const StatusMessageSize = 4 + 1 + 1 + 1 + 1 + 4*3 + 4*3

// DecodeStatusMessage parses a status-message datagram. Any malformed
// header, version, out-of-range player number, or NaN float causes a
// structural rejection (a non-nil error); the caller discards the datagram.
func DecodeStatusMessage(data []byte) (*StatusMessage, error) {
	if len(data) != StatusMessageSize {
		return nil, errors.Wrapf(ErrMalformed, "status message has wrong length %d", len(data))
	}

	var msg StatusMessage
	if err := struc.Unpack(bytes.NewReader(data), &msg); err != nil {
		return nil, errors.Wrap(err, "wire: could not unpack status message")
	}

	if msg.Header != StatusHeader {
		return nil, errors.Wrapf(ErrMalformed, "status message has wrong header %q", msg.Header)
	}
	if msg.Version != ProtocolVersion {
		return nil, errors.Wrapf(ErrMalformed, "status message has wrong version %d", msg.Version)
	}
	if msg.PlayerNumber < 1 || int(msg.PlayerNumber) > 20 {
		return nil, errors.Wrapf(ErrMalformed, "status message has out-of-range player number %d", msg.PlayerNumber)
	}
	if msg.Fallen > 1 {
		return nil, errors.Wrapf(ErrMalformed, "status message has invalid fallen flag %d", msg.Fallen)
	}
	for _, f := range []float32{msg.PoseX, msg.PoseY, msg.PoseTheta, msg.BallAge, msg.BallX, msg.BallY} {
		if math.IsNaN(float64(f)) {
			return nil, errors.Wrap(ErrMalformed, "status message contains NaN")
		}
	}

	return &msg, nil
}
