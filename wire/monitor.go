package wire

import "github.com/pkg/errors"

// MonitorRequestSize is the exact wire size of a monitor registration
// request: a 4-byte header plus a 1-byte version.
const MonitorRequestSize = 5

// DecodeMonitorRequest validates a monitor-request datagram. Any other
// content, including a short or long datagram, a wrong header, or a wrong
// version, is a structural rejection.
func DecodeMonitorRequest(data []byte) error {
	if len(data) != MonitorRequestSize {
		return errors.Wrapf(ErrMalformed, "monitor request has wrong length %d", len(data))
	}
	var header [4]byte
	copy(header[:], data[:4])
	if header != MonitorRequestHeader {
		return errors.Wrapf(ErrMalformed, "monitor request has wrong header %q", header)
	}
	if data[4] != ProtocolVersion {
		return errors.Wrapf(ErrMalformed, "monitor request has wrong version %d", data[4])
	}
	return nil
}
