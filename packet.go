package gonativeblock

import (
	"context"
	"io"
)

// Progress is a server progress report. Counters are deltas since the
// previous report.
type Progress struct {
	Rows      uint64
	Bytes     uint64
	TotalRows uint64
}

// ProfileInfo is the server's profiling summary of a query.
type ProfileInfo struct {
	Rows                      uint64
	Blocks                    uint64
	Bytes                     uint64
	AppliedLimit              bool
	RowsBeforeLimit           uint64
	CalculatedRowsBeforeLimit bool
}

// Packet is one server message. At most one field is set; packets of other
// kinds have all fields nil and are skipped by the consumers of this package.
type Packet struct {
	Block       *Block
	Progress    *Progress
	ProfileInfo *ProfileInfo
}

// PacketStream is a pull source of packets. Next returns io.EOF once the
// stream is exhausted.
type PacketStream interface {
	Next(ctx context.Context) (*Packet, error)
}

type packetSlice struct {
	packets []*Packet
	pos     int
}

// NewPacketSlice returns a PacketStream over packets already in memory.
func NewPacketSlice(packets ...*Packet) PacketStream {
	return &packetSlice{packets: packets}
}

func (s *packetSlice) Next(ctx context.Context) (*Packet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.pos >= len(s.packets) {
		return nil, io.EOF
	}
	p := s.packets[s.pos]
	s.pos++
	return p, nil
}
