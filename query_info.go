package gonativeblock

import (
	"time"
)

// QueryInfo keeps the latest profile, progress and timing reported for a query.
type QueryInfo struct {
	ProfileInfo *ProfileInfo
	Progress    *Progress
	Elapsed     time.Duration

	elapsedSet bool
}

// StoreProfile keeps p as the latest profile.
func (q *QueryInfo) StoreProfile(p ProfileInfo) {
	q.ProfileInfo = &p
}

// StoreProgress keeps p as the latest progress, unless p reports no bytes
// while the stored progress does.
func (q *QueryInfo) StoreProgress(p Progress) {
	if p.Bytes == 0 && q.Progress != nil && q.Progress.Bytes != 0 {
		logger.Debugf("ignoring progress without bytes: rows=%v total_rows=%v", p.Rows, p.TotalRows)
		return
	}
	q.Progress = &p
}

// StoreElapsed records the query's elapsed time. Only the first call counts.
func (q *QueryInfo) StoreElapsed(d time.Duration) {
	if q.elapsedSet {
		logger.Debugf("elapsed time already recorded as %v, ignoring %v", q.Elapsed, d)
		return
	}
	q.Elapsed = d
	q.elapsedSet = true
}

// Store dispatches packet to StoreProfile or StoreProgress. Other packets are ignored.
func (q *QueryInfo) Store(packet *Packet) {
	switch {
	case packet.ProfileInfo != nil:
		q.StoreProfile(*packet.ProfileInfo)
	case packet.Progress != nil:
		q.StoreProgress(*packet.Progress)
	}
}
