package state

// ActivityState is the persisted record of observed activity and
// notification bookkeeping. Written to the state file as JSON.
//
// The two timestamp fields are watermarks: they only move forward, one
// merge per tick. The three percentage flags are per-episode latches that
// clear whenever measured inactivity drops back below the matching cutoff.
// ThresholdReached is terminal: the engine sets it once and never clears
// it; only an external reset does.
type ActivityState struct {
	LastLoginTimestamp int64  `json:"last_login_timestamp"`
	LastInputTimestamp int64  `json:"last_input_timestamp"`
	Threshold30Sent    bool   `json:"monitoring_30_reached"`
	Threshold60Sent    bool   `json:"monitoring_60_reached"`
	Threshold90Sent    bool   `json:"monitoring_90_reached"`
	ThresholdReached   bool   `json:"threshold_reached"`
	ServiceDisabled    bool   `json:"service_disabled"`
	LastWeeklySentDate string `json:"last_weekly_sent_date,omitempty"`
}

// NewActivityState returns the all-zero default record used on first run
// and whenever the state file cannot be read.
func NewActivityState() *ActivityState {
	return &ActivityState{}
}

// LastActivity returns the later of the two watermarks as epoch seconds.
// Zero means no activity has ever been observed.
func (s *ActivityState) LastActivity() int64 {
	if s.LastInputTimestamp > s.LastLoginTimestamp {
		return s.LastInputTimestamp
	}
	return s.LastLoginTimestamp
}
