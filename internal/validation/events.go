package validation

// EventID names one of the closed set of rodeo events a registrant can
// enter. Values outside this set are an UnknownEventID finding, not a
// decode error: the batch as a whole still parses.
type EventID string

const (
	FlagRacing             EventID = "FlagRacing"
	ChuteDogging           EventID = "ChuteDogging"
	CalfRopingOnFoot       EventID = "CalfRopingOnFoot"
	SteerRiding            EventID = "SteerRiding"
	RanchSaddleBroncRiding EventID = "RanchSaddleBroncRiding"
	BullRiding             EventID = "BullRiding"
	PoleBending            EventID = "PoleBending"
	BarrelRacing           EventID = "BarrelRacing"
	MountedBreakaway       EventID = "MountedBreakaway"

	TeamRopingHeader EventID = "TeamRopingHeader"
	TeamRopingHeeler EventID = "TeamRopingHeeler"
	WildDragRace     EventID = "WildDragRace"
	GoatDressing     EventID = "GoatDressing"
	SteerDecorating  EventID = "SteerDecorating"
)

var soloEvents = map[EventID]bool{
	FlagRacing:             true,
	ChuteDogging:           true,
	CalfRopingOnFoot:       true,
	SteerRiding:            true,
	RanchSaddleBroncRiding: true,
	BullRiding:             true,
	PoleBending:            true,
	BarrelRacing:           true,
	MountedBreakaway:       true,
}

var requiredPartners = map[EventID]int{
	TeamRopingHeader: 1,
	TeamRopingHeeler: 1,
	WildDragRace:     2,
	GoatDressing:     1,
	SteerDecorating:  1,
}

// Known reports whether id is a recognized event.
func (id EventID) Known() bool {
	if soloEvents[id] {
		return true
	}
	_, ok := requiredPartners[id]
	return ok
}

// RequiredPartnerCount returns how many partners a team event requires,
// and false for solo events or unknown events.
func (id EventID) RequiredPartnerCount() (int, bool) {
	n, ok := requiredPartners[id]
	return n, ok
}

// MinimumGoRounds is the fewest total event-round entries a registration
// must have across all its events.
const MinimumGoRounds = 2

// MaxUseThisRecordFixes caps the number of UseThisRecord sibling fixes
// emitted per ambiguous match, per §4.6.
const MaxUseThisRecordFixes = 5
