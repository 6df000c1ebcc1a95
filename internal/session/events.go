package session

// EventType labels a playback state transition for the session log.
type EventType int

const (
	EventTrackStart EventType = iota
	EventTrackFinish
	EventTrackSkip
	EventPause
	EventResume
	EventFavourite
	EventQuit
)

func (t EventType) String() string {
	switch t {
	case EventTrackStart:
		return "track_start"
	case EventTrackFinish:
		return "track_finish"
	case EventTrackSkip:
		return "track_skip"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventFavourite:
		return "favourite"
	case EventQuit:
		return "quit"
	default:
		return "unknown"
	}
}
