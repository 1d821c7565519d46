package recording

// Recorder captures the per-tick frame stream of a race for later
// replay.
type Recorder interface {
	Record(raceId string, msg string) error
	RecordMetadata(raceId string, trackName string) error
	Close(raceId string)
	Stop()
}
