package recording

import (
	"encoding/json"
	"time"

	"github.com/Jukeman9/Gokart-racing/common/utils"
)

type RecordMetadata struct {
	TrackName string
	Date      string
}

// SingleRaceRecorder buffers one race's frame stream in memory and
// archives it on Close.
type SingleRaceRecorder struct {
	buffer         string
	filename       string
	recordMetadata *RecordMetadata
}

func MakeSingleRaceRecorder(filename string) Recorder {
	return &SingleRaceRecorder{
		buffer:         "",
		filename:       filename,
		recordMetadata: nil,
	}
}

func (r *SingleRaceRecorder) Stop() {}

func (r *SingleRaceRecorder) Close(raceId string) {
	if r.recordMetadata == nil {
		panic("Missing RecordMetadata")
	}

	metadata, err := json.Marshal(*r.recordMetadata)
	utils.Check(err, "Could not serialize RecordMetadata")

	files := make([]ArchiveFile, 0, 2)

	files = append(files, ArchiveFile{
		Name: "RecordMetadata",
		Body: string(metadata),
	})

	files = append(files, ArchiveFile{
		Name: "Record",
		Body: r.buffer,
	})

	err = MakeArchive(r.filename+".zip", files)
	utils.CheckWithFunc(err, func() string {
		return "could not create record archive: " + err.Error()
	})

	utils.Debug("SingleRaceRecorder", "write record archive")
}

func (r *SingleRaceRecorder) RecordMetadata(raceId string, trackName string) error {
	r.recordMetadata = &RecordMetadata{
		TrackName: trackName,
		Date:      time.Now().Format(time.RFC3339),
	}

	utils.Debug("SingleRaceRecorder", "created RecordMetadata")

	return nil
}

func (r *SingleRaceRecorder) Record(raceId string, msg string) error {
	r.buffer += msg + "\n"

	return nil
}
