package recording

import (
	"archive/zip"
	"os"

	"github.com/pkg/errors"
)

type ArchiveFile struct {
	Name string
	Body string
}

func MakeArchive(filename string, files []ArchiveFile) error {
	archive, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "could not create archive file")
	}
	defer archive.Close()

	writer := zip.NewWriter(archive)

	for _, file := range files {
		entry, err := writer.Create(file.Name)
		if err != nil {
			return errors.Wrap(err, "could not add "+file.Name+" to archive")
		}

		if _, err := entry.Write([]byte(file.Body)); err != nil {
			return errors.Wrap(err, "could not write "+file.Name)
		}
	}

	return writer.Close()
}
