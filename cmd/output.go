package cmd

import (
	"os"

	"github.com/patricklbell/raytracer/export"
)

// writeDocument writes doc as JSON to path; "-" selects stdout.
func writeDocument(path string, doc *export.Document) error {
	if path == "" {
		return nil
	}
	if path == "-" {
		return export.WriteJSON(os.Stdout, doc, true)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err = export.WriteJSON(f, doc, true); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}

	logger.Noticef(`wrote %s document to "%s"`, doc.Kind, path)
	return nil
}
