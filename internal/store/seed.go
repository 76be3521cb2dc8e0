package store

import (
	"embed"
	"os"
	"path/filepath"
)

//go:embed seed/interview.json seed/questions.json seed/resources.json
var seedFS embed.FS

// seeded maps document names to their embedded defaults. user.json is
// deliberately absent: accounts only exist once someone signs up.
var seeded = []string{InterviewFile, MCQFile, ResourcesFile}

// Seed writes the embedded default banks for any document that does not
// exist yet. Existing files are never touched, so operator edits survive
// restarts.
func (s *Store) Seed() error {
	for _, name := range seeded {
		path := filepath.Join(s.dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		}

		data, err := seedFS.ReadFile("seed/" + name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return err
		}
		s.log.Info().Str("file", name).Msg("seeded default bank")
	}
	return nil
}
