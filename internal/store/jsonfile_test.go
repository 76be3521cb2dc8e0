package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/prepmaster/prepmaster-backend/internal/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestLoadMissingAndCorrupt(t *testing.T) {
	s := testStore(t)

	users := s.Users()
	if users == nil || len(users) != 0 {
		t.Errorf("missing file should read as empty slice, got %v", users)
	}

	if err := os.WriteFile(filepath.Join(s.dir, UsersFile), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	users = s.Users()
	if len(users) != 0 {
		t.Errorf("corrupt file should read as empty, got %v", users)
	}
}

func TestLoadWrongTypedElementMidArray(t *testing.T) {
	s := testStore(t)

	// Syntactically valid JSON whose second element cannot decode: the
	// leading valid element must not leak into the result.
	doc := `[{"name":"Ada","email":"ada@example.com","skills":[],"goals":""}, 42]`
	if err := os.WriteFile(filepath.Join(s.dir, UsersFile), []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	users := s.Users()
	if len(users) != 0 {
		t.Errorf("partially decodable document must read as empty, got %+v", users)
	}
}

func TestSaveUsersRoundTrip(t *testing.T) {
	s := testStore(t)

	in := []model.User{{Name: "Ada", Email: "ada@example.com", Skills: []string{"Go"}, Goals: "Backend role"}}
	if err := s.SaveUsers(in); err != nil {
		t.Fatal(err)
	}

	out := s.Users()
	if len(out) != 1 || out[0].Email != "ada@example.com" || out[0].Skills[0] != "Go" {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func TestSeed(t *testing.T) {
	s := testStore(t)
	if err := s.Seed(); err != nil {
		t.Fatal(err)
	}

	bank := s.InterviewBank()
	if len(bank) == 0 {
		t.Fatal("interview bank not seeded")
	}
	technical := 0
	for _, q := range bank {
		if !q.Type.Valid() || !q.Difficulty.Valid() {
			t.Errorf("seeded question has invalid enum: %+v", q)
		}
		if q.Type == model.InterviewTechnical {
			technical++
		}
	}
	if technical < 5 {
		t.Errorf("expected at least 5 Technical questions in the bank, got %d", technical)
	}

	if len(s.MCQBank()) == 0 {
		t.Error("MCQ bank not seeded")
	}
	if len(s.Resources()) == 0 {
		t.Error("resources not seeded")
	}

	// user.json is never seeded: accounts only exist after signup.
	if _, err := os.Stat(filepath.Join(s.dir, UsersFile)); !os.IsNotExist(err) {
		t.Error("user.json should not be seeded")
	}
}

func TestSeedDoesNotOverwrite(t *testing.T) {
	s := testStore(t)

	custom := []model.Question{{ID: "custom-1", Question: "Only one", Type: model.InterviewTechnical, Difficulty: model.DifficultyEasy, EstimatedTime: 60}}
	if err := s.Save(InterviewFile, custom); err != nil {
		t.Fatal(err)
	}

	if err := s.Seed(); err != nil {
		t.Fatal(err)
	}

	bank := s.InterviewBank()
	if len(bank) != 1 || bank[0].ID != "custom-1" {
		t.Errorf("seed overwrote an existing bank: %+v", bank)
	}
}
