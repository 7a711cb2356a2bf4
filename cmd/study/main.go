// Package main implements a terminal study client. It runs a study session
// locally against a JSON file of card sets, with typed answers standing in
// for speech: the narration the server would speak is printed, and answers
// are typed instead of spoken.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/reciteapp/recite-api/internal/config"
	"github.com/reciteapp/recite-api/internal/domain"
	"github.com/reciteapp/recite-api/internal/study"
)

// setFile is the on-disk study material: a list of named card sets.
type setFile struct {
	Sets []setEntry `json:"sets"`
}

type setEntry struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Cards       []domain.Card `json:"cards"`
}

func main() {
	setsPath := flag.String("sets", "sets.json", "path to the card sets file")
	setName := flag.String("set", "", "name of the set to study (defaults to the first)")
	mode := flag.String("mode", "normal", "study mode: normal or pomodoro")
	work := flag.Int("work", 0, "pomodoro work minutes")
	rest := flag.Int("rest", 0, "pomodoro rest minutes")
	flag.Parse()

	entry, err := loadSet(*setsPath, *setName)
	if err != nil {
		log.Fatalf("Failed to load card sets: %v", err)
	}

	studyMode := domain.StudyMode(*mode)
	if err := studyMode.Validate(); err != nil {
		log.Fatalf("Invalid mode %q: expected normal or pomodoro", *mode)
	}

	studyCfg := config.StudyConfig{
		DefaultWorkMinutes: 25,
		DefaultRestMinutes: 5,
	}

	if err := runTUI(entry, studyMode,
		time.Duration(studyCfg.ClampWorkMinutes(*work))*time.Minute,
		time.Duration(studyCfg.ClampRestMinutes(*rest))*time.Minute,
	); err != nil {
		log.Fatalf("Study session failed: %v", err)
	}
}

// loadSet reads the sets file and picks the requested set, or the first one
// when no name is given.
func loadSet(path, name string) (setEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return setEntry{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file setFile
	if err := json.Unmarshal(data, &file); err != nil {
		return setEntry{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(file.Sets) == 0 {
		return setEntry{}, fmt.Errorf("%s contains no card sets", path)
	}

	if name == "" {
		return file.Sets[0], nil
	}
	for _, entry := range file.Sets {
		if entry.Name == name {
			return entry, nil
		}
	}
	return setEntry{}, fmt.Errorf("no card set named %q in %s", name, path)
}

// runTUI wires the session to a bubbletea program and runs it. The
// program's Send method is the session's notification channel.
func runTUI(entry setEntry, mode domain.StudyMode, workDuration, restDuration time.Duration) error {
	narrator := &narrationSpeaker{}
	capture := newTypedCapture()

	m := newModel(entry.Name, capture)
	program := tea.NewProgram(m)
	narrator.send = program.Send

	session, err := study.NewSession(study.Config{
		SetName:      entry.Name,
		Cards:        entry.Cards,
		Mode:         mode,
		WorkDuration: workDuration,
		RestDuration: restDuration,
		Speaker:      narrator,
		Capture:      capture,
		Notify: func(snap study.Snapshot) {
			program.Send(snapshotMsg{snap})
		},
	})
	if err != nil {
		return err
	}
	defer session.Close()
	m.session = session

	_, err = program.Run()
	return err
}
