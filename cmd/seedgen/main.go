// Command seedgen generates a deterministic sample dataset and writes it as
// JSON, for inspecting what the startup seeder would produce.
// Usage: go run cmd/seedgen/main.go -seed 42 -jobs 25 -candidates 100
package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"os"

	"github.com/hirepipe/hirepipe/internal/models"
	"github.com/hirepipe/hirepipe/internal/seed"
)

type dataset struct {
	Jobs        []models.Job           `json:"jobs"`
	Candidates  []models.Candidate     `json:"candidates"`
	Assessments []models.Assessment    `json:"assessments"`
	Notes       []models.Note          `json:"notes"`
	Timeline    []models.TimelineEvent `json:"timeline"`
}

func main() {
	seedVal := flag.Int64("seed", 0, "PRNG seed; 0 seeds from the clock")
	jobCount := flag.Int("jobs", 25, "number of jobs to generate")
	candidateCount := flag.Int("candidates", 100, "number of candidates to generate")
	out := flag.String("out", "", "output file; empty writes to stdout")
	flag.Parse()

	var src rand.Source
	if *seedVal != 0 {
		src = rand.NewSource(*seedVal)
	}
	gen := seed.NewGenerator(src)

	jobs := gen.Jobs(*jobCount, 0)
	candidates := gen.Candidates(jobs, *candidateCount)
	notes, timeline := gen.NotesAndTimeline(candidates)

	data := dataset{
		Jobs:        jobs,
		Candidates:  candidates,
		Assessments: gen.Assessments(jobs),
		Notes:       notes,
		Timeline:    timeline,
	}

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Fatal(err)
	}

	if *out == "" {
		if _, err := os.Stdout.Write(append(encoded, '\n')); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := os.WriteFile(*out, encoded, 0o644); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s", *out)
}
