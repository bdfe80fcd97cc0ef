// Package seed generates and maintains the tracker's demo dataset: jobs,
// candidates, assessments, notes, and candidate timelines.
package seed

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hirepipe/hirepipe/internal/models"
)

// Generator produces randomized records from the fixed vocabularies. The
// rand source is injectable so tests can pin a seed.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator builds a generator over the given source. A nil source gets
// seeded from the wall clock.
func NewGenerator(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Generator{
		rng: rand.New(src),
		now: time.Now,
	}
}

func (g *Generator) choice(options []string) string {
	return options[g.rng.Intn(len(options))]
}

// choices returns count distinct entries drawn from options.
func (g *Generator) choices(options []string, count int) []string {
	shuffled := make([]string, len(options))
	copy(shuffled, options)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

// within returns a random instant inside the window ending now.
func (g *Generator) within(window time.Duration) models.Millis {
	offset := time.Duration(g.rng.Float64() * float64(window))
	return models.Millis(g.now().Add(-offset).UTC().Truncate(time.Millisecond))
}

const (
	day  = 24 * time.Hour
	week = 7 * day
)

// Jobs generates count job postings. Board positions start at startOrder so
// top-ups continue the existing 0..N-1 run. Roughly a fifth of postings come
// out archived.
func (g *Generator) Jobs(count, startOrder int) []models.Job {
	jobs := make([]models.Job, 0, count)
	for i := 0; i < count; i++ {
		title := g.choice(jobTitles)
		company := g.choice(companies)
		status := models.JobStatusActive
		if g.rng.Float64() < 0.2 {
			status = models.JobStatusArchived
		}
		tags := g.choices(techTags, g.rng.Intn(4)+2)

		jobs = append(jobs, models.Job{
			ID:    uuid.New().String(),
			Title: title,
			Slug:  models.Slugify(fmt.Sprintf("%s-%s-%d", title, company, startOrder+i+1)),
			Description: fmt.Sprintf(
				"We are looking for an experienced %s to join our team at %s. "+
					"You will work on cutting-edge projects and collaborate with a talented team of engineers.",
				title, company),
			Company:   company,
			Status:    status,
			Tags:      tags,
			Order:     startOrder + i,
			CreatedAt: g.within(30 * day),
			UpdatedAt: g.within(week),
		})
	}
	return jobs
}

// Candidates generates count applicants spread round-robin across the given
// jobs. With no jobs the candidates come out unattached.
func (g *Generator) Candidates(jobs []models.Job, count int) []models.Candidate {
	candidates := make([]models.Candidate, 0, count)
	for i := 0; i < count; i++ {
		firstName := g.choice(firstNames)
		lastName := g.choice(lastNames)

		var job models.Job
		if len(jobs) > 0 {
			job = jobs[i%len(jobs)]
		}

		first := strings.ToLower(firstName)
		last := strings.ToLower(lastName)
		emails := []string{
			fmt.Sprintf("%s.%s@gmail.com", first, last),
			fmt.Sprintf("%s%s@outlook.com", first, last),
			fmt.Sprintf("%s%d@example.com", first, i),
			fmt.Sprintf("%s_%s@yahoo.com", first, last),
		}

		candidates = append(candidates, models.Candidate{
			ID:    uuid.New().String(),
			Name:  firstName + " " + lastName,
			Email: g.choice(emails),
			Phone: fmt.Sprintf("+1-%d-%d-%d",
				g.rng.Intn(900)+100, g.rng.Intn(900)+100, g.rng.Intn(9000)+1000),
			Company:   job.Company,
			JobTitle:  job.Title,
			Stage:     models.StageOrder[g.rng.Intn(len(models.StageOrder))],
			JobID:     job.ID,
			AppliedAt: g.within(60 * day),
		})
	}
	return candidates
}

var answerableTypes = []models.QuestionType{
	models.QuestionSingleChoice,
	models.QuestionMultiChoice,
	models.QuestionShortText,
	models.QuestionLongText,
	models.QuestionNumeric,
}

func (g *Generator) questions(bank questionBank) []models.Question {
	count := g.rng.Intn(3) + 3
	questions := make([]models.Question, 0, count)
	for i := 0; i < count; i++ {
		qType := answerableTypes[g.rng.Intn(len(answerableTypes))]
		label := bank.templates[i%len(bank.templates)]

		validation := &models.ValidationRule{
			Required: g.rng.Float64() < 0.7,
		}
		switch qType {
		case models.QuestionNumeric:
			minV, maxV := 0, 10
			validation.Min = &minV
			validation.Max = &maxV
		case models.QuestionShortText:
			validation.MinLength = 10
			validation.MaxLength = 100
		case models.QuestionLongText:
			validation.MinLength = 50
			validation.MaxLength = 1000
		}

		q := models.Question{
			ID:         uuid.New().String(),
			Type:       qType,
			Label:      label,
			HelpText:   "Please provide detailed information about " + strings.ToLower(label),
			Order:      i,
			Validation: validation,
		}

		if qType == models.QuestionSingleChoice || qType == models.QuestionMultiChoice {
			for _, opt := range []string{"Excellent", "Good", "Average", "Poor"} {
				q.Options = append(q.Options, models.QuestionOption{
					ID:    uuid.New().String(),
					Label: opt,
					Value: strings.ToLower(opt),
				})
			}
		}

		questions = append(questions, q)
	}
	return questions
}

// maxAssessedJobs caps how many active jobs get a generated assessment.
const maxAssessedJobs = 8

// Assessments builds one three-section questionnaire per active job, up to
// maxAssessedJobs.
func (g *Generator) Assessments(jobs []models.Job) []models.Assessment {
	active := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if job.Status == models.JobStatusActive {
			active = append(active, job)
		}
	}
	if len(active) > maxAssessedJobs {
		active = active[:maxAssessedJobs]
	}

	assessments := make([]models.Assessment, 0, len(active))
	for _, job := range active {
		sections := make(models.SectionList, 0, len(questionBanks))
		for i, bank := range questionBanks {
			sections = append(sections, models.AssessmentSection{
				ID:          uuid.New().String(),
				Title:       bank.title,
				Description: bank.description,
				Questions:   g.questions(bank),
				Order:       i,
			})
		}

		assessments = append(assessments, models.Assessment{
			ID:    uuid.New().String(),
			JobID: job.ID,
			Title: fmt.Sprintf("%s Assessment - %s", job.Title, job.Company),
			Description: fmt.Sprintf(
				"Comprehensive assessment for %s position at %s. "+
					"This assessment evaluates technical skills, experience, and cultural fit.",
				job.Title, job.Company),
			Sections:  sections,
			CreatedAt: g.within(14 * day),
			UpdatedAt: g.within(week),
		})
	}
	return assessments
}

// NotesAndTimeline builds activity history for the given candidates. The
// first 30% get a multi-step story through the pipeline; the rest get a
// single application event. Events come back sorted ascending by timestamp.
func (g *Generator) NotesAndTimeline(candidates []models.Candidate) ([]models.Note, []models.TimelineEvent) {
	notes := make([]models.Note, 0)
	timeline := make([]models.TimelineEvent, 0, len(candidates))

	richCount := len(candidates) * 30 / 100
	for i := range candidates[:richCount] {
		richNotes, richEvents := g.richHistory(&candidates[i])
		notes = append(notes, richNotes...)
		timeline = append(timeline, richEvents...)
	}

	for i := richCount; i < len(candidates); i++ {
		c := &candidates[i]
		appliedAt := c.AppliedAt
		if appliedAt.IsZero() {
			appliedAt = g.within(30 * day)
		}
		timeline = append(timeline, g.stageEvent(c.ID, "Applied", appliedAt,
			models.NewStageChangeMeta(nil, c.Stage)))
	}

	sortEvents(timeline)
	return notes, timeline
}

func (g *Generator) richHistory(c *models.Candidate) ([]models.Note, []models.TimelineEvent) {
	notes := make([]models.Note, 0, 2)
	events := make([]models.TimelineEvent, 0, 6)

	appliedAt := c.AppliedAt
	if appliedAt.IsZero() {
		appliedAt = g.within(30 * day)
	}

	position := c.JobTitle
	if position == "" {
		position = "position"
	}
	applied := models.StageApplied
	events = append(events, g.stageEvent(c.ID, "Applied to "+position, appliedAt,
		models.NewStageChangeMeta(nil, applied)))

	if g.rng.Float64() < 0.8 {
		screeningAt := addJitter(appliedAt, g.rng, 3*day)
		events = append(events, g.stageEvent(c.ID, "Moved to screening", screeningAt,
			models.NewStageChangeMeta(&applied, models.StageScreening)))

		if g.rng.Float64() < 0.5 {
			notes = append(notes, models.Note{
				ID:          uuid.New().String(),
				CandidateID: c.ID,
				Content:     "Screening call completed - positive initial impression.",
				Mentions:    models.StringArray{},
				CreatedAt:   models.Millis(screeningAt.Time().Add(time.Second)),
				CreatedBy:   "recruiter",
			})
		}
	}

	if g.rng.Float64() < 0.5 {
		scheduledAt := addJitter(appliedAt, g.rng, week)
		events = append(events, models.TimelineEvent{
			ID:          uuid.New().String(),
			CandidateID: c.ID,
			Type:        models.EventInterviewScheduled,
			Description: "Interview scheduled",
			Timestamp:   scheduledAt,
			Metadata:    models.NewInterviewScheduledMeta(g.choice(interviewers)),
		})

		if g.rng.Float64() < 0.9 {
			completedAt := addJitter(scheduledAt, g.rng, 3*day)
			screening := models.StageScreening
			events = append(events, g.stageEvent(c.ID, "Interview completed", completedAt,
				models.NewStageChangeMeta(&screening, models.StageInterview)))
			notes = append(notes, models.Note{
				ID:          uuid.New().String(),
				CandidateID: c.ID,
				Content:     "Interview feedback: strong problem solving and communication.",
				Mentions:    models.StringArray{},
				CreatedAt:   models.Millis(completedAt.Time().Add(5 * time.Second)),
				CreatedBy:   "interviewer",
			})
		}
	}

	if g.rng.Float64() < 0.4 {
		startedAt := g.within(14 * day)
		events = append(events, models.TimelineEvent{
			ID:          uuid.New().String(),
			CandidateID: c.ID,
			Type:        models.EventAssessmentCompleted,
			Description: "Assessment completed",
			Timestamp:   models.Millis(startedAt.Time().Add(time.Second)),
			Metadata:    models.NewAssessmentCompletedMeta(g.rng.Intn(51)+50, models.StageAssessment),
		})
	}

	if g.rng.Float64() < 0.2 {
		offerAt := g.within(week)
		interview := models.StageInterview
		events = append(events, g.stageEvent(c.ID, "Offer extended", offerAt,
			models.NewStageChangeMeta(&interview, models.StageOffer)))

		offer := models.StageOffer
		decidedAt := addJitter(offerAt, g.rng, 5*day)
		if g.rng.Float64() < 0.6 {
			events = append(events, g.stageEvent(c.ID, "Hired", decidedAt,
				models.NewStageChangeMeta(&offer, models.StageHired)))
		} else {
			events = append(events, g.stageEvent(c.ID, "Rejected after offer", decidedAt,
				models.NewStageChangeMeta(&offer, models.StageRejected)))
		}
	} else if g.rng.Float64() < 0.1 {
		rejectedAt := g.within(14 * day)
		from := c.Stage
		events = append(events, g.stageEvent(c.ID, "Rejected", rejectedAt,
			models.NewStageChangeMeta(&from, models.StageRejected)))
	}

	return notes, events
}

func (g *Generator) stageEvent(candidateID, description string, ts models.Millis, meta models.StageChangeMeta) models.TimelineEvent {
	return models.TimelineEvent{
		ID:          uuid.New().String(),
		CandidateID: candidateID,
		Type:        models.EventStageChange,
		Description: description,
		Timestamp:   ts,
		Metadata:    meta,
	}
}

func addJitter(ts models.Millis, rng *rand.Rand, window time.Duration) models.Millis {
	offset := time.Duration(rng.Int63n(int64(window)))
	return models.Millis(ts.Time().Add(offset))
}

func sortEvents(events []models.TimelineEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Time().Before(events[j].Timestamp.Time())
	})
}
