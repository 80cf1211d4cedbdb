package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"talentflow/internal/assessment"
	"talentflow/internal/model"
	"talentflow/internal/service"
)

var (
	areas  = []string{"Backend", "Frontend", "Platform", "Data", "Mobile", "QA", "SRE"}
	stacks = []string{"Go", "TypeScript", "Python", "Kotlin", "Rust"}
	levels = []string{"Junior", "Mid", "Senior", "Staff"}

	firstNames = []string{
		"Alex", "Sam", "Jordan", "Taylor", "Morgan", "Casey", "Riley", "Avery",
		"Quinn", "Dana", "Jamie", "Reese", "Skyler", "Drew", "Emerson", "Harper",
	}
	lastNames = []string{
		"Kim", "Novak", "Silva", "Okafor", "Hansen", "Ибрагимов", "Costa", "Araujo",
		"Meyer", "Tanaka", "Kowalski", "Haddad", "Nguyen", "Moreau", "Walsh", "Demir",
	}
	cities = []string{"Berlin", "Lisbon", "Warsaw", "Austin", "Toronto", "Bangalore", "Remote"}
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "talentflow"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)
	jobColl := db.Collection("jobs")
	candColl := db.Collection("candidates")
	timelineColl := db.Collection("timelines")
	assessColl := db.Collection("assessments")

	// Idempotent: a board that already has jobs is left alone
	count, err := jobColl.CountDocuments(ctx, map[string]any{})
	if err != nil {
		log.Fatalf("Failed to count jobs: %v", err)
	}
	if count > 0 {
		log.Printf("Database already has %d jobs, skipping seed", count)
		return
	}

	rng := rand.New(rand.NewSource(42))
	now := time.Now()

	// Jobs
	jobs := makeJobs(rng, now)
	for _, j := range jobs {
		if _, err := jobColl.InsertOne(ctx, j); err != nil {
			log.Fatalf("Failed to insert job %s: %v", j.Slug, err)
		}
	}
	log.Printf("Seeded %d jobs", len(jobs))

	// Candidates with stage history
	total := 0
	for i := 0; i < 200; i++ {
		job := jobs[rng.Intn(len(jobs))]
		c := makeCandidate(rng, job, now)
		if _, err := candColl.InsertOne(ctx, c); err != nil {
			log.Fatalf("Failed to insert candidate: %v", err)
		}
		for _, ev := range makeTimeline(rng, c, now) {
			if _, err := timelineColl.InsertOne(ctx, ev); err != nil {
				log.Fatalf("Failed to insert timeline event: %v", err)
			}
		}
		total++
	}
	log.Printf("Seeded %d candidates", total)

	// A demo assessment with conditional questions on the first job
	demo := model.Assessment{
		JobID:     jobs[0].ID,
		Schema:    demoSchema(),
		UpdatedAt: now,
	}
	if _, err := assessColl.InsertOne(ctx, demo); err != nil {
		log.Fatalf("Failed to insert assessment: %v", err)
	}
	log.Printf("Seeded demo assessment for job %s (%s)", jobs[0].ID, jobs[0].Slug)
}

func makeJobs(rng *rand.Rand, now time.Time) []model.Job {
	jobs := make([]model.Job, 0, 20)
	seen := map[string]bool{}
	for len(jobs) < 20 {
		title := fmt.Sprintf("%s %s Engineer (%s)",
			levels[rng.Intn(len(levels))],
			areas[rng.Intn(len(areas))],
			stacks[rng.Intn(len(stacks))],
		)
		slug := service.Slugify(title)
		if seen[slug] {
			continue
		}
		seen[slug] = true

		status := model.JobActive
		if rng.Float64() < 0.25 {
			status = model.JobArchived
		}

		jobs = append(jobs, model.Job{
			ID:        uuid.New().String(),
			Title:     title,
			Slug:      slug,
			Status:    status,
			Tags:      pick(rng, stacks, 1+rng.Intn(2)),
			Order:     len(jobs),
			CreatedAt: now.AddDate(0, 0, -rng.Intn(90)),
			UpdatedAt: now,
		})
	}
	return jobs
}

func makeCandidate(rng *rand.Rand, job model.Job, now time.Time) model.Candidate {
	first := firstNames[rng.Intn(len(firstNames))]
	last := lastNames[rng.Intn(len(lastNames))]
	id := uuid.New().String()
	return model.Candidate{
		ID:        id,
		Name:      first + " " + last,
		Email:     fmt.Sprintf("%s.%s@example.com", first, id[:4]),
		Stage:     model.Stages[rng.Intn(len(model.Stages))],
		JobID:     job.ID,
		City:      cities[rng.Intn(len(cities))],
		CreatedAt: now.AddDate(0, 0, -rng.Intn(60)),
	}
}

// makeTimeline replays the pipeline from "applied" up to the candidate's
// current stage so the history is consistent with where they sit now
func makeTimeline(rng *rand.Rand, c model.Candidate, now time.Time) []model.TimelineEvent {
	forward := []model.Stage{
		model.StageApplied, model.StageScreen, model.StageTech,
		model.StageOffer, model.StageHired,
	}

	// Rejected is a terminal branch off any forward stage, not a step on
	// the way to hired
	var path []model.Stage
	if c.Stage == model.StageRejected {
		cut := 1 + rng.Intn(len(forward)-1)
		path = append(path, forward[:cut]...)
		path = append(path, model.StageRejected)
	} else {
		for _, s := range forward {
			path = append(path, s)
			if s == c.Stage {
				break
			}
		}
	}

	var events []model.TimelineEvent
	at := c.CreatedAt
	for _, stage := range path {
		at = at.Add(time.Duration(1+rng.Intn(120)) * time.Hour)
		events = append(events, model.TimelineEvent{
			ID:          uuid.New().String(),
			CandidateID: c.ID,
			At:          at,
			Type:        "stage",
			Payload:     map[string]any{"stage": string(stage)},
		})
	}
	return events
}

func demoSchema() assessment.Schema {
	schema := assessment.NewSchema("Engineering Screen")

	profile := assessment.NewSection("Background")
	experience := assessment.NewQuestion(assessment.KindSingle)
	experience.Label = "Do you have production Go experience?"
	experience.Required = true
	experience.Options = []string{"Yes", "No"}

	years := assessment.NewQuestion(assessment.KindNumber)
	years.Label = "How many years?"
	years.Required = true
	years.ShowIf = &assessment.Condition{QuestionID: experience.ID, Value: "Yes"}

	stack := assessment.NewQuestion(assessment.KindMulti)
	stack.Label = "Which of these have you worked with?"
	stack.Options = []string{"MongoDB", "Redis", "Kafka", "gRPC"}

	profile.Questions = []assessment.Question{experience, years, stack}

	detail := assessment.NewSection("Details")
	summary := assessment.NewQuestion(assessment.KindShort)
	summary.Label = "One sentence about your current role"
	summary.Required = true

	writeup := assessment.NewQuestion(assessment.KindLong)
	writeup.Label = "Describe a system you designed"

	resume := assessment.NewQuestion(assessment.KindFile)
	resume.Label = "Attach your resume"

	detail.Questions = []assessment.Question{summary, writeup, resume}

	schema.Sections = []assessment.Section{profile, detail}
	return schema
}

func pick(rng *rand.Rand, pool []string, n int) []string {
	idx := rng.Perm(len(pool))
	out := make([]string, 0, n)
	for _, i := range idx[:n] {
		out = append(out, pool[i])
	}
	return out
}
