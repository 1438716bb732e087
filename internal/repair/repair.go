// Package repair normalizes a raw dataset into invariant-clean form. Every
// dataset entering the system, whether loaded, seeded, or imported, passes
// through the same Repair call before becoming live.
package repair

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/coursedesk-api/internal/models"
)

// Repairer applies the fixed-order normalization pass. The randomness source
// used for synthesized defaults is injected so tests can seed it.
type Repairer struct {
	rng    *rand.Rand
	logger *zap.Logger
}

// New constructs a Repairer. A nil rng gets a time-seeded source.
func New(rng *rand.Rand, logger *zap.Logger) *Repairer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repairer{rng: rng, logger: logger}
}

// Repair normalizes the dataset in place and returns it. The step order is
// load-bearing: id backfill must precede the referential enrollment filter,
// which trusts ids to be well-formed. Repair is idempotent: a second pass over
// its own output changes nothing.
func (r *Repairer) Repair(ds *models.Dataset) *models.Dataset {
	if ds == nil {
		ds = &models.Dataset{}
	}

	if ds.Courses == nil {
		ds.Courses = []models.Course{}
	}
	if ds.Students == nil {
		ds.Students = []models.Student{}
	}
	if ds.Instructors == nil {
		ds.Instructors = []models.Instructor{}
	}
	if ds.Categories == nil {
		ds.Categories = []models.Category{}
	}
	if ds.Enrollments == nil {
		ds.Enrollments = []models.Enrollment{}
	}
	if ds.AISettings == nil {
		ds.AISettings = models.DefaultSettings()
	}

	r.repairCourses(ds.Courses)
	r.repairStudents(ds.Students)
	r.repairInstructors(ds.Instructors)
	ds.Enrollments = r.filterEnrollments(ds)

	r.flagCourseListDrift(ds)

	return ds
}

func (r *Repairer) repairCourses(courses []models.Course) {
	for i := range courses {
		c := &courses[i]
		if c.ID == 0 {
			c.ID = i + 1
		}
		if c.Popularity == nil {
			p := 60 + r.rng.Intn(40)
			c.Popularity = &p
		}
		if c.Tags == nil {
			c.Tags = []string{}
		}
	}
}

func (r *Repairer) repairStudents(students []models.Student) {
	for i := range students {
		s := &students[i]
		if s.ID == 0 {
			s.ID = i + 1
		}
		if s.Level == "" {
			s.Level = models.LevelBeginner
		}
		if s.Courses == nil {
			s.Courses = []int{}
		}
		if s.Interests == nil {
			s.Interests = []string{}
		}
		if s.AIRecommendations == nil {
			s.AIRecommendations = []string{}
		}
		if s.LearningPath == nil {
			s.LearningPath = []string{}
		}
	}
}

func (r *Repairer) repairInstructors(instructors []models.Instructor) {
	for i := range instructors {
		in := &instructors[i]
		if in.ID == 0 {
			in.ID = i + 1
		}
		if in.Courses == nil {
			in.Courses = []int{}
		}
		if in.Expertise == nil {
			in.Expertise = models.Expertise{}
		}
		if in.Availability == nil {
			in.Availability = []string{}
		}
		if in.Rating == nil {
			rating := 4.0 + r.rng.Float64()
			in.Rating = &rating
		}
	}
}

// filterEnrollments drops rows whose student or course no longer exists.
// Dangling rows are pruned, never repaired in place.
func (r *Repairer) filterEnrollments(ds *models.Dataset) []models.Enrollment {
	students := make(map[int]struct{}, len(ds.Students))
	for _, s := range ds.Students {
		students[s.ID] = struct{}{}
	}
	courses := make(map[int]struct{}, len(ds.Courses))
	for _, c := range ds.Courses {
		courses[c.ID] = struct{}{}
	}

	kept := make([]models.Enrollment, 0, len(ds.Enrollments))
	dropped := 0
	for _, e := range ds.Enrollments {
		if _, ok := students[e.StudentID]; !ok {
			dropped++
			continue
		}
		if _, ok := courses[e.CourseID]; !ok {
			dropped++
			continue
		}
		if e.AISuggested == nil {
			suggested := r.rng.Intn(2) == 1
			e.AISuggested = &suggested
		}
		if e.Progress == nil {
			progress := r.rng.Intn(100)
			e.Progress = &progress
		}
		kept = append(kept, e)
	}
	if dropped > 0 {
		r.logger.Info("dropped dangling enrollments", zap.Int("count", dropped))
	}
	return kept
}

// flagCourseListDrift reports students whose embedded course list disagrees
// with their Active enrollments. The drift is a documented soft invariant:
// it is logged, not corrected.
func (r *Repairer) flagCourseListDrift(ds *models.Dataset) {
	active := make(map[int]map[int]struct{})
	for _, e := range ds.Enrollments {
		if e.Status != models.EnrollmentStatusActive {
			continue
		}
		if active[e.StudentID] == nil {
			active[e.StudentID] = make(map[int]struct{})
		}
		active[e.StudentID][e.CourseID] = struct{}{}
	}

	drifted := 0
	for _, s := range ds.Students {
		enrolled := active[s.ID]
		if len(s.Courses) != len(enrolled) {
			drifted++
			continue
		}
		for _, id := range s.Courses {
			if _, ok := enrolled[id]; !ok {
				drifted++
				break
			}
		}
	}
	if drifted > 0 {
		r.logger.Warn("student course lists drift from active enrollments", zap.Int("students", drifted))
	}
}

// RecountEnrolled recomputes every course's enrolled counter from the Active
// enrollment rows. Called after any structural change to courses or
// enrollments; the counter is never maintained incrementally.
func RecountEnrolled(ds *models.Dataset) {
	counts := make(map[int]int, len(ds.Courses))
	for _, e := range ds.Enrollments {
		if e.Status == models.EnrollmentStatusActive {
			counts[e.CourseID]++
		}
	}
	for i := range ds.Courses {
		ds.Courses[i].Enrolled = counts[ds.Courses[i].ID]
	}
}
