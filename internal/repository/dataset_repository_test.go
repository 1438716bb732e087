package repository

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/coursedesk-api/internal/models"
	"github.com/noah-isme/coursedesk-api/internal/repair"
)

// memBackend is an in-memory Backend double recording write counts per key.
type memBackend struct {
	mu      sync.Mutex
	data    map[string]string
	writes  map[string]int
	probeOK bool
	writeOK bool
}

func newMemBackend() *memBackend {
	return &memBackend{data: map[string]string{}, writes: map[string]int{}, probeOK: true, writeOK: true}
}

func (m *memBackend) Probe(context.Context) bool { return m.probeOK }

func (m *memBackend) Read(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *memBackend) Write(_ context.Context, key, value string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.writeOK {
		return false
	}
	m.data[key] = value
	m.writes[key]++
	return true
}

func newTestRepo(backend *memBackend) *DatasetRepository {
	repairer := repair.New(rand.New(rand.NewSource(1)), zap.NewNop())
	return New(backend, repairer, Config{
		PrimaryKey:     "primary",
		BackupKey:      "backup",
		BackupInterval: 5 * time.Minute,
	}, zap.NewNop())
}

func validDocument(t *testing.T, marker string) string {
	t.Helper()
	doc := models.Dataset{
		Courses:     []models.Course{{ID: 1, Name: marker, Capacity: 10}},
		Students:    []models.Student{{ID: 1, Name: "Student One"}},
		Instructors: []models.Instructor{{ID: 1, Name: "Instructor One"}},
		Enrollments: []models.Enrollment{{StudentID: 1, CourseID: 1, Status: models.EnrollmentStatusActive}},
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	return string(raw)
}

func TestLoadPrefersPrimary(t *testing.T) {
	backend := newMemBackend()
	backend.data["primary"] = validDocument(t, "from-primary")
	backend.data["backup"] = validDocument(t, "from-backup")

	repo := newTestRepo(backend)
	ds := repo.Load(context.Background())
	require.Len(t, ds.Courses, 1)
	assert.Equal(t, "from-primary", ds.Courses[0].Name)
}

func TestLoadFallsBackToBackupOnCorruptPrimary(t *testing.T) {
	backend := newMemBackend()
	backend.data["primary"] = "{not json"
	backend.data["backup"] = validDocument(t, "from-backup")

	repo := newTestRepo(backend)
	ds := repo.Load(context.Background())
	require.Len(t, ds.Courses, 1)
	assert.Equal(t, "from-backup", ds.Courses[0].Name)
}

func TestLoadRejectsDocumentFailingSniff(t *testing.T) {
	backend := newMemBackend()
	// Parses fine but has no students/instructors collections.
	backend.data["primary"] = `{"courses":[]}`
	backend.data["backup"] = validDocument(t, "from-backup")

	repo := newTestRepo(backend)
	ds := repo.Load(context.Background())
	require.Len(t, ds.Courses, 1)
	assert.Equal(t, "from-backup", ds.Courses[0].Name)
}

func TestLoadSeedsOnTotalMissAndPersistsBothSlots(t *testing.T) {
	backend := newMemBackend()
	repo := newTestRepo(backend)

	ds := repo.Load(context.Background())
	assert.Len(t, ds.Courses, 5)
	assert.Len(t, ds.Students, 5)
	assert.Len(t, ds.Instructors, 5)
	assert.Len(t, ds.Enrollments, 10)
	assert.Len(t, ds.Categories, 4)
	assert.Equal(t, 1, backend.writes["primary"])
	assert.Equal(t, 1, backend.writes["backup"])
}

func TestLoadRecomputesEnrolledCounters(t *testing.T) {
	doc := models.Dataset{
		Courses: []models.Course{{ID: 9, Name: "Counting", Capacity: 2, Enrolled: 0}},
		Students: []models.Student{
			{ID: 1, Name: "A"},
			{ID: 2, Name: "B"},
		},
		Instructors: []models.Instructor{{ID: 1, Name: "I"}},
		Enrollments: []models.Enrollment{
			{StudentID: 1, CourseID: 9, Status: models.EnrollmentStatusActive},
			{StudentID: 2, CourseID: 9, Status: models.EnrollmentStatusActive},
		},
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	backend := newMemBackend()
	backend.data["primary"] = string(raw)
	repo := newTestRepo(backend)
	repo.Load(context.Background())

	course, err := repo.GetCourse(9)
	require.NoError(t, err)
	assert.Equal(t, 2, course.Enrolled)
}

func TestLoadNormalizesLegacyExpertise(t *testing.T) {
	backend := newMemBackend()
	backend.data["primary"] = `{
        "courses": [],
        "students": [],
        "instructors": [{"id": 1, "name": "Legacy", "expertise": "Python, ML, Stats"}]
    }`
	repo := newTestRepo(backend)
	repo.Load(context.Background())

	instructor, err := repo.GetInstructor(1)
	require.NoError(t, err)
	assert.Equal(t, models.Expertise{"Python", "ML", "Stats"}, instructor.Expertise)
}

func TestSaveGatedOnAvailability(t *testing.T) {
	backend := newMemBackend()
	backend.probeOK = false
	repo := newTestRepo(backend)
	repo.Load(context.Background())

	assert.False(t, repo.Available())
	assert.False(t, repo.Save(context.Background(), true))
	assert.Empty(t, backend.writes)
}

func TestSaveBackupThrottle(t *testing.T) {
	backend := newMemBackend()
	repo := newTestRepo(backend)

	current := time.Unix(1_700_000_000, 0)
	repo.now = func() time.Time { return current }
	repo.Load(context.Background())
	primaryAfterLoad := backend.writes["primary"]
	backupAfterLoad := backend.writes["backup"]

	// Two quick saves inside the interval: primary written twice, backup not.
	require.True(t, repo.Save(context.Background(), false))
	current = current.Add(2 * time.Second)
	require.True(t, repo.Save(context.Background(), false))
	assert.Equal(t, primaryAfterLoad+2, backend.writes["primary"])
	assert.Equal(t, backupAfterLoad, backend.writes["backup"])

	// Once the interval elapses the backup slot is written again.
	current = current.Add(6 * time.Minute)
	require.True(t, repo.Save(context.Background(), false))
	assert.Equal(t, backupAfterLoad+1, backend.writes["backup"])

	// Forced saves always hit the backup slot.
	require.True(t, repo.Save(context.Background(), true))
	assert.Equal(t, backupAfterLoad+2, backend.writes["backup"])
}

func TestSaveReportsPrimaryFailureWithoutRaising(t *testing.T) {
	backend := newMemBackend()
	repo := newTestRepo(backend)
	repo.Load(context.Background())

	backend.writeOK = false
	assert.False(t, repo.Save(context.Background(), false))
}

func TestImportDropsDanglingEnrollments(t *testing.T) {
	backend := newMemBackend()
	repo := newTestRepo(backend)
	repo.Load(context.Background())

	doc := `{
        "courses": [{"id": 1, "name": "Solo", "capacity": 10}],
        "students": [{"id": 1, "name": "Kept"}],
        "instructors": [],
        "enrollments": [
            {"studentId": 1, "courseId": 1, "status": "Active"},
            {"studentId": 999, "courseId": 1, "status": "Active"}
        ]
    }`
	require.NoError(t, repo.Import(context.Background(), []byte(doc)))

	ds := repo.Snapshot()
	require.Len(t, ds.Enrollments, 1)
	assert.Equal(t, 1, ds.Enrollments[0].StudentID)
}

func TestImportRejectsDocumentFailingSniff(t *testing.T) {
	backend := newMemBackend()
	repo := newTestRepo(backend)
	repo.Load(context.Background())

	err := repo.Import(context.Background(), []byte(`{"courses": []}`))
	assert.ErrorIs(t, err, ErrMalformedDocument)
}

func TestImportAcceptsExportedDocument(t *testing.T) {
	backend := newMemBackend()
	repo := newTestRepo(backend)
	repo.Load(context.Background())

	// An exported file carries exportDate and version on top of the dataset
	// collections. Re-importing it, even with extra unknown keys, must work:
	// unknown top-level fields are tolerated and dropped.
	raw, err := json.Marshal(repo.Export())
	require.NoError(t, err)

	var loose map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &loose))
	require.Contains(t, loose, "exportDate")
	require.Contains(t, loose, "version")
	loose["schemaHint"] = json.RawMessage(`"v2"`)
	raw, err = json.Marshal(loose)
	require.NoError(t, err)

	require.NoError(t, repo.Import(context.Background(), raw))

	snap := repo.Snapshot()
	assert.Len(t, snap.Courses, 5)
	assert.Len(t, snap.Students, 5)
	assert.Len(t, snap.Instructors, 5)
	assert.Len(t, snap.Enrollments, 10)
}

func TestExportCarriesMetadata(t *testing.T) {
	backend := newMemBackend()
	repo := newTestRepo(backend)
	repo.Load(context.Background())

	doc := repo.Export()
	assert.Equal(t, ExportVersion, doc.Version)
	assert.False(t, doc.ExportDate.IsZero())
	assert.Len(t, doc.Courses, 5)
}

func TestAddCourseAssignsNextID(t *testing.T) {
	backend := newMemBackend()
	repo := newTestRepo(backend)
	repo.Load(context.Background())

	created, err := repo.AddCourse(models.Course{Name: "New Course", Capacity: 10})
	require.NoError(t, err)
	assert.Equal(t, 6, created.ID)
}

func TestDeleteCourseCascades(t *testing.T) {
	backend := newMemBackend()
	repo := newTestRepo(backend)
	repo.Load(context.Background())

	require.NoError(t, repo.DeleteCourse(1))

	_, err := repo.GetCourse(1)
	assert.ErrorIs(t, err, ErrNotFound)

	ds := repo.Snapshot()
	for _, e := range ds.Enrollments {
		assert.NotEqual(t, 1, e.CourseID)
	}
	for _, s := range ds.Students {
		assert.NotContains(t, s.Courses, 1)
	}
}

func TestDeleteStudentCascades(t *testing.T) {
	backend := newMemBackend()
	repo := newTestRepo(backend)
	repo.Load(context.Background())

	require.NoError(t, repo.DeleteStudent(1))
	ds := repo.Snapshot()
	for _, e := range ds.Enrollments {
		assert.NotEqual(t, 1, e.StudentID)
	}
}

func TestDeleteInstructorUnassignsCourses(t *testing.T) {
	backend := newMemBackend()
	repo := newTestRepo(backend)
	repo.Load(context.Background())

	require.NoError(t, repo.DeleteInstructor(1))

	course, err := repo.GetCourse(1)
	require.NoError(t, err)
	assert.Nil(t, course.InstructorID)
	assert.Equal(t, "Unassigned", course.Instructor)
}

func TestAddEnrollmentEnforcesCapacity(t *testing.T) {
	backend := newMemBackend()
	repo := newTestRepo(backend)
	repo.Load(context.Background())

	created, err := repo.AddCourse(models.Course{Name: "Tiny", Capacity: 1})
	require.NoError(t, err)

	_, err = repo.AddEnrollment(models.Enrollment{StudentID: 1, CourseID: created.ID, EnrollmentDate: "2026-08-31"})
	require.NoError(t, err)

	_, err = repo.AddEnrollment(models.Enrollment{StudentID: 2, CourseID: created.ID, EnrollmentDate: "2026-08-31"})
	assert.ErrorIs(t, err, ErrCapacityFull)
}

func TestAddEnrollmentRejectsDuplicateActivePair(t *testing.T) {
	backend := newMemBackend()
	repo := newTestRepo(backend)
	repo.Load(context.Background())

	_, err := repo.AddEnrollment(models.Enrollment{StudentID: 1, CourseID: 1, EnrollmentDate: "2026-08-31"})
	assert.ErrorIs(t, err, ErrDuplicateEnrollment)
}

func TestAddEnrollmentUpdatesStudentCourseList(t *testing.T) {
	backend := newMemBackend()
	repo := newTestRepo(backend)
	repo.Load(context.Background())

	_, err := repo.AddEnrollment(models.Enrollment{StudentID: 5, CourseID: 3, EnrollmentDate: "2026-08-31"})
	require.NoError(t, err)

	student, err := repo.GetStudent(5)
	require.NoError(t, err)
	assert.Contains(t, student.Courses, 3)

	require.NoError(t, repo.UpdateEnrollmentStatus(5, 3, models.EnrollmentStatusDropped, nil))
	student, err = repo.GetStudent(5)
	require.NoError(t, err)
	assert.NotContains(t, student.Courses, 3)
}

func TestMutationNotifiesChangeHook(t *testing.T) {
	backend := newMemBackend()
	repo := newTestRepo(backend)
	repo.Load(context.Background())

	notified := 0
	repo.SetOnChange(func() { notified++ })

	_, err := repo.AddStudent(models.Student{Name: "Hook"})
	require.NoError(t, err)
	assert.Equal(t, 1, notified)
}
