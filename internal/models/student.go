package models

// StudentStatus represents the lifecycle of a student account.
type StudentStatus string

// Possible student statuses.
const (
	StudentStatusActive    StudentStatus = "Active"
	StudentStatusInactive  StudentStatus = "Inactive"
	StudentStatusGraduated StudentStatus = "Graduated"
)

// Student represents a learner registered on the platform.
//
// Courses lists the course ids the student currently holds. It is expected to
// track the Active enrollments referencing the student, but transient drift is
// tolerated and only flagged, never silently corrected.
type Student struct {
	ID                int           `json:"id"`
	Name              string        `json:"name"`
	Email             string        `json:"email"`
	Phone             string        `json:"phone"`
	Address           string        `json:"address"`
	Status            StudentStatus `json:"status"`
	Level             CourseLevel   `json:"level"`
	Interests         []string      `json:"interests"`
	Courses           []int         `json:"courses"`
	AIRecommendations []string      `json:"aiRecommendations"`
	LearningPath      []string      `json:"learningPath"`
}

// StudentFilter captures filtering options for listing students.
type StudentFilter struct {
	Search   string
	Status   StudentStatus
	Level    CourseLevel
	Page     int
	PageSize int
}
