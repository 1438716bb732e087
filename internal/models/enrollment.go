package models

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

// Possible enrollment statuses. Only Active rows count towards a course's
// enrolled total; the others are terminal.
const (
	EnrollmentStatusActive    EnrollmentStatus = "Active"
	EnrollmentStatusCompleted EnrollmentStatus = "Completed"
	EnrollmentStatusDropped   EnrollmentStatus = "Dropped"
)

// Enrollment links a student to a course. It carries no id of its own; identity
// is the (StudentID, CourseID, Status) combination, and multiple historical
// rows may share a pair as long as the earlier ones are non-Active.
type Enrollment struct {
	StudentID      int              `json:"studentId"`
	CourseID       int              `json:"courseId"`
	EnrollmentDate string           `json:"enrollmentDate"`
	Status         EnrollmentStatus `json:"status"`
	Progress       *int             `json:"progress,omitempty"`
	AISuggested    *bool            `json:"aiSuggested,omitempty"`
}

// EnrollmentDetail enriches Enrollment with display names for rendering.
type EnrollmentDetail struct {
	Enrollment
	StudentName string `json:"studentName"`
	CourseName  string `json:"courseName"`
}

// EnrollmentFilter provides filters for listing enrollments.
type EnrollmentFilter struct {
	StudentID int
	CourseID  int
	Status    EnrollmentStatus
	Page      int
	PageSize  int
}
