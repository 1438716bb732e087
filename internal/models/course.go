package models

// CourseStatus represents the publication state of a course.
type CourseStatus string

// Possible course statuses.
const (
	CourseStatusActive   CourseStatus = "Active"
	CourseStatusDraft    CourseStatus = "Draft"
	CourseStatusArchived CourseStatus = "Archived"
)

// CourseLevel grades difficulty for courses and students alike.
type CourseLevel string

// Possible levels.
const (
	LevelBeginner     CourseLevel = "Beginner"
	LevelIntermediate CourseLevel = "Intermediate"
	LevelAdvanced     CourseLevel = "Advanced"
)

// Course represents a single offering in the catalog.
//
// InstructorID is the only source of truth for the teaching assignment; the
// display name is derived on read. Enrolled is recomputed from the Active
// enrollments after any structural change, never maintained incrementally.
// Dates stay as plain calendar strings so that a sloppily formatted import
// degrades to an odd value rather than a failed parse of the whole document.
type Course struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	InstructorID *int         `json:"instructorId,omitempty"`
	Category     string       `json:"category"`
	Level        CourseLevel  `json:"level"`
	Status       CourseStatus `json:"status"`
	Capacity     int          `json:"capacity"`
	Enrolled     int          `json:"enrolled"`
	Price        float64      `json:"price"`
	StartDate    string       `json:"startDate"`
	EndDate      string       `json:"endDate"`
	AIGenerated  bool         `json:"aiGenerated"`
	Popularity   *int         `json:"popularity,omitempty"`
	Tags         []string     `json:"tags"`
}

// CourseDetail enriches Course with the derived instructor display name.
type CourseDetail struct {
	Course
	Instructor string `json:"instructor"`
}

// CourseFilter captures filtering options for listing courses.
type CourseFilter struct {
	Search   string
	Category string
	Level    CourseLevel
	Status   CourseStatus
	Page     int
	PageSize int
}
