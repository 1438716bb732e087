// Package seed holds the literal first-run dataset used when no persisted
// document can be found in either storage slot.
package seed

import "github.com/noah-isme/coursedesk-api/internal/models"

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }

// Dataset returns a fresh copy of the seed fixture: 5 courses, 5 students,
// 5 instructors, 10 enrollments, 4 categories. Enrolled counters are
// recomputed on load, so they are left at zero here.
func Dataset() *models.Dataset {
	return &models.Dataset{
		Categories: []models.Category{
			{ID: 1, Name: "Programming", Description: "Software development and coding", Icon: "code"},
			{ID: 2, Name: "Data Science", Description: "Analytics, statistics and machine learning", Icon: "bar-chart"},
			{ID: 3, Name: "Design", Description: "Visual and product design", Icon: "palette"},
			{ID: 4, Name: "Business", Description: "Management and entrepreneurship", Icon: "briefcase"},
		},
		Instructors: []models.Instructor{
			{ID: 1, Name: "Sarah Chen", Email: "sarah.chen@coursedesk.local", Phone: "555-0101", Department: "Computer Science",
				Expertise: models.Expertise{"Go", "Distributed Systems", "Databases"}, Experience: 9,
				Bio: "Backend engineer turned educator.", Courses: []int{1, 4}, Status: models.InstructorStatusActive,
				Rating: floatPtr(4.8), Availability: []string{"Monday", "Wednesday", "Friday"}},
			{ID: 2, Name: "Miguel Alvarez", Email: "miguel.alvarez@coursedesk.local", Phone: "555-0102", Department: "Data Science",
				Expertise: models.Expertise{"Python", "Machine Learning", "Statistics"}, Experience: 7,
				Bio: "Former research scientist, teaches applied ML.", Courses: []int{2}, Status: models.InstructorStatusActive,
				Rating: floatPtr(4.6), AIOptimized: true, Availability: []string{"Tuesday", "Thursday"}},
			{ID: 3, Name: "Amara Okafor", Email: "amara.okafor@coursedesk.local", Phone: "555-0103", Department: "Design",
				Expertise: models.Expertise{"UX", "Figma", "Design Systems"}, Experience: 6,
				Bio: "Product designer with a teaching habit.", Courses: []int{3}, Status: models.InstructorStatusActive,
				Rating: floatPtr(4.9), Availability: []string{"Monday", "Tuesday", "Thursday"}},
			{ID: 4, Name: "Tomasz Nowak", Email: "tomasz.nowak@coursedesk.local", Phone: "555-0104", Department: "Business",
				Expertise: models.Expertise{"Strategy", "Finance"}, Experience: 12,
				Bio: "Ex-consultant, focuses on early-stage companies.", Courses: []int{5}, Status: models.InstructorStatusOnLeave,
				Rating: floatPtr(4.3), Availability: []string{"Friday"}},
			{ID: 5, Name: "Lina Park", Email: "lina.park@coursedesk.local", Phone: "555-0105", Department: "Computer Science",
				Expertise: models.Expertise{"JavaScript", "React", "Accessibility"}, Experience: 5,
				Bio: "Frontend specialist.", Courses: []int{}, Status: models.InstructorStatusActive,
				Rating: floatPtr(4.5), Availability: []string{"Wednesday", "Thursday"}},
		},
		Courses: []models.Course{
			{ID: 1, Name: "Go for Backend Engineers", Description: "Build production services in Go.",
				InstructorID: intPtr(1), Category: "Programming", Level: models.LevelIntermediate,
				Status: models.CourseStatusActive, Capacity: 30, Price: 149, StartDate: "2026-09-07", EndDate: "2026-12-11",
				Popularity: intPtr(88), Tags: []string{"go", "backend", "api"}},
			{ID: 2, Name: "Applied Machine Learning", Description: "From notebooks to deployed models.",
				InstructorID: intPtr(2), Category: "Data Science", Level: models.LevelAdvanced,
				Status: models.CourseStatusActive, Capacity: 25, Price: 199, StartDate: "2026-09-14", EndDate: "2026-12-18",
				AIGenerated: true, Popularity: intPtr(93), Tags: []string{"ml", "python"}},
			{ID: 3, Name: "Design Systems in Practice", Description: "Consistent product UI at scale.",
				InstructorID: intPtr(3), Category: "Design", Level: models.LevelIntermediate,
				Status: models.CourseStatusActive, Capacity: 20, Price: 129, StartDate: "2026-09-21", EndDate: "2026-11-27",
				Popularity: intPtr(81), Tags: []string{"design", "ux"}},
			{ID: 4, Name: "Database Internals", Description: "Storage engines, indexes and transactions.",
				InstructorID: intPtr(1), Category: "Programming", Level: models.LevelAdvanced,
				Status: models.CourseStatusDraft, Capacity: 20, Price: 179, StartDate: "2027-01-11", EndDate: "2027-04-16",
				Popularity: intPtr(76), Tags: []string{"databases", "internals"}},
			{ID: 5, Name: "Startup Finance Basics", Description: "Runway, pricing, unit economics.",
				InstructorID: intPtr(4), Category: "Business", Level: models.LevelBeginner,
				Status: models.CourseStatusActive, Capacity: 40, Price: 89, StartDate: "2026-10-05", EndDate: "2026-11-30",
				Popularity: intPtr(69), Tags: []string{"finance", "startup"}},
		},
		Students: []models.Student{
			{ID: 1, Name: "Jonas Weber", Email: "jonas.weber@example.com", Phone: "555-0201", Address: "12 Elm Street",
				Status: models.StudentStatusActive, Level: models.LevelIntermediate,
				Interests: []string{"backend", "databases"}, Courses: []int{1, 4},
				AIRecommendations: []string{"Database Internals"}, LearningPath: []string{"Go for Backend Engineers", "Database Internals"}},
			{ID: 2, Name: "Priya Raman", Email: "priya.raman@example.com", Phone: "555-0202", Address: "34 Oak Avenue",
				Status: models.StudentStatusActive, Level: models.LevelAdvanced,
				Interests: []string{"machine learning"}, Courses: []int{2},
				AIRecommendations: []string{}, LearningPath: []string{"Applied Machine Learning"}},
			{ID: 3, Name: "Caleb Stone", Email: "caleb.stone@example.com", Phone: "555-0203", Address: "56 Pine Road",
				Status: models.StudentStatusActive, Level: models.LevelBeginner,
				Interests: []string{"design", "frontend"}, Courses: []int{3},
				AIRecommendations: []string{"Design Systems in Practice"}, LearningPath: []string{}},
			{ID: 4, Name: "Fatima Zahra", Email: "fatima.zahra@example.com", Phone: "555-0204", Address: "78 Maple Lane",
				Status: models.StudentStatusActive, Level: models.LevelBeginner,
				Interests: []string{"business"}, Courses: []int{5, 1},
				AIRecommendations: []string{}, LearningPath: []string{"Startup Finance Basics"}},
			{ID: 5, Name: "Henrik Olsen", Email: "henrik.olsen@example.com", Phone: "555-0205", Address: "90 Birch Way",
				Status: models.StudentStatusInactive, Level: models.LevelIntermediate,
				Interests: []string{"data science"}, Courses: []int{},
				AIRecommendations: []string{"Applied Machine Learning"}, LearningPath: []string{}},
		},
		Enrollments: []models.Enrollment{
			{StudentID: 1, CourseID: 1, EnrollmentDate: "2026-08-20", Status: models.EnrollmentStatusActive, Progress: intPtr(35), AISuggested: boolPtr(false)},
			{StudentID: 1, CourseID: 4, EnrollmentDate: "2026-08-22", Status: models.EnrollmentStatusActive, Progress: intPtr(5), AISuggested: boolPtr(true)},
			{StudentID: 2, CourseID: 2, EnrollmentDate: "2026-08-18", Status: models.EnrollmentStatusActive, Progress: intPtr(62), AISuggested: boolPtr(false)},
			{StudentID: 3, CourseID: 3, EnrollmentDate: "2026-08-25", Status: models.EnrollmentStatusActive, Progress: intPtr(11), AISuggested: boolPtr(true)},
			{StudentID: 4, CourseID: 5, EnrollmentDate: "2026-08-19", Status: models.EnrollmentStatusActive, Progress: intPtr(48), AISuggested: boolPtr(false)},
			{StudentID: 4, CourseID: 1, EnrollmentDate: "2026-08-26", Status: models.EnrollmentStatusActive, Progress: intPtr(2), AISuggested: boolPtr(true)},
			{StudentID: 5, CourseID: 2, EnrollmentDate: "2026-05-02", Status: models.EnrollmentStatusDropped, Progress: intPtr(17), AISuggested: boolPtr(false)},
			{StudentID: 5, CourseID: 5, EnrollmentDate: "2026-04-10", Status: models.EnrollmentStatusCompleted, Progress: intPtr(100), AISuggested: boolPtr(false)},
			{StudentID: 2, CourseID: 1, EnrollmentDate: "2026-03-15", Status: models.EnrollmentStatusCompleted, Progress: intPtr(100), AISuggested: boolPtr(false)},
			{StudentID: 3, CourseID: 5, EnrollmentDate: "2026-06-01", Status: models.EnrollmentStatusDropped, Progress: intPtr(9), AISuggested: boolPtr(true)},
		},
		AISettings: models.DefaultSettings(),
	}
}
