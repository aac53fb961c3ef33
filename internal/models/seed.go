package models

import "time"

// SeedSnapshot is the built-in state used when no saved snapshot exists or
// the saved one cannot be parsed: demo users and courses, nothing enrolled,
// nobody logged in.
func SeedSnapshot() Snapshot {
	return Snapshot{
		Users: []User{
			{ID: "admin-1", Name: "Yang F.", Email: "yangf@a-star.edu.sg", Role: RoleAdmin, Points: 500, JoinedDate: date(2023, 1, 1)},
			{ID: "1", Name: "Alice Admin", Email: "alice@research.ci", Role: RoleAdmin, Points: 150, JoinedDate: date(2023, 1, 1)},
			{ID: "2", Name: "Bob Researcher", Email: "bob@research.ci", Role: RoleResearcher, Points: 80, JoinedDate: date(2023, 2, 15)},
			{ID: "3", Name: "Charlie Dave", Email: "charlie@research.ci", Role: RoleResearcher, Points: 210, JoinedDate: date(2023, 3, 10)},
			{ID: "4", Name: "test0", Email: "test0@a-star.edu.sg", Role: RoleResearcher, Points: 100, JoinedDate: date(2023, 3, 10)},
		},
		Courses: []Course{
			{
				ID:            "c1",
				Title:         "Generative AI Fundamentals",
				Description:   "Learn the basics of LLMs and Diffusion models for research workflows.",
				Link:          "https://example.com/ai-basics",
				Type:          CourseOnline,
				Category:      "AI Agents",
				RecommendedBy: "admin-1",
				CreatedAt:     date(2023, 10, 1),
				Tags:          []string{"AI", "LLM", "Intro"},
			},
			{
				ID:            "c2",
				Title:         "Advanced Python for Researchers",
				Description:   "Deep dive into data analysis and automation scripts.",
				Link:          "https://example.com/python-adv",
				Type:          CourseOnline,
				Category:      "Programming",
				RecommendedBy: "2",
				CreatedAt:     date(2023, 11, 5),
				Tags:          []string{"Python", "Data Science"},
			},
		},
		Enrollments: []Enrollment{},
		Feedback:    []Feedback{},
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
