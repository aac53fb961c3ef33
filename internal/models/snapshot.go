package models

// Snapshot is the full application state: the single source of truth held
// by the store, the unit of local persistence, and (minus the session) the
// unit of remote synchronization.
type Snapshot struct {
	Users       []User       `json:"users"`
	Courses     []Course     `json:"courses"`
	Enrollments []Enrollment `json:"enrollments"`
	Feedback    []Feedback   `json:"feedback"`

	// CurrentUser is the active session, or nil when logged out. It is a
	// detached copy of the matching Users entry; mutations that touch that
	// record keep the copy in step.
	CurrentUser *User `json:"currentUser"`
}

// SyncPayload is the document pushed to and pulled from the remote
// endpoint. The session never leaves the device.
type SyncPayload struct {
	Users       []User       `json:"users"`
	Courses     []Course     `json:"courses"`
	Enrollments []Enrollment `json:"enrollments"`
	Feedback    []Feedback   `json:"feedback"`
}

// Clone returns a deep copy. Callers receive snapshots that later
// mutations cannot reach into.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Users:       make([]User, len(s.Users)),
		Courses:     make([]Course, len(s.Courses)),
		Enrollments: make([]Enrollment, len(s.Enrollments)),
		Feedback:    make([]Feedback, len(s.Feedback)),
	}
	copy(out.Users, s.Users)
	copy(out.Enrollments, s.Enrollments)
	copy(out.Feedback, s.Feedback)
	for i, c := range s.Courses {
		cc := c
		cc.Tags = append([]string(nil), c.Tags...)
		out.Courses[i] = cc
	}
	if s.CurrentUser != nil {
		u := *s.CurrentUser
		out.CurrentUser = &u
	}
	return out
}

// Payload extracts the remote sync document from a snapshot.
func (s Snapshot) Payload() SyncPayload {
	c := s.Clone()
	return SyncPayload{
		Users:       c.Users,
		Courses:     c.Courses,
		Enrollments: c.Enrollments,
		Feedback:    c.Feedback,
	}
}

// UserByID returns a pointer into Users, or nil.
func (s Snapshot) UserByID(id string) *User {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return &s.Users[i]
		}
	}
	return nil
}

// CourseByID returns a pointer into Courses, or nil.
func (s Snapshot) CourseByID(id string) *Course {
	for i := range s.Courses {
		if s.Courses[i].ID == id {
			return &s.Courses[i]
		}
	}
	return nil
}

// AdminCount counts users currently holding the ADMIN role.
func (s Snapshot) AdminCount() int {
	n := 0
	for i := range s.Users {
		if s.Users[i].Role == RoleAdmin {
			n++
		}
	}
	return n
}
