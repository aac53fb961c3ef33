package services

import "github.com/ci-research/learninghub-service/internal/models"

// requireSession returns the session user or ErrNotAuthenticated.
func requireSession(snap *models.Snapshot) (*models.User, error) {
	if snap.CurrentUser == nil {
		return nil, ErrNotAuthenticated
	}
	return snap.CurrentUser, nil
}

// awardPoints bumps a user's accumulator in the users collection and, when
// that user is the session user, mirrors the bump on the session copy.
func awardPoints(snap *models.Snapshot, userID string, points int) {
	if points == 0 {
		return
	}
	if u := snap.UserByID(userID); u != nil {
		u.Points += points
	}
	if snap.CurrentUser != nil && snap.CurrentUser.ID == userID {
		snap.CurrentUser.Points += points
	}
}

// averageRating returns a course's mean rating, or nil without feedback.
func averageRating(feedback []models.Feedback, courseID string) (*float64, int) {
	sum, count := 0, 0
	for i := range feedback {
		if feedback[i].CourseID == courseID {
			sum += feedback[i].Rating
			count++
		}
	}
	if count == 0 {
		return nil, 0
	}
	avg := float64(sum) / float64(count)
	return &avg, count
}
