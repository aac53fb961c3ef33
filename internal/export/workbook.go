package export

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/ci-research/learninghub-service/internal/models"
)

// SheetSpec describes one worksheet: a title row plus data rows, all as
// strings.
type SheetSpec struct {
	Title  string
	Header []string
	Rows   [][]string
}

// BuildWorkbook renders the full state as an xlsx workbook with one sheet
// per collection and returns the encoded bytes.
func BuildWorkbook(snap models.Snapshot) ([]byte, error) {
	f, err := newWorkbook(buildSheets(snap))
	if err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func buildSheets(snap models.Snapshot) []SheetSpec {
	userRows := make([][]string, 0, len(snap.Users))
	for _, u := range snap.Users {
		userRows = append(userRows, []string{
			u.ID, u.Name, u.Email, string(u.Role),
			strconv.Itoa(u.Points), u.JoinedDate.Format("2006-01-02"),
		})
	}

	courseRows := make([][]string, 0, len(snap.Courses))
	for _, c := range snap.Courses {
		recommender := ""
		if u := snap.UserByID(c.RecommendedBy); u != nil {
			recommender = u.Name
		}
		courseRows = append(courseRows, []string{
			c.ID, c.Title, c.Category, string(c.Type),
			c.Link, recommender, c.CreatedAt.Format("2006-01-02"),
		})
	}

	enrollmentRows := make([][]string, 0, len(snap.Enrollments))
	for _, e := range snap.Enrollments {
		userName, courseTitle := "", ""
		if u := snap.UserByID(e.UserID); u != nil {
			userName = u.Name
		}
		if c := snap.CourseByID(e.CourseID); c != nil {
			courseTitle = c.Title
		}
		enrollmentRows = append(enrollmentRows, []string{
			userName, courseTitle, string(e.Status),
			e.UpdatedAt.Format("2006-01-02 15:04"),
		})
	}

	feedbackRows := make([][]string, 0, len(snap.Feedback))
	for _, fb := range snap.Feedback {
		userName, courseTitle := "", ""
		if u := snap.UserByID(fb.UserID); u != nil {
			userName = u.Name
		}
		if c := snap.CourseByID(fb.CourseID); c != nil {
			courseTitle = c.Title
		}
		feedbackRows = append(feedbackRows, []string{
			userName, courseTitle, strconv.Itoa(fb.Rating),
			fb.Comment, fb.CreatedAt.Format("2006-01-02"),
		})
	}

	return []SheetSpec{
		{
			Title:  "Users",
			Header: []string{"ID", "Name", "Email", "Role", "Points", "Joined"},
			Rows:   userRows,
		},
		{
			Title:  "Courses",
			Header: []string{"ID", "Title", "Category", "Type", "Link", "Recommended By", "Added"},
			Rows:   courseRows,
		},
		{
			Title:  "Enrollments",
			Header: []string{"User", "Course", "Status", "Updated"},
			Rows:   enrollmentRows,
		},
		{
			Title:  "Feedback",
			Header: []string{"User", "Course", "Rating", "Comment", "Date"},
			Rows:   feedbackRows,
		},
	}
}

func newWorkbook(sheets []SheetSpec) (*excelize.File, error) {
	f := excelize.NewFile()

	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, s := range sheets {
		name := s.Title
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("new sheet: %w", err)
			}
		}

		for col, h := range s.Header {
			cell := fmt.Sprintf("%s1", colName(col+1))
			if err := f.SetCellStr(name, cell, h); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
		end := colName(len(s.Header)) + "1"
		_ = f.SetCellStyle(name, "A1", end, bold)
		_ = f.AutoFilter(name, "A1:"+end, nil)

		for r, row := range s.Rows {
			for c, val := range row {
				cell := fmt.Sprintf("%s%d", colName(c+1), r+2)
				if err := f.SetCellStr(name, cell, val); err != nil {
					return nil, fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}

		// Width heuristic: header length or the longest of the first rows
		for c := 1; c <= len(s.Header); c++ {
			widest := len(s.Header[c-1])
			for r := 0; r < len(s.Rows) && r < 50; r++ {
				if l := len(s.Rows[r][c-1]); l > widest {
					widest = l
				}
			}
			w := float64(widest) * 0.9
			if w < 12 {
				w = 12
			}
			if w > 40 {
				w = 40
			}
			_ = f.SetColWidth(name, colName(c), colName(c), w)
		}
	}

	return f, nil
}

func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}
