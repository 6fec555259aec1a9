// Package testutil provides testing utilities and helpers for the portal.
package testutil

import (
	"time"

	domainauth "github.com/gurmatacademy/portal/internal/domain/auth"
	"github.com/gurmatacademy/portal/internal/domain/model"
)

// StudentBuilder provides a fluent interface for building Student records for testing.
type StudentBuilder struct {
	student *model.Student
}

// NewStudent creates a new StudentBuilder with sensible defaults.
func NewStudent() *StudentBuilder {
	return &StudentBuilder{
		student: &model.Student{
			Name:       "Test Student",
			GradeLevel: "5",
			EnrolledAt: TestTime(),
		},
	}
}

// WithName sets the student name.
func (b *StudentBuilder) WithName(name string) *StudentBuilder {
	b.student.Name = name
	return b
}

// WithGradeLevel sets the grade level.
func (b *StudentBuilder) WithGradeLevel(grade string) *StudentBuilder {
	b.student.GradeLevel = grade
	return b
}

// WithGuardianID sets the guardian user id.
func (b *StudentBuilder) WithGuardianID(id string) *StudentBuilder {
	b.student.GuardianID = &id
	return b
}

// WithEnrolledAt sets the enrollment date.
func (b *StudentBuilder) WithEnrolledAt(t time.Time) *StudentBuilder {
	b.student.EnrolledAt = t
	return b
}

// Build returns the constructed Student.
func (b *StudentBuilder) Build() *model.Student {
	return b.student
}

// CourseBuilder provides a fluent interface for building Course records for testing.
type CourseBuilder struct {
	course *model.Course
}

// NewCourse creates a new CourseBuilder with sensible defaults.
func NewCourse() *CourseBuilder {
	return &CourseBuilder{
		course: &model.Course{
			Name:        "Kirtan",
			Description: "Shabad kirtan class",
			Teacher:     "Test Teacher",
			Weekday:     0,
		},
	}
}

// WithName sets the course name.
func (b *CourseBuilder) WithName(name string) *CourseBuilder {
	b.course.Name = name
	return b
}

// WithDescription sets the course description.
func (b *CourseBuilder) WithDescription(desc string) *CourseBuilder {
	b.course.Description = desc
	return b
}

// WithTeacher sets the teacher name.
func (b *CourseBuilder) WithTeacher(teacher string) *CourseBuilder {
	b.course.Teacher = teacher
	return b
}

// WithWeekday sets the class weekday (0=Sunday .. 6=Saturday).
func (b *CourseBuilder) WithWeekday(weekday int) *CourseBuilder {
	b.course.Weekday = weekday
	return b
}

// Build returns the constructed Course.
func (b *CourseBuilder) Build() *model.Course {
	return b.course
}

// UserRequestBuilder provides a fluent interface for building CreateUserRequest objects for testing.
type UserRequestBuilder struct {
	req *model.CreateUserRequest
}

// NewUserRequest creates a new UserRequestBuilder with sensible defaults.
// The default request is an admin account; call WithStudentID to turn it into
// a student account.
func NewUserRequest() *UserRequestBuilder {
	return &UserRequestBuilder{
		req: &model.CreateUserRequest{
			Email:    "test@example.com",
			Name:     "Test User",
			Role:     domainauth.RoleAdmin,
			Password: "test-password",
		},
	}
}

// WithEmail sets the account email.
func (b *UserRequestBuilder) WithEmail(email string) *UserRequestBuilder {
	b.req.Email = email
	return b
}

// WithName sets the display name.
func (b *UserRequestBuilder) WithName(name string) *UserRequestBuilder {
	b.req.Name = name
	return b
}

// WithRole sets the account role.
func (b *UserRequestBuilder) WithRole(role domainauth.Role) *UserRequestBuilder {
	b.req.Role = role
	return b
}

// WithStudentID sets the linked student record and switches the role to student.
func (b *UserRequestBuilder) WithStudentID(id string) *UserRequestBuilder {
	b.req.Role = domainauth.RoleStudent
	b.req.StudentID = &id
	return b
}

// WithPassword sets the plaintext password.
func (b *UserRequestBuilder) WithPassword(password string) *UserRequestBuilder {
	b.req.Password = password
	return b
}

// Build returns the constructed CreateUserRequest.
func (b *UserRequestBuilder) Build() *model.CreateUserRequest {
	return b.req
}

// AttendanceBuilder provides a fluent interface for building AttendanceRecord objects for testing.
type AttendanceBuilder struct {
	rec *model.AttendanceRecord
}

// NewAttendanceRecord creates a new AttendanceBuilder for the given student.
func NewAttendanceRecord(studentID string) *AttendanceBuilder {
	return &AttendanceBuilder{
		rec: &model.AttendanceRecord{
			StudentID: studentID,
			Date:      TestTime(),
			Status:    model.AttendancePresent,
		},
	}
}

// WithCourseID sets the course the record belongs to.
func (b *AttendanceBuilder) WithCourseID(id string) *AttendanceBuilder {
	b.rec.CourseID = &id
	return b
}

// WithDate sets the class date.
func (b *AttendanceBuilder) WithDate(t time.Time) *AttendanceBuilder {
	b.rec.Date = t
	return b
}

// WithStatus sets the attendance status.
func (b *AttendanceBuilder) WithStatus(status model.AttendanceStatus) *AttendanceBuilder {
	b.rec.Status = status
	return b
}

// WithNote attaches a free-form note.
func (b *AttendanceBuilder) WithNote(note string) *AttendanceBuilder {
	b.rec.Note = &note
	return b
}

// Build returns the constructed AttendanceRecord.
func (b *AttendanceBuilder) Build() *model.AttendanceRecord {
	return b.rec
}

// MessageBuilder provides a fluent interface for building AssistantMessage objects for testing.
type MessageBuilder struct {
	msg *model.AssistantMessage
}

// NewAssistantMessage creates a new MessageBuilder for the given student.
func NewAssistantMessage(studentID string) *MessageBuilder {
	return &MessageBuilder{
		msg: &model.AssistantMessage{
			StudentID: studentID,
			Sender:    model.SenderStudent,
			Content:   "What does this shabad mean?",
		},
	}
}

// WithSender sets the message sender.
func (b *MessageBuilder) WithSender(sender model.MessageSender) *MessageBuilder {
	b.msg.Sender = sender
	return b
}

// WithContent sets the message content.
func (b *MessageBuilder) WithContent(content string) *MessageBuilder {
	b.msg.Content = content
	return b
}

// Build returns the constructed AssistantMessage.
func (b *MessageBuilder) Build() *model.AssistantMessage {
	return b.msg
}
