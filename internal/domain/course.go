package domain

import (
	"time"

	"github.com/google/uuid"
)

type CourseKind string

const (
	CourseSync  CourseKind = "sincrono"
	CourseAsync CourseKind = "assincrono"
)

type Course struct {
	ID           uuid.UUID  `json:"id" db:"course_id"`
	TopicID      uuid.UUID  `json:"id_topico" db:"topic_id"`
	InstructorID *uuid.UUID `json:"id_formador,omitempty" db:"instructor_id"`
	Title        string     `json:"titulo" db:"title"`
	Kind         CourseKind `json:"tipo" db:"kind"`
	IsActive     bool       `json:"ativo" db:"is_active"`
	IsVisible    bool       `json:"visivel" db:"is_visible"`
	StartDate    *time.Time `json:"data_inicio,omitempty" db:"start_date"`
	EndDate      *time.Time `json:"data_fim,omitempty" db:"end_date"`
	Vacancies    *int       `json:"vagas,omitempty" db:"vacancies"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

type Enrollment struct {
	ID        uuid.UUID `json:"id" db:"enrollment_id"`
	CourseID  uuid.UUID `json:"id_curso" db:"course_id"`
	TraineeID uuid.UUID `json:"id_formando" db:"trainee_id"`
	CreatedAt time.Time `json:"data_inscricao" db:"created_at"`
}
