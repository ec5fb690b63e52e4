package booking

import (
	"fmt"
	"time"
)

// ConsultationKind идентификатор типа консультации (уходит в запрос как consultationType)
type ConsultationKind string

const (
	KindDiscovery ConsultationKind = "discovery"
	KindStrategy  ConsultationKind = "strategy"
	KindTechnical ConsultationKind = "technical"
)

// Consultation тип консультации с фиксированной длительностью
type Consultation struct {
	Kind        ConsultationKind
	Label       string
	Duration    time.Duration
	Description string
}

var consultations = []Consultation{
	{
		Kind:        KindDiscovery,
		Label:       "Discovery Call",
		Duration:    30 * time.Minute,
		Description: "Initial consultation to understand your needs",
	},
	{
		Kind:        KindStrategy,
		Label:       "Strategy Session",
		Duration:    60 * time.Minute,
		Description: "Deep dive into your growth opportunities",
	},
	{
		Kind:        KindTechnical,
		Label:       "Technical Review",
		Duration:    45 * time.Minute,
		Description: "Evaluate your current tech stack",
	},
}

// Consultations возвращает типы консультаций в порядке показа
func Consultations() []Consultation {
	out := make([]Consultation, len(consultations))
	copy(out, consultations)
	return out
}

// LookupConsultation ищет тип консультации по идентификатору
func LookupConsultation(kind ConsultationKind) (Consultation, bool) {
	for _, c := range consultations {
		if c.Kind == kind {
			return c, true
		}
	}
	return Consultation{}, false
}

// DurationLabel "30 min"
func (c Consultation) DurationLabel() string {
	return fmt.Sprintf("%d min", int(c.Duration/time.Minute))
}
