package contact

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"webgael/internal/domain"
	"webgael/internal/logger"
)

const (
	MinMessageLength  = 10
	MaxAttachmentSize = 50 << 20
)

var (
	ProjectTypes = []string{"Prototipo", "Pieza funcional", "Arte/Decoración", "Juguete/Figura", "Repuesto", "Otro"}
	BudgetRanges = []string{"Menos de €50", "€50 - €100", "€100 - €200", "€200 - €500", "Más de €500"}
	Timelines    = []string{"Urgente (1-2 días)", "Normal (3-5 días)", "Flexible (1-2 semanas)", "Sin prisa (más de 2 semanas)"}

	AttachmentExtensions = []string{".stl", ".obj", ".ply", ".3mf"}
)

// Attachment describes a design file the visitor intends to send. Only its
// metadata is checked; the file itself is never received here.
type Attachment struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

type Message struct {
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Subject     string      `json:"subject"`
	Message     string      `json:"message"`
	ProjectType string      `json:"projectType,omitempty"`
	Budget      string      `json:"budget,omitempty"`
	Timeline    string      `json:"timeline,omitempty"`
	Attachment  *Attachment `json:"attachment,omitempty"`
}

type Submission struct {
	ID          string    `json:"id"`
	Message     Message   `json:"message"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type OptionLists struct {
	ProjectTypes         []string `json:"projectTypes"`
	BudgetRanges         []string `json:"budgetRanges"`
	Timelines            []string `json:"timelines"`
	AttachmentExtensions []string `json:"attachmentExtensions"`
	MaxAttachmentSize    int64    `json:"maxAttachmentSize"`
}

type Service struct {
	delay  time.Duration
	now    func() time.Time
	newID  func() string
	logger *zap.Logger
}

func New(delay time.Duration, log *zap.Logger) *Service {
	return &Service{
		delay:  delay,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
		logger: logger.OrNop(log),
	}
}

func (s *Service) Options() OptionLists {
	return OptionLists{
		ProjectTypes:         slices.Clone(ProjectTypes),
		BudgetRanges:         slices.Clone(BudgetRanges),
		Timelines:            slices.Clone(Timelines),
		AttachmentExtensions: slices.Clone(AttachmentExtensions),
		MaxAttachmentSize:    MaxAttachmentSize,
	}
}

func Validate(m Message) error {
	errs := domain.FieldErrors{}
	errs.Require("name", m.Name, "El nombre es obligatorio")
	errs.Require("email", m.Email, "El email es obligatorio")
	if _, missing := errs["email"]; !missing && !domain.ValidEmail(m.Email) {
		errs["email"] = "El email no es válido"
	}
	errs.Require("phone", m.Phone, "El teléfono es obligatorio")
	errs.Require("subject", m.Subject, "El asunto es obligatorio")
	errs.Require("message", m.Message, "El mensaje es obligatorio")
	if _, missing := errs["message"]; !missing && utf8.RuneCountInString(strings.TrimSpace(m.Message)) < MinMessageLength {
		errs["message"] = fmt.Sprintf("El mensaje debe tener al menos %d caracteres", MinMessageLength)
	}

	optional := map[string]struct {
		value   string
		allowed []string
	}{
		"projectType": {m.ProjectType, ProjectTypes},
		"budget":      {m.Budget, BudgetRanges},
		"timeline":    {m.Timeline, Timelines},
	}
	for field, o := range optional {
		if o.value != "" && !slices.Contains(o.allowed, o.value) {
			errs[field] = "Opción no válida"
		}
	}

	if a := m.Attachment; a != nil {
		switch {
		case a.Size > MaxAttachmentSize:
			errs["file"] = "El archivo no puede ser mayor a 50MB"
		case !slices.Contains(AttachmentExtensions, strings.ToLower(filepath.Ext(a.Name))):
			errs["file"] = "Formato no soportado: usa STL, OBJ, PLY o 3MF"
		}
	}
	return errs.OrNil()
}

// Submit validates the form and, after the simulated send delay, returns a
// receipt. Nothing is delivered anywhere.
func (s *Service) Submit(ctx context.Context, m Message) (*Submission, error) {
	if err := Validate(m); err != nil {
		return nil, err
	}

	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	sub := &Submission{ID: s.newID(), Message: m, SubmittedAt: s.now()}
	s.logger.Info("contact: message received",
		logger.String("submission_id", sub.ID),
		logger.String("subject", m.Subject),
		logger.String("project_type", m.ProjectType),
		logger.Bool("attachment", m.Attachment != nil),
	)
	return sub, nil
}
